// Package clock renders the header clock.
package clock

import (
	"time"

	"gitlab.com/tinyland/lab/browserhome/pkg/dom"
)

// Interval is how often the header clock is rewritten.
const Interval = time.Second

// layout is the en-US 12-hour format with seconds and the zone abbreviation,
// e.g. "3:04:05 PM EST".
const layout = "3:04:05 PM MST"

// Render formats t for display in t's own location.
func Render(t time.Time) string {
	return t.Format(layout)
}

// Update writes the rendered time into slot and refreshes its aria-label.
// A nil slot is a no-op.
func Update(doc dom.Document, slot dom.Node, t time.Time) {
	if doc == nil || slot == nil {
		return
	}
	s := Render(t)
	doc.SetText(slot, s)
	doc.SetAttribute(slot, "aria-label", "Current time: "+s)
}
