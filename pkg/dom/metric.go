package dom

import (
	"errors"
	"fmt"
	"strings"
)

// ContentClass marks the single content node a slot holds. UpdateMetric
// removes every descendant carrying it before writing a new one.
const ContentClass = "weatherData"

// ErrSlotNotFound is returned when a slot key does not resolve to an element.
// It means the structure builder and the updater disagree about the skeleton.
var ErrSlotNotFound = errors.New("dom: slot not found")

// UpdateMetric replaces the content of the slot identified by slotKey with
// one <div> whose text is prefix+value+suffix. class is the content node's
// class list; the ContentClass token is always included so the next call
// can find and remove the node.
func UpdateMetric(doc Document, slotKey, value, prefix, suffix, class string) error {
	slot, ok := doc.ElementByID(slotKey)
	if !ok {
		return fmt.Errorf("update %q: %w", slotKey, ErrSlotNotFound)
	}

	for _, old := range doc.ElementsByClass(slot, ContentClass) {
		if old.Parent != nil {
			doc.RemoveChild(old.Parent, old)
		}
	}

	content := doc.CreateElement("div")
	doc.SetAttribute(content, "class", contentClass(class))
	doc.SetText(content, prefix+value+suffix)
	doc.AppendChild(slot, content)
	return nil
}

func contentClass(class string) string {
	class = strings.TrimSpace(class)
	if class == "" {
		return ContentClass
	}
	for _, f := range strings.Fields(class) {
		if f == ContentClass {
			return class
		}
	}
	return ContentClass + " " + class
}
