// Package app is the browserhome orchestrator. A single bubbletea program
// owns the page document: it builds the header, mounts every widget, drives
// the clock and the welcome animation, and routes fetch results back to the
// widget that asked for them. Widgets never touch each other's subtrees and
// a failing widget is contained at its own boundary.
//
// The same model runs interactively (terminal view), headless behind the
// HTTP server, and in one-shot dump mode.
package app

import "time"

// DataUpdateEvent carries the result of a collector run from the fetch
// goroutine back into the update loop. Receivers type-assert Data based on
// Source.
type DataUpdateEvent struct {
	Source    string      // Collector and widget name (e.g., "weather", "crypto")
	Data      interface{} // Type-asserted by the receiver
	Err       error       // Non-nil if the fetch failed
	Timestamp time.Time
}

// TickEvent drives the clock. One is delivered every clock.Interval.
type TickEvent struct {
	Time time.Time
}

// RefreshEvent asks the widget named Source to load again. A zero Gen is a
// manual request. Periodic requests carry the generation of the load that
// scheduled them and are dropped once a later load has settled, so every
// widget has at most one refresh pending.
type RefreshEvent struct {
	Source string
	Gen    uint64
}

// LinkOpenedEvent reports the outcome of opening a clicked link.
type LinkOpenedEvent struct {
	URL string
	Err error
}

// GreetingSettledEvent is delivered once, a fixed delay after the welcome
// message has been fully typed.
type GreetingSettledEvent struct{}
