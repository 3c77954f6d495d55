package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/browserhome/pkg/dom"
)

// WidgetState is the lifecycle position of a widget.
type WidgetState int

const (
	// StateUninitialized means Build has not run yet.
	StateUninitialized WidgetState = iota
	// StateStructureMounted means the empty skeleton is in the document.
	StateStructureMounted
	// StateLoading means a fetch is in flight.
	StateLoading
	// StatePopulated means the last fetch rendered data.
	StatePopulated
	// StateFailed means the last fetch, or the widget itself, failed.
	StateFailed
)

func (s WidgetState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateStructureMounted:
		return "mounted"
	case StateLoading:
		return "loading"
	case StatePopulated:
		return "populated"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Settled reports whether a load has finished, successfully or not.
func (s WidgetState) Settled() bool {
	return s == StatePopulated || s == StateFailed
}

// Widget is the interface every page widget implements. All methods are
// called from the update loop only.
type Widget interface {
	// ID returns the unique identifier. Fetch results are routed to the
	// widget whose ID equals DataUpdateEvent.Source.
	ID() string

	// Title returns the display name used by the terminal view.
	Title() string

	// Build creates the widget's empty skeleton in doc and returns its root.
	// The orchestrator attaches the root to the page. Build performs no I/O.
	Build(doc dom.Document) (dom.Node, error)

	// Load starts a fetch. The returned command runs off the update loop
	// and must answer with a DataUpdateEvent for this widget.
	Load(ctx context.Context) tea.Cmd

	// Update renders messages addressed to this widget. An error means the
	// widget is structurally broken; the orchestrator logs it and marks the
	// widget failed.
	Update(msg tea.Msg) (tea.Cmd, error)

	// State returns the current lifecycle state.
	State() WidgetState
}

// Refresher is implemented by widgets that reload on a fixed period. The
// orchestrator schedules the next load RefreshInterval after each settled
// one. A non-positive interval disables periodic reloads.
type Refresher interface {
	RefreshInterval() time.Duration
}
