package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/browserhome/pkg/dom"
)

// PlaceholderWidget is a minimal widget that mounts a titled, empty section
// and settles as soon as it is loaded. It stands in for widgets that are
// disabled in the configuration and is used to exercise the orchestrator.
type PlaceholderWidget struct {
	id    string
	title string
	state WidgetState
	root  dom.Node
}

// NewPlaceholder creates a new PlaceholderWidget with the given id and title.
func NewPlaceholder(id, title string) *PlaceholderWidget {
	return &PlaceholderWidget{id: id, title: title}
}

// ID returns the widget's unique identifier.
func (w *PlaceholderWidget) ID() string {
	return w.id
}

// Title returns the widget's display title.
func (w *PlaceholderWidget) Title() string {
	return w.title
}

// Build creates <section class="widget placeholder"><h2>title</h2></section>.
func (w *PlaceholderWidget) Build(doc dom.Document) (dom.Node, error) {
	root := doc.CreateElement("section")
	doc.SetAttribute(root, "id", w.id)
	doc.SetAttribute(root, "class", "widget placeholder")
	h := doc.CreateElement("h2")
	doc.SetText(h, w.title)
	doc.AppendChild(root, h)
	w.root = root
	w.state = StateStructureMounted
	return root, nil
}

// Load answers immediately with an empty update.
func (w *PlaceholderWidget) Load(_ context.Context) tea.Cmd {
	w.state = StateLoading
	return DataFetchCmd(w.id, func() (interface{}, error) { return nil, nil })
}

// Update marks the widget populated when its own update arrives.
func (w *PlaceholderWidget) Update(msg tea.Msg) (tea.Cmd, error) {
	if ev, ok := msg.(DataUpdateEvent); ok && ev.Source == w.id {
		if ev.Err != nil {
			w.state = StateFailed
		} else {
			w.state = StatePopulated
		}
	}
	return nil, nil
}

// State returns the lifecycle state.
func (w *PlaceholderWidget) State() WidgetState {
	return w.state
}
