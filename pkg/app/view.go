package app

import (
	"gitlab.com/tinyland/lab/browserhome/pkg/dom"
	"gitlab.com/tinyland/lab/browserhome/pkg/tui"
)

// View renders the terminal frame. Before the first WindowSizeMsg there is
// nothing to lay out.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	page := tui.Page{
		Greeting: dom.TextContent(m.titleSlot),
		Cursor:   !m.greeted,
		Clock:    dom.TextContent(m.clockSlot),
		Expanded: m.expandedWidget,
		Help:     m.helpVisible,
		Zones:    m.zones,
	}
	for _, id := range m.focusable() {
		state := m.WidgetState(id)
		panel := tui.Panel{
			ID:      id,
			Title:   m.widgets[id].Title(),
			Root:    m.roots[id],
			Focused: id == m.focusedWidget,
			Failed:  state == StateFailed,
		}
		if state == StateLoading {
			panel.Badge = m.spinner.View()
		}
		page.Panels = append(page.Panels, panel)
	}
	return tui.Render(page, m.width, m.height)
}
