package app

// focusable returns the widgets that have a subtree on the page, in
// display order. Widgets whose Build failed cannot take focus.
func (m *AppModel) focusable() []string {
	out := make([]string, 0, len(m.widgetOrder))
	for _, id := range m.widgetOrder {
		if _, ok := m.roots[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// CycleFocusForward moves focus to the next mounted widget, wrapping
// around after the last.
func (m *AppModel) CycleFocusForward() {
	m.cycleFocus(1)
}

// CycleFocusBackward moves focus to the previous mounted widget, wrapping
// around before the first.
func (m *AppModel) CycleFocusBackward() {
	m.cycleFocus(-1)
}

func (m *AppModel) cycleFocus(step int) {
	ids := m.focusable()
	if len(ids) == 0 {
		return
	}
	idx := -1
	for i, id := range ids {
		if id == m.focusedWidget {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.focusedWidget = ids[0]
		return
	}
	m.focusedWidget = ids[(idx+step+len(ids))%len(ids)]
}

// FocusWidget sets focus to the widget with the given ID. Unknown or
// unmounted IDs leave focus unchanged.
func (m *AppModel) FocusWidget(id string) {
	if _, ok := m.roots[id]; ok {
		m.focusedWidget = id
	}
}

// ToggleExpand toggles the focused widget between its grid cell and the
// full terminal.
func (m *AppModel) ToggleExpand() {
	if m.focusedWidget == "" {
		return
	}
	if m.expandedWidget == m.focusedWidget {
		m.expandedWidget = ""
	} else {
		m.expandedWidget = m.focusedWidget
	}
}
