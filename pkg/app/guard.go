package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// guard runs one widget operation inside that widget's failure boundary.
// Errors and panics are logged, the widget is marked failed and nothing
// escapes to the caller, so siblings, the clock and the greeting carry on.
func (m *AppModel) guard(id, op string, fn func() (tea.Cmd, error)) (cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.fault(id, op, fmt.Errorf("panic: %v", r))
			cmd = nil
		}
	}()

	cmd, err := fn()
	if err != nil {
		m.fault(id, op, err)
		return nil
	}
	return safeCmd(id, cmd)
}

func (m *AppModel) fault(id, op string, err error) {
	m.faults[id] = fmt.Errorf("%s %s: %w", id, op, err)
	m.logger.Error("widget failed", "widget", id, "op", op, "error", err)
}

// safeCmd converts a panic inside a widget's asynchronous command into a
// failed DataUpdateEvent for that widget.
func safeCmd(id string, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = DataUpdateEvent{
					Source:    id,
					Err:       fmt.Errorf("%s: panic: %v", id, r),
					Timestamp: time.Now(),
				}
			}
		}()
		return cmd()
	}
}
