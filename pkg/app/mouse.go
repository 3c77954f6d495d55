package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/browserhome/pkg/tui"
)

// handleMouse opens the link under a left click. Everything else, and every
// click when no opener is configured, is ignored.
func (m AppModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.zones == nil || m.cfg.OpenURL == nil {
		return nil
	}
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	for _, href := range tui.LinkTargets(m.doc.Main()) {
		if z := m.zones.Get(tui.LinkZoneID(href)); z != nil && z.InBounds(msg) {
			return openURLCmd(m.cfg.OpenURL, href)
		}
	}
	return nil
}

func openURLCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return LinkOpenedEvent{URL: url, Err: open(url)}
	}
}
