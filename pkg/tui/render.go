// Package tui draws the browserhome page in a terminal. It reads the same
// document the HTML endpoints serve and lays the widgets out as bordered
// panels below a header with the greeting and the clock.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/browserhome/pkg/components"
	"gitlab.com/tinyland/lab/browserhome/pkg/dom"
)

// Border colors.
const (
	colorBorderDefault = "#6B7280"
	colorBorderFocus   = "#7C3AED"
	colorBorderFailed  = "#EF4444"
)

// minPanelWidth is the narrowest column the grid will create.
const minPanelWidth = 34

// maxColumns caps the grid; the page has three widgets.
const maxColumns = 3

// Panel is one widget as the terminal sees it.
type Panel struct {
	ID      string
	Title   string
	Root    dom.Node
	Focused bool
	Failed  bool
	// Badge is drawn in the top border, e.g. a spinner frame while loading.
	Badge string
}

// Page is everything Render needs for one frame.
type Page struct {
	Greeting string
	Cursor   bool
	Clock    string
	Panels   []Panel
	// Expanded is the ID of a panel drawn alone at full size.
	Expanded string
	Help     bool
	// Zones, if set, marks every link row as a mouse zone named by
	// LinkZoneID so clicks can be resolved to a URL.
	Zones *zone.Manager
}

var (
	greetingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent))
	clockStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB"))
	helpStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorderFocus)).
			Padding(0, 1)
)

// Render draws a full frame clipped to width x height.
func Render(p Page, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	sections := []string{renderHeader(p, width), ""}
	if p.Help {
		sections = append(sections, renderHelp())
	} else {
		sections = append(sections, renderPanels(p, width))
	}

	out := strings.Split(lipgloss.JoinVertical(lipgloss.Left, sections...), "\n")
	if len(out) > height-1 {
		out = out[:height-1]
	}
	for len(out) < height-1 {
		out = append(out, "")
	}
	out = append(out, renderStatusBar(width))
	frame := strings.Join(out, "\n")
	if p.Zones != nil {
		return p.Zones.Scan(frame)
	}
	return frame
}

func renderHeader(p Page, width int) string {
	greeting := p.Greeting
	if p.Cursor {
		greeting += "▌"
	}
	left := greetingStyle.Render(greeting)
	right := clockStyle.Render(p.Clock)

	gap := width - components.VisibleLen(left) - components.VisibleLen(right)
	if gap < 1 {
		return components.Truncate(left+" "+right, width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func renderPanels(p Page, width int) string {
	if p.Expanded != "" {
		for _, panel := range p.Panels {
			if panel.ID == p.Expanded {
				return renderPanel(panel, width, p.Zones)
			}
		}
	}
	if len(p.Panels) == 0 {
		return components.Dim("no widgets configured")
	}

	cols := width / minPanelWidth
	if cols > maxColumns {
		cols = maxColumns
	}
	if cols > len(p.Panels) {
		cols = len(p.Panels)
	}
	if cols < 1 {
		cols = 1
	}
	colWidth := width / cols

	var rows []string
	for start := 0; start < len(p.Panels); start += cols {
		end := start + cols
		if end > len(p.Panels) {
			end = len(p.Panels)
		}
		var cells []string
		for _, panel := range p.Panels[start:end] {
			cells = append(cells, renderPanel(panel, colWidth, p.Zones))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderPanel(panel Panel, width int, zones *zone.Manager) string {
	border := colorBorderDefault
	style := components.BorderRounded
	switch {
	case panel.Failed:
		border = colorBorderFailed
		style = components.BorderDashed
	case panel.Focused:
		border = colorBorderFocus
		style = components.BorderHeavy
	}

	var lines []string
	var mark func(href, line string) string
	if zones != nil {
		mark = func(href, line string) string { return zones.Mark(LinkZoneID(href), line) }
	}
	for _, l := range nodeLines(panel.Root, mark) {
		lines = append(lines, components.Wrap(l, width-4)...)
	}
	return components.RenderPanel(lines, width, components.BoxStyle{
		Border:     style,
		Title:      panel.Title,
		TitleAlign: components.AlignLeft,
		Badge:      panel.Badge,
		FG:         border,
		MinHeight:  3,
	})
}

func renderHelp() string {
	keys := []string{
		"tab / shift+tab   move focus",
		"enter             expand focused widget",
		"esc               collapse",
		"r                 refresh all widgets",
		"click a link      open it in the browser",
		"?                 toggle this help",
		"q / ctrl+c        quit",
	}
	return helpStyle.Render(strings.Join(keys, "\n"))
}

// renderStatusBar renders the one-line key hint bar, padded or truncated
// to exactly width cells.
func renderStatusBar(width int) string {
	hints := "tab:focus  enter:expand  r:refresh  ?:help  q:quit"
	return components.Dim(components.FitLine(hints, width))
}
