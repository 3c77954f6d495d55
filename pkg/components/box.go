package components

import (
	"strings"
)

// BorderStyle selects which set of box-drawing characters to use.
type BorderStyle int

const (
	// BorderRounded uses single-line characters with rounded corners.
	BorderRounded BorderStyle = iota
	// BorderHeavy uses heavy (thick) box-drawing characters.
	BorderHeavy
	// BorderDashed uses dashed box-drawing characters.
	BorderDashed
)

// borderChars holds the characters that define a border.
type borderChars struct {
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
	Horizontal  string
	Vertical    string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		TopLeft: "╭", TopRight: "╮",
		BottomLeft: "╰", BottomRight: "╯",
		Horizontal: "─", Vertical: "│",
	},
	BorderHeavy: {
		TopLeft: "┏", TopRight: "┓",
		BottomLeft: "┗", BottomRight: "┛",
		Horizontal: "━", Vertical: "┃",
	},
	BorderDashed: {
		TopLeft: "╭", TopRight: "╮",
		BottomLeft: "╰", BottomRight: "╯",
		Horizontal: "┄", Vertical: "┆",
	},
}

// BoxStyle controls the visual appearance of a rendered panel.
type BoxStyle struct {
	Border     BorderStyle
	Title      string
	TitleAlign Align
	// Badge is drawn at the right end of the top border (e.g. a spinner).
	Badge string
	// FG is the border color as hex ("#7C3AED") or a raw escape sequence.
	FG string
	// MinHeight is the smallest outer height; shorter content is padded
	// with blank rows.
	MinHeight int
}

// RenderPanel draws lines inside a bordered panel of the given outer width.
// The panel is as tall as its content (plus borders), or MinHeight if that
// is larger. Each line is truncated or padded to the interior width; the
// interior keeps a one-cell margin on both sides.
func RenderPanel(lines []string, width int, style BoxStyle) string {
	// Two border cells plus a one-cell margin on each side.
	if width < 4 {
		return ""
	}
	chars, ok := borderSets[style.Border]
	if !ok {
		chars = borderSets[BorderRounded]
	}
	pre, suf := borderColors(style.FG)
	interior := width - 4

	rows := len(lines)
	if min := style.MinHeight - 2; rows < min {
		rows = min
	}

	var buf strings.Builder
	buf.WriteString(pre + chars.TopLeft + suf)
	buf.WriteString(renderTitleBar(style.Title, style.Badge, style.TitleAlign, width-2, chars.Horizontal, pre, suf))
	buf.WriteString(pre + chars.TopRight + suf)

	for i := 0; i < rows; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		buf.WriteByte('\n')
		buf.WriteString(pre + chars.Vertical + suf)
		buf.WriteByte(' ')
		buf.WriteString(FitLine(line, interior))
		buf.WriteByte(' ')
		buf.WriteString(pre + chars.Vertical + suf)
	}

	buf.WriteByte('\n')
	buf.WriteString(pre + chars.BottomLeft + strings.Repeat(chars.Horizontal, width-2) + chars.BottomRight + suf)
	return buf.String()
}

// renderTitleBar fills barWidth cells of the top border, embedding the
// title (aligned) and the badge (right) when they fit.
func renderTitleBar(title, badge string, align Align, barWidth int, hChar, pre, suf string) string {
	badgeSeg := ""
	if badge != "" {
		badgeSeg = " " + badge + " "
		if VisibleLen(badgeSeg)+2 > barWidth {
			badgeSeg = ""
		}
	}
	avail := barWidth - VisibleLen(badgeSeg)
	if badgeSeg != "" {
		avail-- // keep one border cell after the badge
	}

	titleSeg := ""
	// One border cell on each side of " title ".
	if maxTitle := avail - 4; title != "" && maxTitle > 0 {
		if VisibleLen(title) > maxTitle {
			title = TruncateWithTail(title, maxTitle, "…")
		}
		titleSeg = " " + title + " "
	}

	remaining := avail - VisibleLen(titleSeg)
	var left, right int
	switch align {
	case AlignCenter:
		left = remaining / 2
		right = remaining - left
	case AlignRight:
		left = remaining - 1
		right = 1
	default:
		left = 1
		right = remaining - 1
	}
	if titleSeg == "" {
		left, right = remaining, 0
	}
	if left < 0 {
		left = 0
	}
	if right < 0 {
		right = 0
	}

	var buf strings.Builder
	buf.WriteString(pre + strings.Repeat(hChar, left) + suf)
	buf.WriteString(titleSeg)
	buf.WriteString(pre + strings.Repeat(hChar, right) + suf)
	if badgeSeg != "" {
		buf.WriteString(badgeSeg)
		buf.WriteString(pre + hChar + suf)
	}
	return buf.String()
}

// borderColors returns the escape prefix and reset suffix for border
// characters. An empty fg means uncolored borders.
func borderColors(fg string) (pre, suf string) {
	if fg == "" {
		return "", ""
	}
	if strings.HasPrefix(fg, "\x1b") {
		return fg, Reset()
	}
	if c := Color(fg); c != "" {
		return c, Reset()
	}
	return "", ""
}
