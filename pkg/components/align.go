// Package components provides the box and ANSI-aware text primitives the
// terminal view is drawn with. Everything here works on visible cell
// widths, so styled strings and wide characters line up.
package components

// Align controls horizontal placement of a panel title.
type Align int

const (
	// AlignLeft aligns text to the left edge (default).
	AlignLeft Align = iota
	// AlignCenter centers text horizontally.
	AlignCenter
	// AlignRight aligns text to the right edge.
	AlignRight
)
