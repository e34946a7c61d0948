package lines

import "strings"

// DefaultTabWidth is the tab stop distance used when none is configured.
const DefaultTabWidth = 4

// Tabs expands tab characters to column based tab stops.
type Tabs struct {
	width int
}

// NewTabs creates a tab expander with the given tab width.
// Widths below 1 fall back to DefaultTabWidth.
func NewTabs(width int) Tabs {
	if width < 1 {
		width = DefaultTabWidth
	}
	return Tabs{width: width}
}

// Width returns the tab width.
func (t Tabs) Width() int {
	return t.width
}

// NextStop returns the next tab stop column after col.
func (t Tabs) NextStop(col int) int {
	return col + t.width - (col % t.width)
}

// Expand returns text with every tab replaced by the spaces up to the
// next tab stop.
func (t Tabs) Expand(text []rune) string {
	var sb strings.Builder
	sb.Grow(len(text))
	col := 0
	for _, r := range text {
		if r == '\t' {
			next := t.NextStop(col)
			sb.WriteString(strings.Repeat(" ", next-col))
			col = next
			continue
		}
		sb.WriteRune(r)
		col++
	}
	return sb.String()
}

// Column returns the display column of character offset i within text.
func (t Tabs) Column(text []rune, i int) int {
	col := 0
	for k, r := range text {
		if k >= i {
			break
		}
		if r == '\t' {
			col = t.NextStop(col)
		} else {
			col++
		}
	}
	return col
}
