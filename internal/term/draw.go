package term

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var (
	textStyle      = tcell.StyleDefault
	selectionStyle = tcell.StyleDefault.Reverse(true)
	gutterStyle    = tcell.StyleDefault.Dim(true)
	statusStyle    = tcell.StyleDefault.Reverse(true)
)

// textRows returns the number of rows available for text. The last row
// holds the status bar.
func (h *Host) textRows() int {
	_, height := h.screen.Size()
	if height > 1 {
		return height - 1
	}
	return 1
}

// gutterWidth returns the width of the line number gutter including its
// separating space.
func (h *Host) gutterWidth() int {
	return h.editor.GutterDigits() + 1
}

// lineRunes returns the characters of line i without its newline.
func (h *Host) lineRunes(i int) []rune {
	text := h.editor.TextRange(h.editor.Line(i).Range)
	return []rune(strings.TrimSuffix(text, "\n"))
}

// walkLine calls fn for each character of line i with its offset, display
// column and cell advance, and returns the column after the last one.
// Tabs advance to the next tab stop. Lines are never wrapped or truncated
// here; overlong lines scroll horizontally.
func (h *Host) walkLine(i int, fn func(pos, col, width int, r rune)) int {
	tab := h.editor.TabWidth()
	pos := h.editor.Line(i).Start
	col := 0
	for _, r := range h.lineRunes(i) {
		var w int
		if r == '\t' {
			w = tab - col%tab
		} else {
			w = runewidth.RuneWidth(r)
		}
		fn(pos, col, w, r)
		col += w
		pos++
	}
	return col
}

// column returns the display column of offset pos on line i.
func (h *Host) column(i, pos int) int {
	col := -1
	end := h.walkLine(i, func(p, c, _ int, _ rune) {
		if p == pos && col < 0 {
			col = c
		}
	})
	if col < 0 {
		return end
	}
	return col
}

// scrollToCursor adjusts the viewport so the cursor is visible.
func (h *Host) scrollToCursor(cols, rows int) {
	e := h.editor
	line := e.LineAt(e.Cursor())
	if line < h.top {
		h.top = line
	}
	if line >= h.top+rows {
		h.top = line - rows + 1
	}

	col := h.column(line, e.Cursor())
	if col < h.left {
		h.left = col
	}
	if cols > 0 && col >= h.left+cols {
		h.left = col - cols + 1
	}
}

func (h *Host) draw() {
	s := h.screen
	e := h.editor
	s.Clear()

	width, _ := s.Size()
	rows := h.textRows()
	gutter := h.gutterWidth()
	if h.follow {
		h.scrollToCursor(width-gutter, rows)
	}

	sel := e.Selection()
	for y := 0; y < rows; y++ {
		i := h.top + y
		if i >= e.LineCount() {
			break
		}
		drawString(s, 0, y, fmt.Sprintf("%*d", gutter-1, i+1), gutterStyle)

		h.walkLine(i, func(pos, col, w int, r rune) {
			style := textStyle
			if sel.Contains(pos) {
				style = selectionStyle
			}
			x := gutter + col - h.left
			if r == '\t' {
				for k := 0; k < w; k++ {
					if x+k >= gutter && x+k < width {
						s.SetContent(x+k, y, ' ', nil, style)
					}
				}
				return
			}
			if w > 0 && x >= gutter && x+w <= width {
				s.SetContent(x, y, r, nil, style)
			}
		})
	}

	h.drawStatus(width, rows)
	h.drawCursor(width, rows, gutter)
	s.Show()
}

func (h *Host) drawCursor(width, rows, gutter int) {
	x, y := h.cursorCell()
	if !h.editor.CursorVisible() || x < gutter || x >= width || y < 0 || y >= rows {
		h.screen.HideCursor()
		return
	}
	h.screen.ShowCursor(x, y)
}

func (h *Host) drawStatus(width, row int) {
	e := h.editor
	line := e.LineAt(e.Cursor())

	var b strings.Builder
	fmt.Fprintf(&b, " Ln %d, Col %d", line+1, h.column(line, e.Cursor())+1)
	if e.HasSelection() {
		fmt.Fprintf(&b, " (%d selected)", e.Selection().Length)
	}
	if e.IsOverwrite() {
		b.WriteString(" OVR")
	}
	if u, r := e.UndoCount(), e.RedoCount(); u > 0 || r > 0 {
		fmt.Fprintf(&b, " Undo %d Redo %d", u, r)
	}
	if f := e.FindString(); f != "" {
		fmt.Fprintf(&b, " Find: %s", f)
	}

	status := runewidth.Truncate(b.String(), width, "…")
	status = runewidth.FillRight(status, width)
	drawString(h.screen, 0, row, status, statusStyle)
}

// drawString draws text starting at x, advancing by each rune's width.
func drawString(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
}

// cursorCell returns the screen cell of the cursor.
func (h *Host) cursorCell() (x, y int) {
	e := h.editor
	line := e.LineAt(e.Cursor())
	return h.gutterWidth() + h.column(line, e.Cursor()) - h.left, line - h.top
}
