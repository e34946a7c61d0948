package engine

import (
	"github.com/dshills/textengine/internal/engine/buffer"
	"github.com/dshills/textengine/internal/engine/edit"
	"github.com/dshills/textengine/internal/engine/word"
)

// textHost connects the edit machine and the undo history to the editor's
// storage. Every mutation is recorded before it is applied and keeps the
// line index in step with the buffer.
type textHost struct {
	e *Editor
}

var (
	_ edit.Host    = (*textHost)(nil)
	_ edit.Grouper = (*textHost)(nil)
)

func (h *textHost) Len() int          { return h.e.buf.Len() }
func (h *textHost) CharAt(i int) rune { return h.e.buf.CharAt(i) }

// InsertChars implements edit.Host and history.Target.
func (h *textHost) InsertChars(pos int, text []rune) int {
	e := h.e
	if len(text) == 0 {
		return 0
	}
	pos = buffer.ClampOffset(pos, e.buf.Len())
	e.hist.CreateRecord(e.buf, pos, len(text), 0)
	n := e.buf.Insert(pos, text)
	e.index.Inserted(e.buf, pos, n)
	e.textEdited()
	return n
}

// DeleteChars implements edit.Host and history.Target.
func (h *textHost) DeleteChars(pos, count int) []rune {
	e := h.e
	n := e.buf.Len()
	pos = buffer.ClampOffset(pos, n)
	count = min(count, n-pos)
	if count <= 0 {
		return nil
	}
	e.hist.CreateRecord(e.buf, pos, 0, count)
	removed := e.buf.Delete(pos, count)
	e.index.Deleted(e.buf, pos, len(removed))
	e.textEdited()
	return removed
}

// LayoutRow returns the logical line starting at start. Rows are never
// wrapped for navigation.
func (h *textHost) LayoutRow(start int) edit.Row {
	e := h.e
	line := e.index.Line(e.index.Find(start))
	row := edit.Row{
		Chars:  max(line.End()-start, 0),
		Height: e.LineHeight(),
	}
	if start == line.Start {
		row.X1 = line.Width
	} else {
		for _, w := range h.widths(start) {
			row.X1 += w
		}
	}
	return row
}

// CharWidth returns the width of character i of the row at rowStart.
// A tab advances to the next tab stop.
func (h *textHost) CharWidth(rowStart, i int) float64 {
	w := h.widths(rowStart)
	if i < 0 || i >= len(w) {
		return 0
	}
	return w[i]
}

func (h *textHost) MoveWordLeft(pos int) int  { return word.Left(h.e.buf, pos) }
func (h *textHost) MoveWordRight(pos int) int { return word.Right(h.e.buf, pos) }

func (h *textHost) BeginGroup() { h.e.hist.BeginGroup() }
func (h *textHost) EndGroup()   { h.e.hist.EndGroup() }

// rowCache holds the character widths of the most recently measured row.
type rowCache struct {
	valid   bool
	version uint64
	start   int
	widths  []float64
}

// widths returns the width of every character from start to the end of
// its line, reusing the cache while the text is unchanged.
func (h *textHost) widths(start int) []float64 {
	e := h.e
	c := &e.rows
	if c.valid && c.version == e.version && c.start == start {
		return c.widths
	}

	line := e.index.Line(e.index.Find(start))
	tabs := e.index.Tabs()
	space := e.font.MeasureWidth(" ")

	col := 0
	for i := line.Start; i < start; i++ {
		col = advance(tabs.NextStop, col, e.buf.CharAt(i))
	}

	c.widths = c.widths[:0]
	for i := start; i < line.End(); i++ {
		r := e.buf.CharAt(i)
		switch r {
		case '\n':
			c.widths = append(c.widths, 0)
		case '\t':
			next := tabs.NextStop(col)
			c.widths = append(c.widths, float64(next-col)*space)
			col = next
		default:
			c.widths = append(c.widths, e.font.MeasureWidth(string(r)))
			col++
		}
	}
	c.valid, c.version, c.start = true, e.version, start
	return c.widths
}

func advance(nextStop func(int) int, col int, r rune) int {
	if r == '\t' {
		return nextStop(col)
	}
	return col + 1
}
