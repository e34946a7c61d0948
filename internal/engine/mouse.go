package engine

import (
	"github.com/dshills/textengine/internal/engine/buffer"
	"github.com/dshills/textengine/internal/engine/word"
	"github.com/dshills/textengine/internal/input/key"
)

// Button identifies a mouse button.
type Button uint8

// Mouse buttons.
const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// MouseEvent is a pointer event in text coordinates: x from the left edge
// of the text and y from the top of the first row.
type MouseEvent struct {
	X, Y       float64
	Button     Button
	ClickCount int
	Modifiers  key.Modifier
}

type mouseState struct {
	down   bool
	clicks int
	// sel is the selection made by the press, which drags extend.
	sel Range
}

// HandleMouseDown places the cursor. A double click selects the word or
// bracketed text under the pointer and a triple click selects the line.
// With Shift held the selection extends from the existing anchor.
// Only the left button is handled.
func (e *Editor) HandleMouseDown(ev MouseEvent) bool {
	if ev.Button != ButtonLeft {
		return false
	}
	defer e.batch()()

	before := e.mach.State
	e.mach.Click(ev.X, ev.Y)

	switch {
	case ev.Modifiers.HasShift():
		anchor := before.Cursor
		if before.HasSelection() {
			anchor = before.SelectStart
		}
		e.mach.SetSelection(anchor, e.mach.Cursor)
	case ev.ClickCount > 1:
		e.selectOnMultiClick(ev.ClickCount)
	}

	e.mouse = mouseState{
		down:   true,
		clicks: ev.ClickCount,
		sel:    e.Selection(),
	}
	return true
}

// HandleMouseMove extends the selection while the button is down. After a
// double or triple click the selection grows by whole words or lines.
func (e *Editor) HandleMouseMove(ev MouseEvent) bool {
	if !e.mouse.down {
		return false
	}
	defer e.batch()()

	e.mach.Drag(ev.X, ev.Y)
	if e.mouse.clicks > 1 {
		e.extendMultiClick(e.mouse.clicks)
	}
	return true
}

// HandleMouseUp ends a press.
func (e *Editor) HandleMouseUp(MouseEvent) bool {
	if !e.mouse.down {
		return false
	}
	e.mouse.down = false
	return true
}

// CancelMouse abandons a press without changing the selection.
func (e *Editor) CancelMouse() {
	e.mouse.down = false
}

// IsMouseDown returns true between a handled press and its release.
func (e *Editor) IsMouseDown() bool {
	return e.mouse.down
}

func (e *Editor) selectOnMultiClick(clicks int) {
	cursor := e.mach.Cursor
	if cursor >= e.buf.Len() {
		return
	}
	if clicks > 2 {
		line := e.index.Line(e.index.Find(cursor))
		e.mach.SetSelection(line.Start, line.End())
		return
	}
	if r, ok := word.At(e.buf, cursor); ok {
		e.mach.SetSelection(r.Start, r.End())
		return
	}
	if r, ok := word.Pair(e.buf, cursor); ok {
		e.mach.SetSelection(r.Start, r.End())
	}
}

func (e *Editor) extendMultiClick(clicks int) {
	cursor := e.mach.Cursor
	down := e.mouse.sel

	if clicks > 2 {
		line := e.index.Line(e.index.Find(cursor))
		if line.Start >= down.Start {
			e.mach.SetSelection(down.Start, max(line.End(), down.End()))
		} else {
			e.mach.SetSelection(down.End(), line.Start)
		}
		return
	}

	r, ok := word.At(e.buf, cursor)
	if !ok {
		r = buffer.NewRange(cursor, 0)
	}
	if cursor < down.Start {
		e.mach.SetSelection(down.End(), min(r.Start, down.Start))
		return
	}
	e.mach.SetSelection(down.Start, max(r.End(), down.End()))
}
