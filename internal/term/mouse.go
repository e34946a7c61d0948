package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textengine/internal/engine"
)

// DoubleClickTime is the longest gap between presses that still counts
// as a multi-click.
const DoubleClickTime = 400 * time.Millisecond

// wheelLines is how far one wheel notch scrolls.
const wheelLines = 3

// clickCounter turns presses into click counts. Presses on the same cell
// within DoubleClickTime count up to a triple click.
type clickCounter struct {
	last  time.Time
	x, y  int
	count int
}

func (c *clickCounter) press(x, y int, now time.Time) int {
	if c.count > 0 && c.count < 3 && x == c.x && y == c.y && now.Sub(c.last) <= DoubleClickTime {
		c.count++
	} else {
		c.count = 1
	}
	c.last = now
	c.x, c.y = x, y
	return c.count
}

func translateButton(b tcell.ButtonMask) engine.Button {
	switch {
	case b&tcell.ButtonPrimary != 0:
		return engine.ButtonLeft
	case b&tcell.ButtonMiddle != 0:
		return engine.ButtonMiddle
	case b&tcell.ButtonSecondary != 0:
		return engine.ButtonRight
	default:
		return engine.ButtonNone
	}
}

// handleMouse feeds a tcell mouse event to the editor. tcell reports
// button state rather than transitions, so presses and releases are
// derived from the previous state.
func (h *Host) handleMouse(ev *tcell.EventMouse) bool {
	sx, sy := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		h.scroll(-wheelLines)
		return true
	case buttons&tcell.WheelDown != 0:
		h.scroll(wheelLines)
		return true
	}

	me := h.mouseEvent(sx, sy)
	me.Button = translateButton(buttons)
	me.Modifiers = translateMods(ev.Modifiers())

	switch {
	case me.Button != engine.ButtonNone && h.pressed == engine.ButtonNone:
		h.pressed = me.Button
		if sy >= h.textRows() {
			return false
		}
		me.ClickCount = h.clicks.press(sx, sy, h.now())
		h.follow = true
		return h.editor.HandleMouseDown(me)

	case me.Button != engine.ButtonNone:
		if !h.editor.IsMouseDown() {
			return false
		}
		h.follow = true
		return h.editor.HandleMouseMove(me)

	case h.pressed != engine.ButtonNone:
		me.Button = h.pressed
		h.pressed = engine.ButtonNone
		return h.editor.HandleMouseUp(me)
	}
	return false
}

// mouseEvent converts a screen cell to text coordinates.
func (h *Host) mouseEvent(sx, sy int) engine.MouseEvent {
	col := sx - h.gutterWidth() + h.left
	if col < 0 {
		col = 0
	}
	row := sy + h.top
	if row < 0 {
		row = 0
	}
	return engine.MouseEvent{
		X: float64(col),
		Y: float64(row) * h.editor.LineHeight(),
	}
}
