package edit

import (
	"testing"

	"github.com/dshills/textengine/internal/engine/buffer"
	"github.com/dshills/textengine/internal/engine/word"
)

// testHost lays out one row per line with every character one unit wide.
type testHost struct {
	buf    *buffer.Buffer
	groups int
	depth  int
}

func newTestHost(text string) *testHost {
	return &testHost{buf: buffer.NewFromString(text)}
}

func (h *testHost) Len() int          { return h.buf.Len() }
func (h *testHost) CharAt(i int) rune { return h.buf.CharAt(i) }

func (h *testHost) InsertChars(pos int, text []rune) int { return h.buf.Insert(pos, text) }
func (h *testHost) DeleteChars(pos, count int) []rune   { return h.buf.Delete(pos, count) }

func (h *testHost) LayoutRow(start int) Row {
	n := h.buf.Len()
	end := start
	width := 0.0
	for end < n {
		c := h.buf.CharAt(end)
		end++
		if c == '\n' {
			break
		}
		width++
	}
	return Row{Chars: end - start, X0: 0, X1: width, Height: 10}
}

func (h *testHost) CharWidth(rowStart, i int) float64 { return 1 }

func (h *testHost) MoveWordLeft(pos int) int  { return word.Left(h.buf, pos) }
func (h *testHost) MoveWordRight(pos int) int { return word.Right(h.buf, pos) }

func (h *testHost) BeginGroup() {
	if h.depth == 0 {
		h.groups++
	}
	h.depth++
}

func (h *testHost) EndGroup() { h.depth-- }

func newTestMachine(text string, opts ...Option) (*Machine, *testHost) {
	h := newTestHost(text)
	return New(h, opts...), h
}

func TestMoveLeftRightClamp(t *testing.T) {
	m, _ := newTestMachine("ab")

	m.Execute(MoveLeft)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}
	for i := 0; i < 5; i++ {
		m.Execute(MoveRight)
	}
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", m.Cursor)
	}
}

func TestMoveCollapsesSelection(t *testing.T) {
	m, _ := newTestMachine("hello world")

	m.SetSelection(8, 2)
	m.Execute(MoveLeft)
	if m.Cursor != 2 || m.HasSelection() {
		t.Errorf("after MoveLeft cursor = %d selection = %v", m.Cursor, m.Selection())
	}

	m.SetSelection(8, 2)
	m.Execute(MoveRight)
	if m.Cursor != 8 || m.HasSelection() {
		t.Errorf("after MoveRight cursor = %d selection = %v", m.Cursor, m.Selection())
	}
}

func TestSelectLeftRight(t *testing.T) {
	m, _ := newTestMachine("hello")
	m.SetCursor(2)

	m.Execute(SelectRight)
	m.Execute(SelectRight)
	if got := m.Selection(); got != buffer.NewRange(2, 2) {
		t.Errorf("Selection = %v, want [2,4)", got)
	}
	m.Execute(SelectLeft)
	m.Execute(SelectLeft)
	m.Execute(SelectLeft)
	if got := m.Selection(); got != buffer.NewRange(1, 1) {
		t.Errorf("Selection = %v, want [1,2)", got)
	}
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}
}

func TestVerticalMotionKeepsPreferredX(t *testing.T) {
	m, _ := newTestMachine("abc\ndefgh\nij")
	m.SetCursor(2)

	m.Execute(MoveDown)
	if m.Cursor != 6 {
		t.Fatalf("first MoveDown cursor = %d, want 6", m.Cursor)
	}
	m.Execute(MoveDown)
	if m.Cursor != 12 {
		t.Fatalf("second MoveDown cursor = %d, want 12", m.Cursor)
	}
	m.Execute(MoveDown)
	if m.Cursor != 12 {
		t.Fatalf("MoveDown on last line cursor = %d, want 12", m.Cursor)
	}
	m.Execute(MoveUp)
	if m.Cursor != 6 {
		t.Fatalf("MoveUp cursor = %d, want 6", m.Cursor)
	}
	m.Execute(MoveUp)
	if m.Cursor != 2 {
		t.Fatalf("second MoveUp cursor = %d, want 2", m.Cursor)
	}
	m.Execute(MoveUp)
	if m.Cursor != 2 {
		t.Fatalf("MoveUp on first line cursor = %d, want 2", m.Cursor)
	}
}

func TestSelectDown(t *testing.T) {
	m, _ := newTestMachine("abc\ndef")
	m.SetCursor(1)

	m.Execute(SelectDown)
	if got := m.Selection(); got != buffer.NewRange(1, 4) {
		t.Errorf("Selection = %v, want [1,5)", got)
	}
}

func TestPageDown(t *testing.T) {
	m, _ := newTestMachine("a\nb\nc\nd\ne", WithPageRows(2))

	m.Execute(MovePageDown)
	if m.Cursor != 4 {
		t.Errorf("Cursor = %d, want 4", m.Cursor)
	}
	m.Execute(MovePageDown)
	if m.Cursor != 8 {
		t.Errorf("Cursor = %d, want 8", m.Cursor)
	}
	m.Execute(MovePageUp)
	if m.Cursor != 4 {
		t.Errorf("Cursor = %d, want 4", m.Cursor)
	}
}

func TestLineStartEnd(t *testing.T) {
	m, _ := newTestMachine("abc\ndefg\n")
	m.SetCursor(5)

	m.Execute(MoveLineEnd)
	if m.Cursor != 8 {
		t.Errorf("MoveLineEnd cursor = %d, want 8", m.Cursor)
	}
	m.Execute(MoveLineStart)
	if m.Cursor != 4 {
		t.Errorf("MoveLineStart cursor = %d, want 4", m.Cursor)
	}
	m.Execute(SelectLineEnd)
	if got := m.Selection(); got != buffer.NewRange(4, 4) {
		t.Errorf("Selection = %v, want [4,8)", got)
	}

	m.SetCursor(9)
	m.Execute(MoveLineStart)
	if m.Cursor != 9 {
		t.Errorf("MoveLineStart on trailing empty line cursor = %d, want 9", m.Cursor)
	}
}

func TestDocStartEndAndSelectAll(t *testing.T) {
	m, _ := newTestMachine("one\ntwo")
	m.SetCursor(5)

	m.Execute(SelectDocEnd)
	if got := m.Selection(); got != buffer.NewRange(5, 2) {
		t.Errorf("Selection = %v, want [5,7)", got)
	}
	m.Execute(MoveDocStart)
	if m.Cursor != 0 || m.HasSelection() {
		t.Errorf("MoveDocStart cursor = %d selection = %v", m.Cursor, m.Selection())
	}
	m.Execute(SelectAll)
	if got := m.Selection(); got != buffer.NewRange(0, 7) || m.Cursor != 7 {
		t.Errorf("SelectAll selection = %v cursor = %d", got, m.Cursor)
	}
}

func TestWordMotion(t *testing.T) {
	m, _ := newTestMachine("foo bar")

	m.Execute(MoveWordRight)
	if m.Cursor != 3 {
		t.Errorf("MoveWordRight cursor = %d, want 3", m.Cursor)
	}
	m.Execute(MoveDocEnd)
	m.Execute(SelectWordLeft)
	if got := m.Selection(); got != buffer.NewRange(4, 3) {
		t.Errorf("SelectWordLeft selection = %v, want [4,7)", got)
	}
}

func TestBackspaceAndDelete(t *testing.T) {
	m, h := newTestMachine("abcd")
	m.SetCursor(2)

	m.Execute(Backspace)
	if h.buf.Text() != "acd" || m.Cursor != 1 {
		t.Errorf("Backspace text = %q cursor = %d", h.buf.Text(), m.Cursor)
	}
	m.Execute(ForwardDelete)
	if h.buf.Text() != "ad" || m.Cursor != 1 {
		t.Errorf("ForwardDelete text = %q cursor = %d", h.buf.Text(), m.Cursor)
	}

	m.SetCursor(0)
	m.Execute(Backspace)
	m.SetCursor(2)
	m.Execute(ForwardDelete)
	if h.buf.Text() != "ad" {
		t.Errorf("deletes at the boundaries changed text to %q", h.buf.Text())
	}
}

func TestBackspaceDeletesSelection(t *testing.T) {
	m, h := newTestMachine("hello world")
	m.SetSelection(11, 5)

	m.Execute(Backspace)
	if h.buf.Text() != "hello" || m.Cursor != 5 || m.HasSelection() {
		t.Errorf("text = %q cursor = %d selection = %v", h.buf.Text(), m.Cursor, m.Selection())
	}
}

func TestDeleteWord(t *testing.T) {
	m, h := newTestMachine("foo bar")
	m.SetCursor(7)

	m.Execute(DeleteWordLeft)
	if h.buf.Text() != "foo " {
		t.Errorf("DeleteWordLeft text = %q", h.buf.Text())
	}
	m.SetCursor(0)
	m.Execute(DeleteWordRight)
	if h.buf.Text() != " " || m.Cursor != 0 {
		t.Errorf("DeleteWordRight text = %q cursor = %d", h.buf.Text(), m.Cursor)
	}
}

func TestInsertChar(t *testing.T) {
	m, h := newTestMachine("")

	for _, r := range "abc" {
		m.InsertChar(r)
	}
	if h.buf.Text() != "abc" || m.Cursor != 3 {
		t.Errorf("text = %q cursor = %d", h.buf.Text(), m.Cursor)
	}
	if h.groups != 0 {
		t.Errorf("plain typing opened %d groups", h.groups)
	}
	if m.InsertChar(0) {
		t.Error("InsertChar(0) should not be handled")
	}
}

func TestTypingReplacesSelectionInOneGroup(t *testing.T) {
	m, h := newTestMachine("hello world")
	m.SetSelection(6, 11)

	m.InsertChar('X')
	if h.buf.Text() != "hello X" || m.Cursor != 7 {
		t.Errorf("text = %q cursor = %d", h.buf.Text(), m.Cursor)
	}
	if h.groups != 1 || h.depth != 0 {
		t.Errorf("groups = %d depth = %d, want 1 and 0", h.groups, h.depth)
	}
}

func TestOverwrite(t *testing.T) {
	m, h := newTestMachine("abc\nd")
	m.Execute(ToggleOverwrite)
	if !m.Overwrite {
		t.Fatal("ToggleOverwrite did not enable overwrite")
	}

	m.InsertChar('x')
	m.InsertChar('y')
	m.InsertChar('z')
	m.InsertChar('w')
	if h.buf.Text() != "xyzw\nd" {
		t.Errorf("text = %q, want %q", h.buf.Text(), "xyzw\nd")
	}

	m.Reset()
	if !m.Overwrite {
		t.Error("Reset cleared overwrite mode")
	}
}

func TestPasteAndCut(t *testing.T) {
	m, h := newTestMachine("one three")
	m.SetCursor(4)

	if !m.Paste([]rune("two ")) {
		t.Fatal("Paste not handled")
	}
	if h.buf.Text() != "one two three" || m.Cursor != 8 {
		t.Errorf("text = %q cursor = %d", h.buf.Text(), m.Cursor)
	}
	if m.Paste(nil) {
		t.Error("empty Paste should not be handled")
	}

	m.SetSelection(4, 8)
	if got := string(m.Cut()); got != "two " {
		t.Errorf("Cut = %q", got)
	}
	if h.buf.Text() != "one three" || m.Cursor != 4 {
		t.Errorf("after Cut text = %q cursor = %d", h.buf.Text(), m.Cursor)
	}
	if m.Cut() != nil {
		t.Error("Cut without a selection should return nil")
	}
}

func TestInsertNewlineCopiesIndent(t *testing.T) {
	m, h := newTestMachine("\t  foo")
	m.SetCursor(6)

	m.Execute(InsertNewline)
	if h.buf.Text() != "\t  foo\n\t  " {
		t.Errorf("text = %q", h.buf.Text())
	}
	if m.Cursor != 10 {
		t.Errorf("Cursor = %d, want 10", m.Cursor)
	}
}

func TestShiftRightLeftSelection(t *testing.T) {
	m, h := newTestMachine("a\nb\nc")
	m.SetSelection(0, 3)

	m.Execute(ShiftRight)
	if h.buf.Text() != "\ta\n\tb\nc" {
		t.Fatalf("ShiftRight text = %q", h.buf.Text())
	}
	if got := m.Selection(); got != buffer.NewRange(0, 5) {
		t.Errorf("ShiftRight selection = %v, want [0,5)", got)
	}

	m.Execute(ShiftLeft)
	if h.buf.Text() != "a\nb\nc" {
		t.Fatalf("ShiftLeft text = %q", h.buf.Text())
	}
	if got := m.Selection(); got != buffer.NewRange(0, 3) {
		t.Errorf("ShiftLeft selection = %v, want [0,3)", got)
	}
}

func TestShiftSkipsLineAtSelectionEndColumnZero(t *testing.T) {
	m, h := newTestMachine("a\nb\nc")
	m.SetSelection(0, 2)

	m.Execute(ShiftRight)
	if h.buf.Text() != "\ta\nb\nc" {
		t.Errorf("text = %q", h.buf.Text())
	}
	if h.groups != 1 {
		t.Errorf("groups = %d, want 1", h.groups)
	}
}

func TestShiftWithSpaces(t *testing.T) {
	m, h := newTestMachine("a", WithIndent(true, 2))
	m.SetCursor(1)

	m.Execute(ShiftRight)
	if h.buf.Text() != "  a" || m.Cursor != 3 {
		t.Errorf("text = %q cursor = %d", h.buf.Text(), m.Cursor)
	}
}

func TestShiftLeftCursorInsideIndent(t *testing.T) {
	m, h := newTestMachine("    x", WithTabWidth(4))
	m.SetCursor(2)

	m.Execute(ShiftLeft)
	if h.buf.Text() != "x" || m.Cursor != 0 {
		t.Errorf("text = %q cursor = %d", h.buf.Text(), m.Cursor)
	}

	m.Execute(ShiftLeft)
	if h.buf.Text() != "x" {
		t.Errorf("outdent without indent changed text to %q", h.buf.Text())
	}
}

func TestLocate(t *testing.T) {
	m, _ := newTestMachine("abc\nde")

	tests := []struct {
		x, y float64
		want int
	}{
		{0.2, 0, 0},
		{1.6, 0, 2},
		{10, 0, 3},
		{-1, 5, 0},
		{0.2, 15, 4},
		{5, 15, 6},
		{5, 100, 6},
		{0, -5, 0},
	}
	for _, tt := range tests {
		if got := m.Locate(tt.x, tt.y); got != tt.want {
			t.Errorf("Locate(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestClickAndDrag(t *testing.T) {
	m, _ := newTestMachine("abc\ndef")

	m.Click(1.2, 2)
	if m.Cursor != 1 || m.HasSelection() {
		t.Fatalf("Click cursor = %d selection = %v", m.Cursor, m.Selection())
	}
	m.Drag(2.2, 12)
	if got := m.Selection(); got != buffer.NewRange(1, 5) || m.Cursor != 6 {
		t.Errorf("Drag selection = %v cursor = %d", got, m.Cursor)
	}
}

func TestCursorPos(t *testing.T) {
	m, _ := newTestMachine("abc\nde\n")

	tests := []struct {
		pos  int
		x, y float64
	}{
		{0, 0, 0},
		{3, 3, 0},
		{5, 1, 10},
		{7, 0, 20},
	}
	for _, tt := range tests {
		m.SetCursor(tt.pos)
		x, y, h := m.CursorPos()
		if x != tt.x || y != tt.y || h != 10 {
			t.Errorf("CursorPos at %d = (%v, %v, %v), want (%v, %v, 10)", tt.pos, x, y, h, tt.x, tt.y)
		}
	}
}

func TestExecuteUnhandled(t *testing.T) {
	m, _ := newTestMachine("abc")

	for _, cmd := range []Command{Cut, Copy, Paste, Undo, Redo, FindNext, FindPrevious, UseSelectionForFind, NoCommand} {
		if m.Execute(cmd) {
			t.Errorf("Execute(%v) handled, want false", cmd)
		}
	}
}

func TestParseCommand(t *testing.T) {
	for _, c := range Commands() {
		got, err := ParseCommand(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCommand(%q) = %v, %v", c.String(), got, err)
		}
	}
	if got, err := ParseCommand("selectall"); err != nil || got != SelectAll {
		t.Errorf("ParseCommand(selectall) = %v, %v", got, err)
	}
	if _, err := ParseCommand("explode"); err == nil {
		t.Error("ParseCommand(explode) should fail")
	}
	if !SelectPageUp.IsSelecting() || MoveLeft.IsSelecting() {
		t.Error("IsSelecting misclassified")
	}
	if !Paste.IsMutating() || Copy.IsMutating() {
		t.Error("IsMutating misclassified")
	}
}
