package edit

import "github.com/dshills/textengine/internal/engine/buffer"

// Defaults for a new Machine.
const (
	DefaultPageRows    = 20
	DefaultTabWidth    = 4
	DefaultIndentWidth = 4
)

// Option configures a Machine.
type Option func(*Machine)

// WithPageRows sets the number of rows moved by page up and page down.
func WithPageRows(n int) Option {
	return func(m *Machine) {
		m.SetPageRows(n)
	}
}

// WithIndent configures what ShiftRight inserts per level.
func WithIndent(spaces bool, width int) Option {
	return func(m *Machine) {
		m.SetIndent(spaces, width)
	}
}

// WithTabWidth sets the number of leading spaces ShiftLeft may remove.
func WithTabWidth(n int) Option {
	return func(m *Machine) {
		if n > 0 {
			m.tabWidth = n
		}
	}
}

// Machine interprets commands, typed text and pointer input against a Host.
type Machine struct {
	host Host
	State

	pageRows         int
	tabWidth         int
	indentWidth      int
	indentWithSpaces bool
}

// New creates a machine editing host.
func New(host Host, opts ...Option) *Machine {
	m := &Machine{
		host:        host,
		pageRows:    DefaultPageRows,
		tabWidth:    DefaultTabWidth,
		indentWidth: DefaultIndentWidth,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetPageRows sets the number of rows moved by page up and page down.
func (m *Machine) SetPageRows(n int) {
	if n > 0 {
		m.pageRows = n
	}
}

// SetIndent configures what ShiftRight inserts per level.
func (m *Machine) SetIndent(spaces bool, width int) {
	m.indentWithSpaces = spaces
	if width > 0 {
		m.indentWidth = width
	}
}

// SetTabWidth sets the number of leading spaces ShiftLeft may remove.
func (m *Machine) SetTabWidth(n int) {
	if n > 0 {
		m.tabWidth = n
	}
}

// Reset puts the cursor at the start and clears the selection.
func (m *Machine) Reset() {
	overwrite := m.Overwrite
	m.State = State{Overwrite: overwrite}
}

// SetSelection selects [start, end) and puts the cursor at end.
func (m *Machine) SetSelection(start, end int) {
	m.SelectStart = start
	m.SelectEnd = end
	m.Cursor = end
	m.HasPreferredX = false
	m.clamp()
}

// SetCursor moves the cursor to pos and clears the selection.
func (m *Machine) SetCursor(pos int) {
	m.SetSelection(pos, pos)
}

// clamp keeps every offset inside the text.
func (m *Machine) clamp() {
	n := m.host.Len()
	if m.HasSelection() {
		m.SelectStart = buffer.ClampOffset(m.SelectStart, n)
		m.SelectEnd = buffer.ClampOffset(m.SelectEnd, n)
		if m.SelectStart == m.SelectEnd {
			m.Cursor = m.SelectStart
		}
	}
	m.Cursor = buffer.ClampOffset(m.Cursor, n)
}

func (m *Machine) sortSelection() {
	if m.SelectEnd < m.SelectStart {
		m.SelectStart, m.SelectEnd = m.SelectEnd, m.SelectStart
	}
}

// moveToFirst collapses the selection to its start.
func (m *Machine) moveToFirst() {
	if m.HasSelection() {
		m.sortSelection()
		m.Cursor = m.SelectStart
		m.SelectEnd = m.SelectStart
		m.HasPreferredX = false
	}
}

// moveToLast collapses the selection to its end.
func (m *Machine) moveToLast() {
	if m.HasSelection() {
		m.sortSelection()
		m.clamp()
		m.Cursor = m.SelectEnd
		m.SelectStart = m.SelectEnd
		m.HasPreferredX = false
	}
}

// prepSelectionAtCursor anchors a new selection at the cursor, or makes
// the cursor the moving end of an existing one.
func (m *Machine) prepSelectionAtCursor() {
	if !m.HasSelection() {
		m.SelectStart = m.Cursor
		m.SelectEnd = m.Cursor
	} else {
		m.Cursor = m.SelectEnd
	}
}

func (m *Machine) collapse() {
	m.SelectStart = m.Cursor
	m.SelectEnd = m.Cursor
}

// deleteSelection removes the selected text and collapses onto its start.
func (m *Machine) deleteSelection() {
	m.clamp()
	if !m.HasSelection() {
		return
	}
	r := m.Selection()
	m.host.DeleteChars(r.Start, r.Length)
	m.Cursor = r.Start
	m.collapse()
	m.HasPreferredX = false
}

// group runs fn as one undo step when the host records history.
func (m *Machine) group(fn func()) {
	g, ok := m.host.(Grouper)
	if !ok {
		fn()
		return
	}
	g.BeginGroup()
	defer g.EndGroup()
	fn()
}

// charPos locates a character within the row layout.
type charPos struct {
	x, y      float64
	height    float64
	rowStart  int
	rowLen    int
	prevStart int
}

// findCharPos returns the position of the cursor placed before character n.
func (m *Machine) findCharPos(n int) charPos {
	z := m.host.Len()
	start, prev := 0, 0
	y := 0.0
	for {
		r := m.host.LayoutRow(start)
		end := start + r.Chars
		last := end >= z && !(n >= z && z > 0 && end == z && m.host.CharAt(z-1) == '\n')
		if r.Chars <= 0 || n < end || last {
			x := r.X0
			for i := start; i < n && i < end; i++ {
				x += m.host.CharWidth(start, i-start)
			}
			return charPos{
				x:         x,
				y:         y,
				height:    r.Height,
				rowStart:  start,
				rowLen:    max(r.Chars, 0),
				prevStart: prev,
			}
		}
		y += r.Height
		prev = start
		start = end
	}
}

// Locate returns the character offset closest to the point (x, y).
func (m *Machine) Locate(x, y float64) int {
	n := m.host.Len()
	base := 0.0
	i := 0
	var r Row
	for i < n {
		r = m.host.LayoutRow(i)
		if r.Chars <= 0 {
			return n
		}
		if i == 0 && y < base {
			return 0
		}
		if y < base+r.Height {
			break
		}
		i += r.Chars
		base += r.Height
	}
	if i >= n {
		return n
	}

	if x < r.X0 {
		return i
	}
	if x < r.X1 {
		prevX := r.X0
		for k := 0; k < r.Chars; k++ {
			w := m.host.CharWidth(i, k)
			if x < prevX+w {
				if x < prevX+w/2 {
					return i + k
				}
				return i + k + 1
			}
			prevX += w
		}
	}
	if m.host.CharAt(i+r.Chars-1) == '\n' {
		return i + r.Chars - 1
	}
	return i + r.Chars
}

// CursorPos returns the x position, row top and row height of the cursor.
func (m *Machine) CursorPos() (x, y, height float64) {
	p := m.findCharPos(m.Cursor)
	return p.x, p.y, p.height
}

// Click places the cursor at (x, y) and clears the selection.
func (m *Machine) Click(x, y float64) {
	m.Cursor = m.Locate(x, y)
	m.collapse()
	m.HasPreferredX = false
}

// Drag extends the selection to (x, y).
func (m *Machine) Drag(x, y float64) {
	p := m.Locate(x, y)
	if !m.HasSelection() {
		m.SelectStart = m.Cursor
	}
	m.Cursor = p
	m.SelectEnd = p
}

// lineStart returns the offset of the first character of the line holding pos.
func (m *Machine) lineStart(pos int) int {
	for pos > 0 && m.host.CharAt(pos-1) != '\n' {
		pos--
	}
	return pos
}

// lineEnd returns the offset of the newline ending the line holding pos,
// or the text length.
func (m *Machine) lineEnd(pos int) int {
	n := m.host.Len()
	for pos < n && m.host.CharAt(pos) != '\n' {
		pos++
	}
	return pos
}
