package edit

// Execute runs a navigation or editing command.
// It returns false for commands the machine does not handle; clipboard,
// history and find commands belong to the caller.
func (m *Machine) Execute(cmd Command) bool {
	switch cmd {
	case MoveLeft:
		if m.HasSelection() {
			m.moveToFirst()
		} else if m.Cursor > 0 {
			m.Cursor--
		}
		m.HasPreferredX = false

	case MoveRight:
		if m.HasSelection() {
			m.moveToLast()
		} else {
			m.Cursor++
		}
		m.clamp()
		m.HasPreferredX = false

	case SelectLeft:
		m.clamp()
		m.prepSelectionAtCursor()
		if m.SelectEnd > 0 {
			m.SelectEnd--
		}
		m.Cursor = m.SelectEnd
		m.HasPreferredX = false

	case SelectRight:
		m.prepSelectionAtCursor()
		m.SelectEnd++
		m.clamp()
		m.Cursor = m.SelectEnd
		m.HasPreferredX = false

	case MoveWordLeft:
		if m.HasSelection() {
			m.moveToFirst()
		} else {
			m.Cursor = m.host.MoveWordLeft(m.Cursor)
			m.clamp()
		}
		m.HasPreferredX = false

	case SelectWordLeft:
		if !m.HasSelection() {
			m.prepSelectionAtCursor()
		}
		m.Cursor = m.host.MoveWordLeft(m.Cursor)
		m.SelectEnd = m.Cursor
		m.clamp()
		m.HasPreferredX = false

	case MoveWordRight:
		if m.HasSelection() {
			m.moveToLast()
		} else {
			m.Cursor = m.host.MoveWordRight(m.Cursor)
			m.clamp()
		}
		m.HasPreferredX = false

	case SelectWordRight:
		if !m.HasSelection() {
			m.prepSelectionAtCursor()
		}
		m.Cursor = m.host.MoveWordRight(m.Cursor)
		m.SelectEnd = m.Cursor
		m.clamp()
		m.HasPreferredX = false

	case MoveDown, SelectDown:
		m.moveVertical(1, cmd == SelectDown)
	case MovePageDown, SelectPageDown:
		m.moveVertical(m.pageRows, cmd == SelectPageDown)
	case MoveUp, SelectUp:
		m.moveVertical(-1, cmd == SelectUp)
	case MovePageUp, SelectPageUp:
		m.moveVertical(-m.pageRows, cmd == SelectPageUp)

	case MoveLineStart:
		m.clamp()
		m.moveToFirst()
		m.Cursor = m.findCharPos(m.Cursor).rowStart
		m.HasPreferredX = false

	case SelectLineStart:
		m.clamp()
		m.prepSelectionAtCursor()
		m.Cursor = m.findCharPos(m.Cursor).rowStart
		m.SelectEnd = m.Cursor
		m.HasPreferredX = false

	case MoveLineEnd:
		m.clamp()
		m.moveToLast()
		m.Cursor = m.rowEnd(m.Cursor)
		m.HasPreferredX = false

	case SelectLineEnd:
		m.clamp()
		m.prepSelectionAtCursor()
		m.Cursor = m.rowEnd(m.Cursor)
		m.SelectEnd = m.Cursor
		m.HasPreferredX = false

	case MoveDocStart:
		m.Cursor = 0
		m.collapse()
		m.HasPreferredX = false

	case SelectDocStart:
		m.prepSelectionAtCursor()
		m.Cursor = 0
		m.SelectEnd = 0
		m.HasPreferredX = false

	case MoveDocEnd:
		m.Cursor = m.host.Len()
		m.collapse()
		m.HasPreferredX = false

	case SelectDocEnd:
		m.prepSelectionAtCursor()
		m.Cursor = m.host.Len()
		m.SelectEnd = m.Cursor
		m.HasPreferredX = false

	case SelectAll:
		m.SetSelection(0, m.host.Len())

	case Backspace:
		if m.HasSelection() {
			m.deleteSelection()
		} else {
			m.clamp()
			if m.Cursor > 0 {
				m.host.DeleteChars(m.Cursor-1, 1)
				m.Cursor--
			}
			m.collapse()
		}
		m.HasPreferredX = false

	case ForwardDelete:
		if m.HasSelection() {
			m.deleteSelection()
		} else {
			m.clamp()
			if m.Cursor < m.host.Len() {
				m.host.DeleteChars(m.Cursor, 1)
			}
			m.collapse()
		}
		m.HasPreferredX = false

	case DeleteWordLeft:
		if m.HasSelection() {
			m.deleteSelection()
		} else {
			m.clamp()
			start := m.host.MoveWordLeft(m.Cursor)
			if start < m.Cursor {
				m.host.DeleteChars(start, m.Cursor-start)
				m.Cursor = start
			}
			m.collapse()
		}
		m.HasPreferredX = false

	case DeleteWordRight:
		if m.HasSelection() {
			m.deleteSelection()
		} else {
			m.clamp()
			end := m.host.MoveWordRight(m.Cursor)
			if end > m.Cursor {
				m.host.DeleteChars(m.Cursor, end-m.Cursor)
			}
			m.collapse()
		}
		m.HasPreferredX = false

	case ToggleOverwrite:
		m.Overwrite = !m.Overwrite

	case InsertNewline:
		m.InsertNewline()

	case ShiftLeft:
		m.Shift(false)
	case ShiftRight:
		m.Shift(true)

	default:
		return false
	}
	return true
}

// rowEnd returns the end of the row holding pos, before any newline.
func (m *Machine) rowEnd(pos int) int {
	p := m.findCharPos(pos)
	end := p.rowStart + p.rowLen
	if p.rowLen > 0 && m.host.CharAt(end-1) == '\n' {
		end--
	}
	return end
}

// moveVertical moves the cursor by rows, keeping the preferred x position.
// Negative rows move up.
func (m *Machine) moveVertical(rows int, selecting bool) {
	if selecting {
		m.prepSelectionAtCursor()
	} else if rows > 0 {
		m.moveToLast()
	} else {
		m.moveToFirst()
	}
	m.clamp()

	find := m.findCharPos(m.Cursor)
	count := rows
	if count < 0 {
		count = -count
	}
	for j := 0; j < count; j++ {
		goalX := find.x
		if m.HasPreferredX {
			goalX = m.PreferredX
		}

		var target int
		if rows > 0 {
			if find.rowLen == 0 {
				break
			}
			// The last row has nowhere to go down to.
			if m.host.CharAt(find.rowStart+find.rowLen-1) != '\n' {
				break
			}
			target = find.rowStart + find.rowLen
		} else {
			if find.prevStart == find.rowStart {
				break
			}
			target = find.prevStart
		}

		row := m.host.LayoutRow(target)
		m.Cursor = m.columnAt(target, row, goalX)
		m.clamp()
		m.HasPreferredX = true
		m.PreferredX = goalX
		if selecting {
			m.SelectEnd = m.Cursor
		}

		if rows > 0 {
			find.prevStart = find.rowStart
			find.rowStart = target
			find.rowLen = row.Chars
		} else {
			find.rowStart = target
			find.rowLen = row.Chars
			find.prevStart = m.lineStart(max(target-1, 0))
		}
	}
	if !selecting {
		m.collapse()
	}
}

// columnAt returns the offset in the row starting at start whose right
// edge first passes goalX, stopping before a newline.
func (m *Machine) columnAt(start int, row Row, goalX float64) int {
	pos := start
	x := row.X0
	for i := 0; i < row.Chars; i++ {
		if m.host.CharAt(start+i) == '\n' {
			break
		}
		x += m.host.CharWidth(start, i)
		if x > goalX {
			break
		}
		pos++
	}
	return pos
}
