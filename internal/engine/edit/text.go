package edit

// InsertChar types r at the cursor, replacing the selection or, in
// overwrite mode, the character under the cursor.
func (m *Machine) InsertChar(r rune) bool {
	if r == 0 {
		return false
	}
	m.clamp()
	if !m.HasSelection() && m.Overwrite && m.Cursor < m.host.Len() && m.host.CharAt(m.Cursor) != '\n' {
		m.group(func() {
			m.host.DeleteChars(m.Cursor, 1)
			m.insertAtCursor([]rune{r})
		})
		return true
	}
	m.replaceSelection([]rune{r})
	return true
}

// InsertText replaces the selection with text, as one undo step.
func (m *Machine) InsertText(text []rune) bool {
	if len(text) == 0 && !m.HasSelection() {
		return false
	}
	m.replaceSelection(text)
	return true
}

// Paste inserts text at the cursor, replacing any selection.
func (m *Machine) Paste(text []rune) bool {
	if len(text) == 0 {
		return false
	}
	m.replaceSelection(text)
	return true
}

// Cut deletes the selection and returns it.
func (m *Machine) Cut() []rune {
	m.clamp()
	if !m.HasSelection() {
		return nil
	}
	r := m.Selection()
	var removed []rune
	m.group(func() {
		removed = m.host.DeleteChars(r.Start, r.Length)
	})
	m.Cursor = r.Start
	m.collapse()
	m.HasPreferredX = false
	return removed
}

// InsertNewline breaks the line at the cursor and repeats the leading
// tabs and spaces of the current line.
func (m *Machine) InsertNewline() {
	m.clamp()
	first := m.Selection().Start
	if !m.HasSelection() {
		first = m.Cursor
	}
	text := append([]rune{'\n'}, m.leadingIndent(m.lineStart(first))...)
	m.replaceSelection(text)
}

// Shift indents (right) or outdents every line touched by the selection,
// or the cursor line when nothing is selected.
func (m *Machine) Shift(right bool) {
	m.clamp()
	sel := m.Selection()
	hadSelection := m.HasSelection()
	if !hadSelection {
		sel.Start, sel.Length = m.Cursor, 0
	}

	last := sel.End()
	if sel.Length > 0 && last > sel.Start && m.lineStart(last) == last {
		last--
	}

	var starts []int
	for p := m.lineStart(sel.Start); ; {
		starts = append(starts, p)
		end := m.lineEnd(p)
		if end >= last || end >= m.host.Len() {
			break
		}
		p = end + 1
	}

	cursorLine := m.lineStart(m.Cursor)
	cursorDelta := 0
	delta := 0
	lastStart := 0
	changed := false

	m.group(func() {
		for _, start := range starts {
			pos := start + delta
			lastStart = pos
			var d int
			if right {
				d = m.host.InsertChars(pos, m.indentUnit())
			} else {
				n := m.outdentLength(pos)
				if n > 0 {
					m.host.DeleteChars(pos, n)
				}
				d = -n
			}
			if d != 0 {
				changed = true
			}
			if start == cursorLine {
				cursorDelta = delta + d
				if !right && m.Cursor+delta+d < pos {
					cursorDelta = pos - m.Cursor
				}
			}
			delta += d
		}
	})
	if !changed {
		return
	}

	if hadSelection {
		first := starts[0]
		end := m.lineEnd(lastStart)
		m.SelectStart, m.SelectEnd = first, end
		m.Cursor = end
	} else {
		m.Cursor += cursorDelta
		m.collapse()
	}
	m.clamp()
	m.HasPreferredX = false
}

// replaceSelection deletes the selection and inserts text in its place as
// a single undo group.
func (m *Machine) replaceSelection(text []rune) {
	m.clamp()
	if !m.HasSelection() {
		if len(text) > 1 {
			m.group(func() { m.insertAtCursor(text) })
		} else {
			m.insertAtCursor(text)
		}
		return
	}
	m.group(func() {
		m.deleteSelection()
		m.insertAtCursor(text)
	})
}

func (m *Machine) insertAtCursor(text []rune) {
	if len(text) == 0 {
		return
	}
	n := m.host.InsertChars(m.Cursor, text)
	m.Cursor += n
	m.collapse()
	m.HasPreferredX = false
}

// leadingIndent returns the run of tabs and spaces at the line starting at start.
func (m *Machine) leadingIndent(start int) []rune {
	var out []rune
	n := m.host.Len()
	for i := start; i < n; i++ {
		c := m.host.CharAt(i)
		if c != ' ' && c != '\t' {
			break
		}
		out = append(out, c)
	}
	return out
}

func (m *Machine) indentUnit() []rune {
	if !m.indentWithSpaces {
		return []rune{'\t'}
	}
	unit := make([]rune, m.indentWidth)
	for i := range unit {
		unit[i] = ' '
	}
	return unit
}

// outdentLength returns how many characters one outdent removes from the
// line starting at start: a leading tab or up to tabWidth spaces.
func (m *Machine) outdentLength(start int) int {
	if start < m.host.Len() && m.host.CharAt(start) == '\t' {
		return 1
	}
	n := 0
	for n < m.tabWidth && start+n < m.host.Len() && m.host.CharAt(start+n) == ' ' {
		n++
	}
	return n
}
