package engine

// Observer receives editor change notifications.
//
// Notifications are delivered once per public operation, after the
// operation has finished, so an observer sees a consistent editor.
type Observer interface {
	// OnTextChanged is called after the text changed.
	OnTextChanged()
	// OnSelectionChanged is called with the new selection.
	OnSelectionChanged(sel Range)
	// OnCursorChanged is called with the old and new cursor offsets.
	OnCursorChanged(old, cur int)
}

// ObserverFuncs adapts functions to the Observer interface.
// Nil fields are ignored.
type ObserverFuncs struct {
	TextChanged      func()
	SelectionChanged func(sel Range)
	CursorChanged    func(old, cur int)
}

// OnTextChanged implements Observer.
func (f *ObserverFuncs) OnTextChanged() {
	if f.TextChanged != nil {
		f.TextChanged()
	}
}

// OnSelectionChanged implements Observer.
func (f *ObserverFuncs) OnSelectionChanged(sel Range) {
	if f.SelectionChanged != nil {
		f.SelectionChanged(sel)
	}
}

// OnCursorChanged implements Observer.
func (f *ObserverFuncs) OnCursorChanged(old, cur int) {
	if f.CursorChanged != nil {
		f.CursorChanged(old, cur)
	}
}

type notifyState struct {
	depth       int
	cursor      int
	sel         Range
	textChanged bool
}

// batch snapshots the cursor and selection and returns a function that
// reports what changed. Nested batches report once, from the outermost.
func (e *Editor) batch() func() {
	n := &e.notify
	if n.depth == 0 {
		n.cursor = e.mach.Cursor
		n.sel = e.Selection()
		n.textChanged = false
	}
	n.depth++
	return func() {
		n.depth--
		if n.depth > 0 {
			return
		}
		e.flush()
	}
}

func (e *Editor) flush() {
	n := &e.notify
	cur := e.mach.Cursor
	sel := e.Selection()
	text := n.textChanged
	n.textChanged = false

	if cur != n.cursor || text {
		e.restartBlink()
	}
	if len(e.observers) == 0 {
		return
	}
	// Copy so observers may unregister themselves.
	obs := append([]Observer(nil), e.observers...)
	if text {
		for _, o := range obs {
			o.OnTextChanged()
		}
	}
	if sel != n.sel {
		for _, o := range obs {
			o.OnSelectionChanged(sel)
		}
	}
	if cur != n.cursor {
		for _, o := range obs {
			o.OnCursorChanged(n.cursor, cur)
		}
	}
}
