package engine

import (
	"fmt"

	"github.com/dshills/textengine/internal/engine/buffer"
	"github.com/dshills/textengine/internal/engine/edit"
	"github.com/dshills/textengine/internal/engine/search"
)

// HandleCommand runs cmd. It returns false when the command does not
// apply, e.g. Copy without a selection or Undo with an empty history.
func (e *Editor) HandleCommand(cmd Command) bool {
	defer e.batch()()
	handled := e.handleCommand(cmd)
	e.logger.Debug("command %s handled=%t", cmd, handled)
	return handled
}

// HandleCommandName runs the command with the given name.
func (e *Editor) HandleCommandName(name string) (bool, error) {
	cmd, err := edit.ParseCommand(name)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return e.HandleCommand(cmd), nil
}

func (e *Editor) handleCommand(cmd Command) bool {
	if !e.CanHandleCommand(cmd) {
		return false
	}
	switch cmd {
	case edit.Cut:
		text := e.mach.Cut()
		e.clipboard.Write(string(text))
		return true

	case edit.Copy:
		e.clipboard.Write(e.SelectedText())
		return true

	case edit.Paste:
		text, _ := e.clipboard.Read()
		return e.mach.Paste(buffer.DecodeString(text))

	case edit.Undo:
		if g, ok := e.hist.PeekUndo(); ok {
			e.logger.Debug("undo group of %d records, delta %d", g.Records, g.Delta)
		}
		cursor, ok := e.hist.Undo(e.host)
		if ok {
			e.mach.SetCursor(cursor)
		}
		return ok

	case edit.Redo:
		if g, ok := e.hist.PeekRedo(); ok {
			e.logger.Debug("redo group of %d records, delta %d", g.Records, g.Delta)
		}
		cursor, ok := e.hist.Redo(e.host)
		if ok {
			e.mach.SetCursor(cursor)
		}
		return ok

	case edit.FindNext:
		return e.find(true)
	case edit.FindPrevious:
		return e.find(false)

	case edit.UseSelectionForFind:
		e.finder.SetNeedle(e.SelectedText())
		return true
	}
	return e.mach.Execute(cmd)
}

// CanHandleCommand reports whether cmd would do anything in the current
// state.
func (e *Editor) CanHandleCommand(cmd Command) bool {
	switch cmd {
	case edit.NoCommand:
		return false
	case edit.Cut, edit.Copy, edit.UseSelectionForFind:
		return e.mach.HasSelection()
	case edit.Paste:
		_, ok := e.clipboard.Read()
		return ok
	case edit.Undo:
		return e.hist.CanUndo()
	case edit.Redo:
		return e.hist.CanRedo()
	case edit.FindNext, edit.FindPrevious:
		return !e.finder.IsEmpty()
	}
	return true
}

// find selects the next match of the find string in the given direction,
// starting after the selection when searching forward and before it when
// searching backward.
func (e *Editor) find(forward bool) bool {
	sel := e.Selection()
	from := sel.End()
	if !forward {
		from = sel.Start - len([]rune(e.finder.Needle()))
	}
	r, ok := e.finder.Find(e.buf, forward, from)
	if !ok {
		e.logger.Debug("find %q: no match", e.finder.Needle())
		return false
	}
	e.mach.SetSelection(r.End(), r.Start)
	return true
}

// SetFindString sets the text FindNext and FindPrevious look for.
func (e *Editor) SetFindString(needle string) {
	e.finder.SetNeedle(needle)
}

// FindString returns the current find text.
func (e *Editor) FindString() string {
	return e.finder.Needle()
}

// SetFindOptions sets the find matching options.
func (e *Editor) SetFindOptions(opts FindOptions) {
	e.finder.SetOptions(opts)
}

// FindOptions returns the find matching options.
func (e *Editor) FindOptions() FindOptions {
	return e.finder.Options()
}

// FindAll returns every non-overlapping match of the find string.
func (e *Editor) FindAll() []Range {
	return e.finder.FindAll(e.buf)
}

// Find selects the next match of needle without changing the find string.
func (e *Editor) Find(needle string, opts FindOptions, forward bool) (Range, bool) {
	f := search.New(needle, opts)
	sel := e.Selection()
	from := sel.End()
	if !forward {
		from = sel.Start - len([]rune(needle))
	}
	r, ok := f.Find(e.buf, forward, from)
	if !ok {
		return Range{}, false
	}
	defer e.batch()()
	e.mach.SetSelection(r.End(), r.Start)
	return r, true
}
