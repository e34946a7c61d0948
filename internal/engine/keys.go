package engine

import (
	"fmt"
	"sort"

	"github.com/dshills/textengine/internal/engine/buffer"
	"github.com/dshills/textengine/internal/engine/edit"
	"github.com/dshills/textengine/internal/input/key"
)

// KeyTable maps key presses to commands.
// Events are normalized before lookup, so "Ctrl+Z" and "Ctrl+Shift+z"
// name the same binding.
type KeyTable struct {
	bindings map[key.Event]Command
}

// NewKeyTable creates an empty table.
func NewKeyTable() *KeyTable {
	return &KeyTable{bindings: make(map[key.Event]Command)}
}

var defaultBindings = []struct {
	spec string
	cmd  Command
}{
	{"Left", edit.MoveLeft},
	{"Right", edit.MoveRight},
	{"Up", edit.MoveUp},
	{"Down", edit.MoveDown},
	{"Ctrl+Left", edit.MoveWordLeft},
	{"Ctrl+Right", edit.MoveWordRight},
	{"Home", edit.MoveLineStart},
	{"End", edit.MoveLineEnd},
	{"Ctrl+Home", edit.MoveDocStart},
	{"Ctrl+End", edit.MoveDocEnd},
	{"PageUp", edit.MovePageUp},
	{"PageDown", edit.MovePageDown},

	{"Shift+Left", edit.SelectLeft},
	{"Shift+Right", edit.SelectRight},
	{"Shift+Up", edit.SelectUp},
	{"Shift+Down", edit.SelectDown},
	{"Ctrl+Shift+Left", edit.SelectWordLeft},
	{"Ctrl+Shift+Right", edit.SelectWordRight},
	{"Shift+Home", edit.SelectLineStart},
	{"Shift+End", edit.SelectLineEnd},
	{"Ctrl+Shift+Home", edit.SelectDocStart},
	{"Ctrl+Shift+End", edit.SelectDocEnd},
	{"Shift+PageUp", edit.SelectPageUp},
	{"Shift+PageDown", edit.SelectPageDown},

	{"Enter", edit.InsertNewline},
	{"Backspace", edit.Backspace},
	{"Shift+Backspace", edit.Backspace},
	{"Delete", edit.ForwardDelete},
	{"Ctrl+Backspace", edit.DeleteWordLeft},
	{"Ctrl+Delete", edit.DeleteWordRight},
	{"Insert", edit.ToggleOverwrite},

	{"Ctrl+a", edit.SelectAll},
	{"Ctrl+x", edit.Cut},
	{"Ctrl+c", edit.Copy},
	{"Ctrl+v", edit.Paste},
	{"Ctrl+z", edit.Undo},
	{"Ctrl+Shift+z", edit.Redo},
	{"Ctrl+]", edit.ShiftRight},
	{"Ctrl+[", edit.ShiftLeft},
	{"Shift+Tab", edit.ShiftLeft},
	{"F3", edit.FindNext},
	{"Shift+F3", edit.FindPrevious},
	{"Ctrl+F3", edit.UseSelectionForFind},
}

// DefaultKeyTable returns the standard bindings.
func DefaultKeyTable() *KeyTable {
	t := NewKeyTable()
	for _, b := range defaultBindings {
		t.Bind(key.MustParse(b.spec), b.cmd)
	}
	return t
}

// Bind maps ev to cmd, replacing any existing binding for ev.
func (t *KeyTable) Bind(ev key.Event, cmd Command) {
	if cmd == edit.NoCommand {
		t.Unbind(ev)
		return
	}
	t.bindings[ev.Normalize()] = cmd
}

// BindSpec parses spec and maps it to cmd.
func (t *KeyTable) BindSpec(spec string, cmd Command) error {
	ev, err := key.Parse(spec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	t.Bind(ev, cmd)
	return nil
}

// Unbind removes the binding for ev.
func (t *KeyTable) Unbind(ev key.Event) {
	delete(t.bindings, ev.Normalize())
}

// Lookup returns the command bound to ev.
func (t *KeyTable) Lookup(ev key.Event) (Command, bool) {
	cmd, ok := t.bindings[ev.Normalize()]
	return cmd, ok
}

// KeysFor returns every key bound to cmd, ordered by their text form.
func (t *KeyTable) KeysFor(cmd Command) []key.Event {
	var out []key.Event
	for ev, c := range t.bindings {
		if c == cmd {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// Len returns the number of bindings.
func (t *KeyTable) Len() int {
	return len(t.bindings)
}

// KeyTable returns the editor's key bindings.
func (e *Editor) KeyTable() *KeyTable {
	return e.keys
}

// CommandKeys returns the keys bound to the named command.
func (e *Editor) CommandKeys(name string) ([]key.Event, error) {
	cmd, err := edit.ParseCommand(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return e.keys.KeysFor(cmd), nil
}

// SetKeyTable replaces the key bindings. A nil table restores the
// defaults.
func (e *Editor) SetKeyTable(t *KeyTable) {
	if t == nil {
		t = DefaultKeyTable()
	}
	e.keys = t
}

// SetCommandKeyBinding binds ev to cmd. Binding to NoCommand removes the
// binding.
func (e *Editor) SetCommandKeyBinding(cmd Command, ev key.Event) {
	e.keys.Bind(ev, cmd)
}

// BindKey parses a key specification such as "Ctrl+Shift+z" or "<C-]>"
// and binds it to cmd.
func (e *Editor) BindKey(cmd Command, spec string) error {
	return e.keys.BindSpec(spec, cmd)
}

// HandleKey handles a key press. A bound command runs first; if it does
// not apply, printable characters, space and tab are typed and Enter
// breaks the line. It returns true if the key was consumed.
func (e *Editor) HandleKey(ev key.Event) bool {
	defer e.batch()()

	if cmd, ok := e.keys.Lookup(ev); ok && e.handleCommand(cmd) {
		return true
	}

	typing := ev.Modifiers&(key.ModCtrl|key.ModAlt|key.ModMeta) == 0
	switch ev.Key {
	case key.KeySpace:
		if typing {
			return e.mach.InsertChar(' ')
		}
	case key.KeyTab:
		if typing {
			return e.mach.InsertChar('\t')
		}
	case key.KeyEnter:
		if typing {
			e.mach.InsertNewline()
			return true
		}
	case key.KeyRune:
		if ev.IsChar() {
			return e.mach.InsertChar(ev.Rune)
		}
	}
	return false
}

// InsertText types text at the cursor, replacing the selection.
func (e *Editor) InsertText(text string) bool {
	defer e.batch()()
	return e.mach.InsertText(buffer.DecodeString(text))
}
