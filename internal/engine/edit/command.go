package edit

import (
	"fmt"
	"strings"
)

// Command is an editor command bound to a key or issued by a host.
type Command int

const (
	NoCommand Command = iota

	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	MoveWordLeft
	MoveWordRight
	MoveLineStart
	MoveLineEnd
	MoveDocStart
	MoveDocEnd
	MovePageUp
	MovePageDown

	SelectLeft
	SelectRight
	SelectUp
	SelectDown
	SelectWordLeft
	SelectWordRight
	SelectLineStart
	SelectLineEnd
	SelectDocStart
	SelectDocEnd
	SelectPageUp
	SelectPageDown

	InsertNewline
	Backspace
	ForwardDelete
	DeleteWordLeft
	DeleteWordRight
	ToggleOverwrite
	SelectAll

	Cut
	Copy
	Paste
	ShiftLeft
	ShiftRight
	Undo
	Redo
	FindNext
	FindPrevious
	UseSelectionForFind

	commandCount
)

var commandNames = [...]string{
	NoCommand:           "None",
	MoveLeft:            "MoveLeft",
	MoveRight:           "MoveRight",
	MoveUp:              "MoveUp",
	MoveDown:            "MoveDown",
	MoveWordLeft:        "MoveWordLeft",
	MoveWordRight:       "MoveWordRight",
	MoveLineStart:       "MoveLineStart",
	MoveLineEnd:         "MoveLineEnd",
	MoveDocStart:        "MoveDocStart",
	MoveDocEnd:          "MoveDocEnd",
	MovePageUp:          "MovePageUp",
	MovePageDown:        "MovePageDown",
	SelectLeft:          "SelectLeft",
	SelectRight:         "SelectRight",
	SelectUp:            "SelectUp",
	SelectDown:          "SelectDown",
	SelectWordLeft:      "SelectWordLeft",
	SelectWordRight:     "SelectWordRight",
	SelectLineStart:     "SelectLineStart",
	SelectLineEnd:       "SelectLineEnd",
	SelectDocStart:      "SelectDocStart",
	SelectDocEnd:        "SelectDocEnd",
	SelectPageUp:        "SelectPageUp",
	SelectPageDown:      "SelectPageDown",
	InsertNewline:       "InsertNewline",
	Backspace:           "Backspace",
	ForwardDelete:       "ForwardDelete",
	DeleteWordLeft:      "DeleteWordLeft",
	DeleteWordRight:     "DeleteWordRight",
	ToggleOverwrite:     "ToggleOverwrite",
	SelectAll:           "SelectAll",
	Cut:                 "Cut",
	Copy:                "Copy",
	Paste:               "Paste",
	ShiftLeft:           "ShiftLeft",
	ShiftRight:          "ShiftRight",
	Undo:                "Undo",
	Redo:                "Redo",
	FindNext:            "FindNext",
	FindPrevious:        "FindPrevious",
	UseSelectionForFind: "UseSelectionForFind",
}

// String returns the command name.
func (c Command) String() string {
	if c >= 0 && c < commandCount {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Commands returns every command except NoCommand.
func Commands() []Command {
	out := make([]Command, 0, commandCount-1)
	for c := NoCommand + 1; c < commandCount; c++ {
		out = append(out, c)
	}
	return out
}

// ParseCommand looks up a command by name, ignoring case.
func ParseCommand(name string) (Command, error) {
	for c := NoCommand + 1; c < commandCount; c++ {
		if strings.EqualFold(commandNames[c], name) {
			return c, nil
		}
	}
	return NoCommand, fmt.Errorf("unknown command %q", name)
}

// IsSelecting reports whether c extends the selection.
func (c Command) IsSelecting() bool {
	return c >= SelectLeft && c <= SelectPageDown
}

// IsMutating reports whether c can change the text.
func (c Command) IsMutating() bool {
	switch c {
	case InsertNewline, Backspace, ForwardDelete, DeleteWordLeft, DeleteWordRight,
		Cut, Paste, ShiftLeft, ShiftRight, Undo, Redo:
		return true
	}
	return false
}
