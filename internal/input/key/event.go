package key

import (
	"fmt"
	"unicode"
)

// Event is a single key press.
type Event struct {
	// Key identifies the virtual key.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers holds the modifier keys held during the press.
	Modifiers Modifier
}

// NewRuneEvent creates an event for a character key.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates an event for a non-character key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true for character key events.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if the event types a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) && !e.IsModified()
}

// IsModified returns true if a command modifier is held.
// Shift alone does not count for character keys.
func (e Event) IsModified() bool {
	if e.Key == KeyRune {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Normalize returns the canonical form used to look up bindings.
// Shifted letters under a command modifier become the lowercase letter
// with Shift set; Shift on a plain character is dropped.
func (e Event) Normalize() Event {
	if e.Key != KeyRune {
		e.Rune = 0
		return e
	}
	if e.Rune == ' ' {
		return Event{Key: KeySpace, Modifiers: e.Modifiers}
	}
	if !e.IsModified() {
		e.Modifiers = e.Modifiers.Without(ModShift)
		return e
	}
	if unicode.IsUpper(e.Rune) {
		e.Rune = unicode.ToLower(e.Rune)
		e.Modifiers = e.Modifiers.With(ModShift)
	}
	return e
}

// Equals returns true if both events denote the same key press.
func (e Event) Equals(other Event) bool {
	return e.Normalize() == other.Normalize()
}

// String returns the event as a parseable specification, e.g. "Ctrl+Shift+z".
func (e Event) String() string {
	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(e.Rune)
	}
	mods := e.Modifiers
	if e.Key == KeyRune && !e.IsModified() {
		mods = mods.Without(ModShift)
	}
	if mods == ModNone {
		return name
	}
	return mods.String() + "+" + name
}

// GoString implements fmt.GoStringer.
func (e Event) GoString() string {
	return fmt.Sprintf("key.Event{Key: %s, Rune: %q, Modifiers: %s}", e.Key, e.Rune, e.Modifiers)
}
