package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// bracketNames are the character names accepted inside <...>.
var bracketNames = map[string]rune{
	"lt":     '<',
	"gt":     '>',
	"bar":    '|',
	"bslash": '\\',
	"plus":   '+',
	"minus":  '-',
}

// Parse parses a key specification such as "Ctrl+S", "Shift+F3", "<C-S-z>"
// or "a". Letters combined with Ctrl are lowercased.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	var mods Modifier
	var name string

	switch {
	case len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">"):
		parts := strings.Split(spec[1:len(spec)-1], "-")
		name = parts[len(parts)-1]
		for _, p := range parts[:len(parts)-1] {
			mod := ModifierFromName(p)
			if mod == ModNone || len(strings.TrimSpace(p)) != 1 {
				return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
			}
			mods = mods.With(mod)
		}
		if r, ok := bracketNames[strings.ToLower(name)]; ok {
			return NewRuneEvent(r, mods), nil
		}

	case spec == "<>":
		return Event{}, ErrInvalidSpec

	case len(spec) > 1 && strings.Contains(spec, "+"):
		parts := strings.Split(spec, "+")
		name = parts[len(parts)-1]
		for _, p := range parts[:len(parts)-1] {
			mod := ModifierFromName(p)
			if mod == ModNone {
				return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
			}
			mods = mods.With(mod)
		}

	default:
		name = spec
	}

	return keyEvent(strings.TrimSpace(name), mods)
}

func keyEvent(name string, mods Modifier) (Event, error) {
	if name == "" {
		return Event{}, ErrInvalidSpec
	}
	if k := KeyFromName(name); k != KeyNone {
		if k == KeySpace {
			return NewRuneEvent(' ', mods), nil
		}
		return NewSpecialEvent(k, mods), nil
	}

	runes := []rune(name)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
	}
	r := runes[0]
	switch {
	case mods.HasCtrl():
		r = unicode.ToLower(r)
	case mods == ModNone && unicode.IsUpper(r):
		mods = ModShift
	}
	return NewRuneEvent(r, mods), nil
}

// MustParse is like Parse but panics on error.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic("key: " + spec + ": " + err.Error())
	}
	return e
}
