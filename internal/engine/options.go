package engine

import (
	"time"

	"github.com/dshills/textengine/internal/engine/edit"
	"github.com/dshills/textengine/internal/engine/history"
	"github.com/dshills/textengine/internal/engine/layout"
	"github.com/dshills/textengine/internal/engine/lines"
	"github.com/dshills/textengine/internal/engine/search"
	"github.com/dshills/textengine/internal/logging"
	"github.com/dshills/textengine/internal/metrics"
)

// Default configuration values.
const (
	DefaultTabWidth       = lines.DefaultTabWidth
	DefaultMaxUndoEntries = history.DefaultMaxEntries
	DefaultUndoCoalesce   = history.DefaultCoalesce
	DefaultCursorBlink    = 500 * time.Millisecond
	DefaultPageRows       = edit.DefaultPageRows
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithText sets the initial text.
func WithText(text string) Option {
	return func(e *Editor) {
		e.initText = text
	}
}

// WithTabWidth sets the tab stop distance in columns.
func WithTabWidth(width int) Option {
	return func(e *Editor) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithFont sets the font used to measure text. The default measures
// terminal cells.
func WithFont(f metrics.Font) Option {
	return func(e *Editor) {
		if f != nil {
			e.font = f
		}
	}
}

// WithLineSpacing adds extra space between rows.
func WithLineSpacing(spacing float64) Option {
	return func(e *Editor) {
		e.lineSpacing = spacing
	}
}

// WithLayout sets the line layout policy and the available width.
func WithLayout(policy layout.Policy, maxWidth float64) Option {
	return func(e *Editor) {
		e.policy = policy
		e.maxWidth = maxWidth
	}
}

// WithClipboard sets the clipboard used by cut, copy and paste.
func WithClipboard(c Clipboard) Option {
	return func(e *Editor) {
		e.clipboard = c
	}
}

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(e *Editor) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMaxUndoEntries limits the number of undo groups kept.
func WithMaxUndoEntries(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.maxUndo = n
		}
	}
}

// WithUndoCoalesce sets the window within which consecutive edits undo
// together.
func WithUndoCoalesce(d time.Duration) Option {
	return func(e *Editor) {
		if d >= 0 {
			e.coalesce = d
		}
	}
}

// WithCursorBlink sets the cursor blink interval. Zero disables blinking.
func WithCursorBlink(d time.Duration) Option {
	return func(e *Editor) {
		if d >= 0 {
			e.blink = d
		}
	}
}

// WithPageRows sets how many rows page up and page down move.
func WithPageRows(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.pageRows = n
		}
	}
}

// WithIndent configures what ShiftRight inserts: a tab, or width spaces
// when spaces is true.
func WithIndent(spaces bool, width int) Option {
	return func(e *Editor) {
		e.indentSpaces = spaces
		if width > 0 {
			e.indentWidth = width
		}
	}
}

// WithFindOptions sets the initial find options.
func WithFindOptions(opts search.Options) Option {
	return func(e *Editor) {
		e.findOpts = opts
	}
}

// WithKeyTable replaces the default key bindings.
func WithKeyTable(t *KeyTable) Option {
	return func(e *Editor) {
		if t != nil {
			e.keys = t
		}
	}
}

// WithClock sets the time source used for undo coalescing and blinking.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		if now != nil {
			e.now = now
		}
	}
}
