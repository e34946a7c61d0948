package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/textengine/internal/clipboard"
	"github.com/dshills/textengine/internal/engine/buffer"
	"github.com/dshills/textengine/internal/engine/edit"
	"github.com/dshills/textengine/internal/engine/history"
	"github.com/dshills/textengine/internal/engine/layout"
	"github.com/dshills/textengine/internal/engine/lines"
	"github.com/dshills/textengine/internal/engine/search"
	"github.com/dshills/textengine/internal/logging"
	"github.com/dshills/textengine/internal/metrics"
)

// Re-export commonly used types for convenience.
type (
	// Range is a span of character offsets.
	Range = buffer.Range

	// Line is one entry of the line index.
	Line = lines.Line

	// Command is an editor command.
	Command = edit.Command

	// FindOptions controls how find matches text.
	FindOptions = search.Options

	// State is the cursor and selection.
	State = edit.State
)

// Re-export find option flags.
const (
	CaseSensitive = search.CaseSensitive
	WholeWords    = search.WholeWords
)

// Clipboard stores text for cut, copy and paste.
type Clipboard interface {
	// Read returns the clipboard text and false when it holds none.
	Read() (string, bool)
	Write(text string)
}

// Editor is an in-memory text editor.
//
// It owns the text, the line index, the undo history, the find state and
// the cursor. Hosts drive it with key, pointer and command input and render
// from its query methods.
type Editor struct {
	id uuid.UUID

	buf    *buffer.Buffer
	index  *lines.Index
	hist   *history.History
	finder *search.Finder
	mach   *edit.Machine
	host   *textHost
	keys   *KeyTable

	clipboard Clipboard
	observers []Observer
	logger    *logging.Logger
	font      metrics.Font
	now       func() time.Time

	// Configuration
	initText     string
	tabWidth     int
	lineSpacing  float64
	policy       layout.Policy
	maxWidth     float64
	maxUndo      int
	coalesce     time.Duration
	blink        time.Duration
	pageRows     int
	indentSpaces bool
	indentWidth  int
	findOpts     search.Options

	// version counts text mutations.
	version uint64
	rows    rowCache

	mouse mouseState

	cursorVisible bool
	lastBlink     time.Time

	notify notifyState
}

// New creates an Editor with the given options.
func New(opts ...Option) *Editor {
	e := &Editor{
		id:          uuid.New(),
		logger:      logging.Nop(),
		font:        metrics.Cell{},
		now:         time.Now,
		tabWidth:    DefaultTabWidth,
		maxUndo:     DefaultMaxUndoEntries,
		coalesce:    DefaultUndoCoalesce,
		blink:       DefaultCursorBlink,
		pageRows:    DefaultPageRows,
		indentWidth: edit.DefaultIndentWidth,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.keys == nil {
		e.keys = DefaultKeyTable()
	}
	if e.clipboard == nil {
		e.clipboard = &clipboard.Memory{}
	}
	e.logger = e.logger.WithComponent("editor").WithField("editor", e.id.String()[:8])

	e.buf = buffer.NewFromString(e.initText)
	e.initText = ""
	e.index = lines.New(lines.WithMeasurer(e.font), lines.WithTabWidth(e.tabWidth))
	e.index.Rebuild(e.buf)
	e.hist = history.New(
		history.WithMaxEntries(e.maxUndo),
		history.WithCoalesce(e.coalesce),
		history.WithClock(func() time.Time { return e.now() }),
	)
	e.finder = search.New("", e.findOpts)
	e.host = &textHost{e: e}
	e.mach = edit.New(e.host,
		edit.WithPageRows(e.pageRows),
		edit.WithIndent(e.indentSpaces, e.indentWidth),
		edit.WithTabWidth(e.tabWidth),
	)

	e.cursorVisible = true
	e.lastBlink = e.now()
	return e
}

// ID returns the editor's instance identity.
func (e *Editor) ID() uuid.UUID {
	return e.id
}

// ============================================================================
// Text
// ============================================================================

// SetPlainText replaces the whole text. The cursor moves to the start and
// the undo history is cleared.
func (e *Editor) SetPlainText(text string) {
	defer e.batch()()
	e.reset(buffer.DecodeString(text))
}

// PlainText returns the whole text.
func (e *Editor) PlainText() string {
	return e.buf.Text()
}

// SetPlainTextUTF16 replaces the whole text with UTF-16 encoded text.
// A byte order mark selects the byte order; little endian is assumed
// otherwise.
func (e *Editor) SetPlainTextUTF16(b []byte) error {
	text, err := buffer.DecodeUTF16(b)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	defer e.batch()()
	e.reset(text)
	return nil
}

// PlainTextUTF16 returns the whole text as little endian UTF-16.
func (e *Editor) PlainTextUTF16() ([]byte, error) {
	return buffer.EncodeUTF16(e.buf.Runes())
}

func (e *Editor) reset(text []rune) {
	e.buf.Reset(text)
	e.index.Rebuild(e.buf)
	e.hist.Clear()
	e.mach.Reset()
	e.textEdited()
	e.logger.Debug("text replaced: %d characters, %d lines", e.buf.Len(), e.index.Count())
}

// Len returns the number of characters.
func (e *Editor) Len() int {
	return e.buf.Len()
}

// CharAt returns the character at i, or 0 when i is out of range.
func (e *Editor) CharAt(i int) rune {
	return e.buf.CharAt(i)
}

// TextRange returns the text in r, clamped to the buffer.
func (e *Editor) TextRange(r Range) string {
	return string(e.buf.SliceRange(r))
}

// textEdited invalidates caches after any mutation.
func (e *Editor) textEdited() {
	e.version++
	e.notify.textChanged = true
}

// ============================================================================
// Cursor and selection
// ============================================================================

// Cursor returns the cursor offset.
func (e *Editor) Cursor() int {
	return e.mach.Cursor
}

// State returns the cursor and selection.
func (e *Editor) State() State {
	return e.mach.State
}

// Selection returns the selected range in ascending order. It is empty
// and positioned at the cursor when nothing is selected.
func (e *Editor) Selection() Range {
	if !e.mach.HasSelection() {
		return buffer.NewRange(e.mach.Cursor, 0)
	}
	return e.mach.Selection()
}

// HasSelection returns true if text is selected.
func (e *Editor) HasSelection() bool {
	return e.mach.HasSelection()
}

// SelectedText returns the selected text.
func (e *Editor) SelectedText() string {
	return e.TextRange(e.Selection())
}

// SetSelection selects [start, end) and moves the cursor to end.
func (e *Editor) SetSelection(start, end int) {
	defer e.batch()()
	e.mach.SetSelection(start, end)
}

// SetCursor moves the cursor and clears the selection.
func (e *Editor) SetCursor(pos int) {
	defer e.batch()()
	e.mach.SetCursor(pos)
}

// IsOverwrite returns true in overwrite mode.
func (e *Editor) IsOverwrite() bool {
	return e.mach.Overwrite
}

// SelectedLines returns the range of line numbers touched by the selection,
// or the cursor line when nothing is selected.
func (e *Editor) SelectedLines() Range {
	sel := e.Selection()
	first := e.index.Find(sel.Start)
	last := e.index.Find(sel.End())
	return buffer.NewRange(first, last-first+1)
}

// CursorRect returns the cursor's x position, row top and row height.
func (e *Editor) CursorRect() (x, y, height float64) {
	return e.mach.CursorPos()
}

// ============================================================================
// Lines and layout
// ============================================================================

// LineCount returns the number of lines. It is at least 1.
func (e *Editor) LineCount() int {
	return e.index.Count()
}

// Line returns line i, clamped to the valid line numbers.
func (e *Editor) Line(i int) Line {
	return e.index.Line(i)
}

// Lines returns a copy of every line.
func (e *Editor) Lines() []Line {
	return e.index.Lines()
}

// LineAt returns the number of the line holding pos.
func (e *Editor) LineAt(pos int) int {
	return e.index.Find(pos)
}

// MaxWidth returns the width of the widest line.
func (e *Editor) MaxWidth() float64 {
	return e.index.MaxWidth()
}

// LineHeight returns the height of one row.
func (e *Editor) LineHeight() float64 {
	h := metrics.LineHeight(e.font) + e.lineSpacing
	if h <= 0 {
		return 1
	}
	return h
}

// Layout lays out every line with the configured policy and width.
// It is a query for hosts that draw positioned spans; cursor movement and
// hit testing always use unwrapped logical lines.
func (e *Editor) Layout() []layout.Row {
	return layout.Document(e.index, layout.Options{
		MaxWidth:   e.maxWidth,
		Policy:     e.policy,
		LineHeight: e.LineHeight(),
	}, e.font)
}

// GutterDigits returns the number of digits needed to print the largest
// line number.
func (e *Editor) GutterDigits() int {
	digits := 0
	for n := e.index.Count(); n > 0; n /= 10 {
		digits++
	}
	return max(digits, 1)
}

// ============================================================================
// Configuration
// ============================================================================

// TabWidth returns the tab stop distance.
func (e *Editor) TabWidth() int {
	return e.index.TabWidth()
}

// SetTabWidth changes the tab stop distance and re-measures every line.
func (e *Editor) SetTabWidth(width int) {
	if width <= 0 {
		return
	}
	e.index.SetTabWidth(e.buf, width)
	e.mach.SetTabWidth(width)
	e.rows.valid = false
}

// SetFont changes the font and re-measures every line.
func (e *Editor) SetFont(f metrics.Font) {
	if f == nil {
		return
	}
	e.font = f
	e.index.SetMeasurer(e.buf, f)
	e.rows.valid = false
}

// SetLineSpacing changes the extra space between rows.
func (e *Editor) SetLineSpacing(spacing float64) {
	e.lineSpacing = spacing
}

// SetLayout changes the layout policy and available width used by Layout.
func (e *Editor) SetLayout(policy layout.Policy, maxWidth float64) {
	e.policy = policy
	e.maxWidth = maxWidth
}

// SetIndent configures ShiftRight.
func (e *Editor) SetIndent(spaces bool, width int) {
	e.mach.SetIndent(spaces, width)
}

// SetPageRows sets how many rows page up and page down move.
func (e *Editor) SetPageRows(n int) {
	e.mach.SetPageRows(n)
}

// SetUndoCoalesce changes the undo coalescing window.
func (e *Editor) SetUndoCoalesce(d time.Duration) {
	e.hist.SetCoalesce(d)
}

// SetMaxUndoEntries limits the number of undo groups kept.
func (e *Editor) SetMaxUndoEntries(n int) {
	e.hist.SetMaxEntries(n)
}

// SetCursorBlink changes the blink interval. Zero disables blinking and
// leaves the cursor visible.
func (e *Editor) SetCursorBlink(d time.Duration) {
	if d < 0 {
		return
	}
	e.blink = d
	e.restartBlink()
}

// SetClipboard replaces the clipboard. A nil clipboard restores a process
// local one.
func (e *Editor) SetClipboard(c Clipboard) {
	if c == nil {
		c = &clipboard.Memory{}
	}
	e.clipboard = c
}

// SetLogger replaces the logger.
func (e *Editor) SetLogger(l *logging.Logger) {
	if l == nil {
		l = logging.Nop()
	}
	e.logger = l.WithComponent("editor").WithField("editor", e.id.String()[:8])
}

// AddObserver registers o for change notifications.
func (e *Editor) AddObserver(o Observer) {
	if o != nil {
		e.observers = append(e.observers, o)
	}
}

// RemoveObserver unregisters o.
func (e *Editor) RemoveObserver(o Observer) {
	for i, x := range e.observers {
		if x == o {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// ============================================================================
// Undo
// ============================================================================

// CanUndo returns true if there is an edit to undo.
func (e *Editor) CanUndo() bool {
	return e.hist.CanUndo()
}

// CanRedo returns true if there is an undone edit to redo.
func (e *Editor) CanRedo() bool {
	return e.hist.CanRedo()
}

// Undo reverts the most recent edit group.
func (e *Editor) Undo() bool {
	return e.HandleCommand(edit.Undo)
}

// Redo re-applies the most recently undone edit group.
func (e *Editor) Redo() bool {
	return e.HandleCommand(edit.Redo)
}

// BeginUndoGroup starts an explicit undo group; edits until the matching
// EndUndoGroup undo as one step.
func (e *Editor) BeginUndoGroup() {
	e.hist.BeginGroup()
}

// EndUndoGroup ends an explicit undo group.
func (e *Editor) EndUndoGroup() {
	e.hist.EndGroup()
}

// ClearHistory discards all undo and redo history.
func (e *Editor) ClearHistory() {
	e.hist.Clear()
}

// UndoCount returns the number of edit groups that can be undone.
func (e *Editor) UndoCount() int {
	return e.hist.UndoCount()
}

// RedoCount returns the number of edit groups that can be redone.
func (e *Editor) RedoCount() int {
	return e.hist.RedoCount()
}

// Checkpoint marks a position in an editor's undo history.
type Checkpoint = history.GroupRef

// Checkpoint returns a mark for the current undo position.
func (e *Editor) Checkpoint() Checkpoint {
	return e.hist.Checkpoint()
}

// UndoTo undoes every edit group made after cp and returns how many were
// undone. cp must come from this editor; a checkpoint taken from another
// editor panics.
func (e *Editor) UndoTo(cp Checkpoint) int {
	defer e.batch()()
	cursor, n := e.hist.UndoToCheckpoint(cp, e.host)
	if n > 0 {
		e.mach.SetCursor(cursor)
	}
	return n
}

// RedoTo redoes edit groups until the history is back at cp and returns
// how many were redone. The same ownership rule as UndoTo applies.
func (e *Editor) RedoTo(cp Checkpoint) int {
	defer e.batch()()
	cursor, n := e.hist.RedoToCheckpoint(cp, e.host)
	if n > 0 {
		e.mach.SetCursor(cursor)
	}
	return n
}

// ============================================================================
// Timers
// ============================================================================

// Tick advances timers to now: it closes an expired undo group and toggles
// the cursor blink. It returns true if the cursor visibility changed.
func (e *Editor) Tick(now time.Time) bool {
	if e.hist.Expire(now) {
		e.logger.Debug("undo group closed by timer")
	}
	if e.blink <= 0 || now.Sub(e.lastBlink) < e.blink {
		return false
	}
	e.cursorVisible = !e.cursorVisible
	e.lastBlink = now
	return true
}

// CursorVisible returns whether the cursor is in the visible blink phase.
func (e *Editor) CursorVisible() bool {
	return e.cursorVisible
}

func (e *Editor) restartBlink() {
	e.cursorVisible = true
	e.lastBlink = e.now()
}
