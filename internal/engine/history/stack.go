package history

import (
	"time"

	"github.com/google/uuid"
)

// Defaults for a new History.
const (
	DefaultMaxEntries = 1000
	DefaultCoalesce   = 500 * time.Millisecond
)

// Option configures a History.
type Option func(*History)

// WithMaxEntries limits the number of groups kept.
func WithMaxEntries(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.maxEntries = n
		}
	}
}

// WithCoalesce sets the window in which consecutive edits join one group.
func WithCoalesce(d time.Duration) Option {
	return func(h *History) {
		if d >= 0 {
			h.coalesce = d
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(h *History) {
		if now != nil {
			h.now = now
		}
	}
}

// History is a linear undo list.
//
// groups[:pos] can be undone and groups[pos:] can be redone. Records that
// arrive within the coalescing window of the previous record join the same
// group. Starting a new group discards the redo tail.
//
// History is not safe for concurrent use.
type History struct {
	id uuid.UUID

	groups []*Group
	pos    int

	// pending is the open group still accepting records. It is always
	// groups[pos-1] when set.
	pending *Group

	closeRequested bool
	depth          int
	replaying      bool

	coalesce   time.Duration
	maxEntries int
	now        func() time.Time
}

// New creates an empty history.
func New(opts ...Option) *History {
	h := &History{
		id:         uuid.New(),
		coalesce:   DefaultCoalesce,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ID returns the identity of this history.
func (h *History) ID() uuid.UUID {
	return h.id
}

// CreateRecord captures the inverse of an edit that is about to happen:
// insertLen characters will be inserted at pos after deleteLen characters
// at pos are removed. src must not have been mutated yet.
//
// Calls made while undo or redo is replaying are ignored.
func (h *History) CreateRecord(src Source, pos, insertLen, deleteLen int) {
	if h.replaying || (insertLen <= 0 && deleteLen <= 0) {
		return
	}
	now := h.now()
	if h.pending == nil || h.shouldClose(now) {
		h.open(now)
	}
	g := h.pending
	if deleteLen > 0 {
		g.Records = append(g.Records, InsertRecord(pos, src.Slice(pos, pos+deleteLen)))
	}
	if insertLen > 0 {
		g.Records = append(g.Records, DeleteRecord(pos, insertLen))
	}
	g.Timestamp = now
}

func (h *History) shouldClose(now time.Time) bool {
	if h.closeRequested {
		return true
	}
	return h.depth == 0 && now.Sub(h.pending.Timestamp) > h.coalesce
}

// open starts a new pending group, discarding the redo tail.
func (h *History) open(now time.Time) {
	h.groups = h.groups[:h.pos]
	h.pending = &Group{Timestamp: now}
	h.groups = append(h.groups, h.pending)
	h.closeRequested = false

	if excess := len(h.groups) - h.maxEntries; excess > 0 {
		h.groups = h.groups[excess:]
	}
	h.pos = len(h.groups)
}

// Close forces the pending group closed so the next record starts a new one.
func (h *History) Close() {
	if h.pending != nil {
		h.closeRequested = true
	}
}

// Expire closes the pending group if its coalescing window has elapsed
// at now. It returns true if a group was closed.
func (h *History) Expire(now time.Time) bool {
	if h.pending == nil || h.depth > 0 || h.closeRequested {
		return false
	}
	if now.Sub(h.pending.Timestamp) <= h.coalesce {
		return false
	}
	h.closeRequested = true
	return true
}

// Undo reverts the most recent group on t.
// It returns the resulting cursor position and false if there was nothing
// to undo.
func (h *History) Undo(t Target) (cursor int, ok bool) {
	h.seal()
	if h.pos == 0 {
		return 0, false
	}
	g := h.groups[h.pos-1]

	h.replaying = true
	defer func() { h.replaying = false }()

	inverse := make([]Record, 0, len(g.Records))
	for i := len(g.Records) - 1; i >= 0; i-- {
		var r Record
		r, cursor = g.Records[i].Apply(t)
		inverse = append(inverse, r)
	}
	for i, j := 0, len(inverse)-1; i < j; i, j = i+1, j-1 {
		inverse[i], inverse[j] = inverse[j], inverse[i]
	}
	g.Records = inverse
	h.pos--
	return cursor, true
}

// Redo re-applies the most recently undone group on t.
// It returns the resulting cursor position and false if there was nothing
// to redo.
func (h *History) Redo(t Target) (cursor int, ok bool) {
	h.seal()
	if h.pos == len(h.groups) {
		return 0, false
	}
	g := h.groups[h.pos]

	h.replaying = true
	defer func() { h.replaying = false }()

	inverse := make([]Record, 0, len(g.Records))
	for _, rec := range g.Records {
		var r Record
		r, cursor = rec.Apply(t)
		inverse = append(inverse, r)
	}
	g.Records = inverse
	h.pos++
	return cursor, true
}

// seal ends the pending group before replay.
func (h *History) seal() {
	h.pending = nil
	h.closeRequested = false
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return h.pos > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return h.pos < len(h.groups)
}

// UndoCount returns the number of groups that can be undone.
func (h *History) UndoCount() int {
	return h.pos
}

// RedoCount returns the number of groups that can be redone.
func (h *History) RedoCount() int {
	return len(h.groups) - h.pos
}

// Clear removes all undo/redo history. An open explicit group stays open
// and collects the records that follow.
func (h *History) Clear() {
	h.groups = nil
	h.pos = 0
	h.pending = nil
	h.closeRequested = false
}

// PeekUndo returns info about the next group to undo.
func (h *History) PeekUndo() (GroupInfo, bool) {
	if h.pos == 0 {
		return GroupInfo{}, false
	}
	return h.groups[h.pos-1].info(), true
}

// PeekRedo returns info about the next group to redo.
func (h *History) PeekRedo() (GroupInfo, bool) {
	if h.pos == len(h.groups) {
		return GroupInfo{}, false
	}
	return h.groups[h.pos].info(), true
}

// SetMaxEntries changes the maximum number of groups.
// If the list is larger, the oldest groups are removed.
func (h *History) SetMaxEntries(n int) {
	if n <= 0 {
		n = DefaultMaxEntries
	}
	h.maxEntries = n

	if excess := len(h.groups) - n; excess > 0 {
		h.groups = h.groups[excess:]
		h.pos = max(h.pos-excess, 0)
	}
}

// MaxEntries returns the maximum number of groups.
func (h *History) MaxEntries() int {
	return h.maxEntries
}

// SetCoalesce changes the coalescing window.
func (h *History) SetCoalesce(d time.Duration) {
	if d >= 0 {
		h.coalesce = d
	}
}

// Coalesce returns the coalescing window.
func (h *History) Coalesce() time.Duration {
	return h.coalesce
}
