package history

import (
	"fmt"

	"github.com/google/uuid"
)

// BeginGroup starts an explicit group.
// The pending group is closed first and time based closing is suspended
// until the matching EndGroup. Nested calls collapse into the outermost group.
func (h *History) BeginGroup() {
	if h.depth == 0 {
		h.Close()
	}
	h.depth++
}

// EndGroup finishes an explicit group. The next record starts a new group.
func (h *History) EndGroup() {
	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth == 0 {
		h.Close()
	}
}

// GroupRef identifies a position in a specific history.
// Refs are only meaningful to the History that issued them.
type GroupRef struct {
	owner uuid.UUID
	depth int
}

// Owner returns the identity of the history that issued the ref.
func (r GroupRef) Owner() uuid.UUID {
	return r.owner
}

// Checkpoint returns a ref to the current history position.
func (h *History) Checkpoint() GroupRef {
	return GroupRef{owner: h.id, depth: h.pos}
}

func (h *History) resolve(ref GroupRef) int {
	if ref.owner != h.id {
		panic(fmt.Sprintf("history: ref from history %s used with history %s", ref.owner, h.id))
	}
	return ref.depth
}

// UndoToCheckpoint undoes every group recorded after the checkpoint.
// It returns the final cursor and the number of groups undone.
func (h *History) UndoToCheckpoint(ref GroupRef, t Target) (cursor, undone int) {
	depth := h.resolve(ref)
	for h.pos > depth {
		c, ok := h.Undo(t)
		if !ok {
			break
		}
		cursor = c
		undone++
	}
	return cursor, undone
}

// RedoToCheckpoint redoes groups until the checkpoint depth is reached or
// nothing is left to redo.
func (h *History) RedoToCheckpoint(ref GroupRef, t Target) (cursor, redone int) {
	depth := h.resolve(ref)
	for h.pos < depth {
		c, ok := h.Redo(t)
		if !ok {
			break
		}
		cursor = c
		redone++
	}
	return cursor, redone
}
