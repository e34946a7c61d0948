// Package history provides undo/redo for the text editing engine.
//
// # Records
//
// Every primitive mutation reports itself through CreateRecord before it
// touches the buffer. The history stores the inverse of the edit as a
// Record: a reversible diff that either deletes a span or inserts text.
// Applying a Record returns its own inverse, so the same list of records
// serves undo and, once replayed, redo.
//
// # Groups
//
// Records are collected into groups. Undo reverts a whole group, applying
// its records in reverse order; redo re-applies them forward.
//
// A new record joins the pending group unless the coalescing window has
// elapsed since the group's last record or the group was closed:
//
//	h := history.New(history.WithCoalesce(500 * time.Millisecond))
//	h.CreateRecord(buf, 0, 1, 0) // typing "a"
//	h.CreateRecord(buf, 1, 1, 0) // typing "b" 100ms later joins the group
//	h.Close()                    // the next record starts a new group
//
// Multi-step edits such as replacing the selection form one group
// regardless of timing:
//
//	h.BeginGroup()
//	// ... delete selection, insert text ...
//	h.EndGroup()
//
// # Linear history
//
// A record arriving after an undo discards every group that could have
// been redone. Records produced while Undo or Redo replays are ignored.
//
// # Checkpoints
//
// Checkpoint returns a GroupRef naming the current position.
// UndoToCheckpoint and RedoToCheckpoint walk back or forward to it. A ref
// belongs to the history that issued it; passing it to another history
// panics.
package history
