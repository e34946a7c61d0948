// Package engine provides the text editor engine: an Editor that owns the
// text, its line index, the undo history, the find state and the cursor,
// and turns abstract key and pointer events into edits.
//
// # Architecture
//
// The Editor is a facade over the sub-packages:
//
//   - buffer: gap buffer of characters, ranges and plain text codecs
//   - lines: incremental line partition with measured widths
//   - word: word and delimiter scanning
//   - history: grouped, coalescing undo and redo
//   - search: directional find with wrap around
//   - layout: wrap, truncate and clip layout of lines
//   - edit: the cursor and selection state machine
//
// Rendering, fonts, clipboards and event capture stay outside. The host
// supplies a metrics.Font for measuring text and a Clipboard, feeds key.Event
// and MouseEvent values in, and learns about changes through an Observer.
//
// # Threading
//
// An Editor is not safe for concurrent use. All calls, including Tick,
// must come from the goroutine that owns the editor.
//
// # Basic Usage
//
//	e := engine.New(engine.WithText("Hello"))
//
//	e.SetCursor(5)
//	e.HandleKey(key.NewRuneEvent('!', key.ModNone))
//	e.PlainText() // "Hello!"
//
//	e.HandleCommand(edit.Undo)
//	e.PlainText() // "Hello"
//
// # Notifications
//
// Each call that handles input reports at most one text change, one
// selection change and one cursor change to every observer, after the
// call's edits are complete.
package engine
