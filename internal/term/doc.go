// Package term hosts an editor in a terminal using tcell.
//
// The Host translates tcell key and mouse events into the editor's
// abstract events and draws the editor from its query surface: a line
// number gutter, the visible lines with tabs expanded, the selection in
// reverse video, the cursor and a one line status bar with the cursor
// position and the undo and redo counts.
//
// The terminal draws one screen row per logical line and scrolls
// horizontally, matching the editor's cursor movement, which never wraps.
// The editor's layout policy and width only shape Editor.Layout, which
// hosts that draw positioned spans use; they do not change what the
// terminal shows.
//
// All editor calls happen on the goroutine running Host.Run. Timers and
// other goroutines reach the editor by posting interrupt events, so
// cursor blinking, undo group expiry and configuration reloads run
// between input events.
package term
