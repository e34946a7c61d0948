// Package script runs Lua macros against an editor.
//
// A Runner owns one sandboxed gopher-lua state. Only the base, table,
// string and math libraries are opened; file loading is removed and
// require resolves only the safe built-in modules plus the preloaded
// "editor" module:
//
//	local ed = require("editor")
//	ed.command("SelectAll")
//	ed.insert(string.upper(ed.selected_text()))
//
// Positions are 0-based character offsets, the same as the editor's.
// Each Run executes inside one undo group, so a macro undoes in one step.
// editor.checkpoint() marks an undo position that editor.undo_to and
// editor.redo_to return to. A checkpoint only works with the editor it came
// from; using it with another editor fails the script.
//
// A Runner is not safe for concurrent use. Like the editor it drives, it
// must be called from a single goroutine.
package script
