package script

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textengine/internal/engine"
)

// loadEditorModule builds the table returned by require("editor").
func (r *Runner) loadEditorModule(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"text":          r.luaText,
		"set_text":      r.luaSetText,
		"insert":        r.luaInsert,
		"command":       r.luaCommand,
		"cursor":        r.luaCursor,
		"set_cursor":    r.luaSetCursor,
		"selection":     r.luaSelection,
		"select":        r.luaSelect,
		"selected_text": r.luaSelectedText,
		"find":          r.luaFind,
		"line_count":    r.luaLineCount,
		"line":          r.luaLine,
		"undo":          r.luaUndo,
		"redo":          r.luaRedo,
		"checkpoint":    r.luaCheckpoint,
		"undo_to":       r.luaUndoTo,
		"redo_to":       r.luaRedoTo,
		"keys":          r.luaKeys,
		"log":           r.luaLog,
	})
	L.Push(mod)
	return 1
}

func (r *Runner) luaText(L *lua.LState) int {
	L.Push(lua.LString(r.editor.PlainText()))
	return 1
}

func (r *Runner) luaSetText(L *lua.LState) int {
	r.editor.SetPlainText(L.CheckString(1))
	return 0
}

func (r *Runner) luaInsert(L *lua.LState) int {
	L.Push(lua.LBool(r.editor.InsertText(L.CheckString(1))))
	return 1
}

// command(name) runs an editor command by name and returns whether it
// applied. Unknown names raise an error.
func (r *Runner) luaCommand(L *lua.LState) int {
	handled, err := r.editor.HandleCommandName(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	L.Push(lua.LBool(handled))
	return 1
}

func (r *Runner) luaCursor(L *lua.LState) int {
	L.Push(lua.LNumber(r.editor.Cursor()))
	return 1
}

func (r *Runner) luaSetCursor(L *lua.LState) int {
	r.editor.SetCursor(L.CheckInt(1))
	return 0
}

func (r *Runner) luaSelection(L *lua.LState) int {
	sel := r.editor.Selection()
	L.Push(lua.LNumber(sel.Start))
	L.Push(lua.LNumber(sel.Length))
	return 2
}

// select(anchor, cursor)
func (r *Runner) luaSelect(L *lua.LState) int {
	r.editor.SetSelection(L.CheckInt(1), L.CheckInt(2))
	return 0
}

func (r *Runner) luaSelectedText(L *lua.LState) int {
	L.Push(lua.LString(r.editor.SelectedText()))
	return 1
}

// find(needle [, forward]) selects the next match using the editor's find
// options and returns its start and length, or nil.
func (r *Runner) luaFind(L *lua.LState) int {
	needle := L.CheckString(1)
	forward := L.OptBool(2, true)
	m, ok := r.editor.Find(needle, r.editor.FindOptions(), forward)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(m.Start))
	L.Push(lua.LNumber(m.Length))
	return 2
}

func (r *Runner) luaLineCount(L *lua.LState) int {
	L.Push(lua.LNumber(r.editor.LineCount()))
	return 1
}

// line(i) returns the text of line i without its newline.
func (r *Runner) luaLine(L *lua.LState) int {
	i := L.CheckInt(1)
	if i < 0 || i >= r.editor.LineCount() {
		L.ArgError(1, "line out of range")
		return 0
	}
	text := r.editor.TextRange(r.editor.Line(i).Range)
	L.Push(lua.LString(strings.TrimSuffix(text, "\n")))
	return 1
}

func (r *Runner) luaUndo(L *lua.LState) int {
	L.Push(lua.LBool(r.editor.Undo()))
	return 1
}

func (r *Runner) luaRedo(L *lua.LState) int {
	L.Push(lua.LBool(r.editor.Redo()))
	return 1
}

// checkpoint() returns an opaque mark for the current undo position.
func (r *Runner) luaCheckpoint(L *lua.LState) int {
	ud := L.NewUserData()
	ud.Value = r.editor.Checkpoint()
	L.Push(ud)
	return 1
}

func checkCheckpoint(L *lua.LState, n int) engine.Checkpoint {
	cp, ok := L.CheckUserData(n).Value.(engine.Checkpoint)
	if !ok {
		L.ArgError(n, "checkpoint expected")
	}
	return cp
}

// undo_to(cp) undoes back to cp and returns the number of steps undone.
func (r *Runner) luaUndoTo(L *lua.LState) int {
	L.Push(lua.LNumber(r.editor.UndoTo(checkCheckpoint(L, 1))))
	return 1
}

// redo_to(cp) redoes forward to cp and returns the number of steps redone.
func (r *Runner) luaRedoTo(L *lua.LState) int {
	L.Push(lua.LNumber(r.editor.RedoTo(checkCheckpoint(L, 1))))
	return 1
}

// keys(command) returns the key specs bound to a command.
func (r *Runner) luaKeys(L *lua.LState) int {
	events, err := r.editor.CommandKeys(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	t := L.NewTable()
	for _, ev := range events {
		t.Append(lua.LString(ev.String()))
	}
	L.Push(t)
	return 1
}

func (r *Runner) luaLog(L *lua.LState) int {
	r.print(L.CheckString(1))
	return 0
}
