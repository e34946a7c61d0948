package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textengine/internal/engine"
	"github.com/dshills/textengine/internal/logging"
)

// ModuleName is the name scripts pass to require to reach the editor.
const ModuleName = "editor"

// Runner executes Lua chunks against one editor.
type Runner struct {
	L      *lua.LState
	editor *engine.Editor
	logger *logging.Logger
	output io.Writer

	closed bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. Lua print and editor.log write to it unless
// an output writer is set.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithOutput redirects Lua print to w.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.output = w
	}
}

// NewRunner creates a sandboxed runner bound to e.
func NewRunner(e *engine.Editor, opts ...Option) *Runner {
	r := &Runner{
		editor: e,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("script")

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	r.installSandbox()
	r.L.PreloadModule(ModuleName, r.loadEditorModule)
	return r
}

// openSafeLibraries opens the libraries scripts may use. io, os and debug
// are never opened. The package library is needed for require.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// installSandbox removes file loading and restricts require.
func (r *Runner) installSandbox() {
	L := r.L
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("print", L.NewFunction(r.luaPrint))

	// Nothing may be loaded from disk.
	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}

	allowed := map[string]bool{
		"string":   true,
		"table":    true,
		"math":     true,
		ModuleName: true,
	}
	require := L.GetGlobal("require")
	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !allowed[name] {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(require)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))
}

func (r *Runner) luaPrint(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	r.print(strings.Join(parts, "\t"))
	return 0
}

func (r *Runner) print(msg string) {
	if r.output != nil {
		fmt.Fprintln(r.output, msg)
		return
	}
	r.logger.Info("%s", msg)
}

// Run executes code as a chunk called name. Edits made by the chunk form
// one undo group. Cancelling ctx aborts the chunk.
func (r *Runner) Run(ctx context.Context, name, code string) error {
	if r.closed {
		return ErrRunnerClosed
	}
	fn, err := r.L.Load(strings.NewReader(code), name)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrScriptFailed, name, err)
	}
	_, err = r.call(ctx, name, fn)
	return err
}

// RunFile reads and runs the Lua file at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScriptFailed, err)
	}
	return r.Run(ctx, path, string(data))
}

// Call invokes the global function fn, defined by an earlier chunk, and
// returns its results converted to Go values.
func (r *Runner) Call(ctx context.Context, fn string, args ...any) ([]any, error) {
	if r.closed {
		return nil, ErrRunnerClosed
	}
	f, ok := r.L.GetGlobal(fn).(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFunction, fn)
	}
	return r.call(ctx, fn, f, args...)
}

func (r *Runner) call(ctx context.Context, name string, fn *lua.LFunction, args ...any) (results []any, err error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrScriptFailed, name, err)
	}

	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	r.editor.BeginUndoGroup()
	defer r.editor.EndUndoGroup()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %s: lua panic: %v", ErrScriptFailed, name, p)
		}
	}()

	top := r.L.GetTop()
	r.L.Push(fn)
	for _, arg := range args {
		r.L.Push(toLua(r.L, arg))
	}
	if err := r.L.PCall(len(args), lua.MultRet, nil); err != nil {
		r.L.SetTop(top)
		if cerr := ctx.Err(); cerr != nil {
			err = cerr
		}
		r.logger.Warn("%s failed: %v", name, err)
		return nil, fmt.Errorf("%w: %s: %w", ErrScriptFailed, name, err)
	}

	n := r.L.GetTop() - top
	results = make([]any, n)
	for i := 0; i < n; i++ {
		results[i] = toGo(r.L.Get(top + i + 1))
	}
	r.L.SetTop(top)
	r.logger.Debug("%s ran, %d results", name, n)
	return results, nil
}

// Close releases the Lua state.
func (r *Runner) Close() error {
	if r.closed {
		return ErrRunnerClosed
	}
	r.closed = true
	r.L.Close()
	return nil
}
