// Package app wires the editor, its configuration, Lua macros and the
// terminal host into a runnable application.
package app

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textengine/internal/clipboard"
	"github.com/dshills/textengine/internal/config"
	"github.com/dshills/textengine/internal/engine"
	"github.com/dshills/textengine/internal/input/key"
	"github.com/dshills/textengine/internal/logging"
	"github.com/dshills/textengine/internal/script"
	"github.com/dshills/textengine/internal/term"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses the defaults.
	ConfigPath string

	// File is loaded into the editor and written back by Save.
	File string

	// Macros are Lua files run in order before the first draw.
	Macros []string

	// LogLevel and LogFile override the configuration when set.
	LogLevel string
	LogFile  string

	// Watch reloads the configuration file when it changes.
	Watch bool

	// SystemClipboard uses the OS clipboard instead of an in-process one.
	SystemClipboard bool
}

// Application owns every component for one editing session.
type Application struct {
	opts Options

	config   *config.Config
	logger   *logging.Logger
	closeLog func() error

	editor  *engine.Editor
	scripts *script.Runner
	host    *term.Host
	watcher *config.Watcher

	mu       sync.Mutex
	modified bool
	shutdown bool
}

// New creates an application. The screen is attached separately with
// SetScreen or created by Run.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := app.bootstrap(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Configuration
	cfg := config.Default()
	if app.opts.ConfigPath != "" {
		loaded, err := config.Load(app.opts.ConfigPath)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
		cfg = loaded
	}
	if app.opts.LogLevel != "" {
		cfg.Log.Level = app.opts.LogLevel
	}
	if app.opts.LogFile != "" {
		cfg.Log.File = app.opts.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	// 2. Logging. The terminal belongs to the screen, so nothing is
	// logged unless a file is configured.
	app.logger = logging.Nop()
	app.closeLog = func() error { return nil }
	if cfg.Log.File != "" {
		l, closer, err := cfg.Logger()
		if err != nil {
			return &InitError{Component: "logging", Err: err}
		}
		app.logger, app.closeLog = l, closer
	}

	// 3. Editor
	var text string
	if app.opts.File != "" {
		data, err := os.ReadFile(app.opts.File)
		switch {
		case err == nil:
			text = string(data)
		case errors.Is(err, os.ErrNotExist):
			app.logger.Info("new file %s", app.opts.File)
		default:
			return &InitError{Component: "editor", Err: &FileError{Op: "open", Path: app.opts.File, Err: err}}
		}
	}
	editorOpts, err := cfg.EditorOptions()
	if err != nil {
		return &InitError{Component: "editor", Err: err}
	}
	editorOpts = append(editorOpts,
		engine.WithText(text),
		engine.WithLogger(app.logger),
		engine.WithObserver(&engine.ObserverFuncs{
			TextChanged: app.markModified,
		}),
	)
	if app.opts.SystemClipboard {
		editorOpts = append(editorOpts, engine.WithClipboard(clipboard.NewSystem(app.logger)))
	}
	app.editor = engine.New(editorOpts...)

	// 4. Macros
	app.scripts = script.NewRunner(app.editor, script.WithLogger(app.logger))

	// 5. Config watcher
	if app.opts.Watch && app.opts.ConfigPath != "" {
		w, err := config.Watch(app.opts.ConfigPath, config.WithWatchLogger(app.logger))
		if err != nil {
			return &InitError{Component: "config watcher", Err: err}
		}
		app.watcher = w
	}

	app.logger.Info("started, %d characters loaded", app.editor.Len())
	return nil
}

// SetScreen attaches the screen the editor is drawn on.
func (app *Application) SetScreen(screen tcell.Screen) {
	app.host = term.NewHost(screen, app.editor,
		term.WithLogger(app.logger),
		term.WithShortcut(key.MustParse("Ctrl+s"), func(*engine.Editor) {
			if err := app.Save(); err != nil {
				app.logger.Warn("save failed: %v", err)
			}
		}),
	)
}

// Editor returns the editor.
func (app *Application) Editor() *engine.Editor {
	return app.editor
}

// Config returns the configuration in effect at startup.
func (app *Application) Config() *config.Config {
	return app.config
}

// Run initializes the screen, runs the startup macros and processes
// events until the user quits or ctx is done.
func (app *Application) Run(ctx context.Context) error {
	if app.host == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return &InitError{Component: "screen", Err: err}
		}
		app.SetScreen(screen)
	}
	if err := app.host.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer app.host.Fini()

	for _, path := range app.opts.Macros {
		if err := app.scripts.RunFile(ctx, path); err != nil {
			return err
		}
	}

	if app.watcher != nil {
		go app.forwardReloads()
	}
	return app.host.Run(ctx)
}

// forwardReloads hands reloaded configurations to the event loop.
func (app *Application) forwardReloads() {
	configs, errs := app.watcher.Configs(), app.watcher.Errors()
	for configs != nil || errs != nil {
		select {
		case cfg, ok := <-configs:
			if !ok {
				configs = nil
				continue
			}
			if err := app.host.Reload(cfg); err != nil {
				app.logger.Warn("reload not delivered: %v", err)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			app.logger.Warn("config: %v", err)
		}
	}
}

// RunMacro runs Lua code against the editor.
func (app *Application) RunMacro(ctx context.Context, name, code string) error {
	return app.scripts.Run(ctx, name, code)
}

func (app *Application) markModified() {
	app.mu.Lock()
	app.modified = true
	app.mu.Unlock()
}

// IsModified returns true if the text changed since it was loaded or saved.
func (app *Application) IsModified() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.modified
}

// Save writes the text to the file it was loaded from.
func (app *Application) Save() error {
	if app.opts.File == "" {
		return ErrNoFilePath
	}
	if err := os.WriteFile(app.opts.File, []byte(app.editor.PlainText()), 0o644); err != nil {
		return &FileError{Op: "save", Path: app.opts.File, Err: err}
	}
	app.mu.Lock()
	app.modified = false
	app.mu.Unlock()
	app.logger.Info("saved %s", app.opts.File)
	return nil
}

// Shutdown releases the watcher, the Lua state and the log file. It is
// safe to call more than once.
func (app *Application) Shutdown() error {
	app.mu.Lock()
	if app.shutdown {
		app.mu.Unlock()
		return nil
	}
	app.shutdown = true
	app.mu.Unlock()

	var errs []error
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if app.scripts != nil {
		if err := app.scripts.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if app.closeLog != nil {
		if err := app.closeLog(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
