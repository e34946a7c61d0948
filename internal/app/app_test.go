package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newTestApp(t *testing.T, opts Options) *Application {
	t.Helper()
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { app.Shutdown() })
	return app
}

func TestNewApplication(t *testing.T) {
	app := newTestApp(t, Options{})

	if app.Editor() == nil {
		t.Fatal("expected editor to be initialized")
	}
	if app.Config() == nil {
		t.Error("expected config to be initialized")
	}
	if app.scripts == nil {
		t.Error("expected scripts to be initialized")
	}
	if app.watcher != nil {
		t.Error("expected no watcher without a config path")
	}
	if got := app.Editor().PlainText(); got != "" {
		t.Errorf("PlainText() = %q, want empty", got)
	}
}

func TestNewLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello\nworld"), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, Options{File: path})
	if got := app.Editor().PlainText(); got != "hello\nworld" {
		t.Errorf("PlainText() = %q, want %q", got, "hello\nworld")
	}
	if app.IsModified() {
		t.Error("expected a freshly loaded file to be unmodified")
	}
}

func TestNewMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	app := newTestApp(t, Options{File: path})
	if got := app.Editor().PlainText(); got != "" {
		t.Errorf("PlainText() = %q, want empty", got)
	}
}

func TestNewAppliesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[editor]\ntabWidth = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, Options{ConfigPath: path})
	if got := app.Editor().TabWidth(); got != 2 {
		t.Errorf("TabWidth() = %d, want 2", got)
	}
}

func TestNewInvalidLogLevel(t *testing.T) {
	_, err := New(Options{LogLevel: "loud"})
	if err == nil {
		t.Fatal("expected error for invalid log level")
	}
	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected InitError, got %T", err)
	}
	if initErr.Component != "config" {
		t.Errorf("Component = %q, want %q", initErr.Component, "config")
	}
}

func TestNewWritesLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "textedit.log")
	app, err := New(Options{LogFile: logPath})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := app.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected startup to be logged")
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("one"), 0o644); err != nil {
		t.Fatal(err)
	}
	app := newTestApp(t, Options{File: path})

	app.Editor().SetCursor(3)
	app.Editor().InsertText(" two")
	if !app.IsModified() {
		t.Error("expected editing to mark the application modified")
	}

	if err := app.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if app.IsModified() {
		t.Error("expected Save to clear the modified flag")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "one two" {
		t.Errorf("saved %q, want %q", data, "one two")
	}
}

func TestSaveWithoutFile(t *testing.T) {
	app := newTestApp(t, Options{})
	if err := app.Save(); !errors.Is(err, ErrNoFilePath) {
		t.Errorf("Save() error = %v, want ErrNoFilePath", err)
	}
}

func TestSaveReportsFileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "notes.txt")
	app := newTestApp(t, Options{File: path})

	err := app.Save()
	var fileErr *FileError
	if !errors.As(err, &fileErr) {
		t.Fatalf("Save() error = %v, want FileError", err)
	}
	if fileErr.Op != "save" || fileErr.Path != path {
		t.Errorf("FileError = %+v", fileErr)
	}
}

func TestRunMacro(t *testing.T) {
	app := newTestApp(t, Options{})
	err := app.RunMacro(context.Background(), "greet", `editor.insert("hi")`)
	if err != nil {
		t.Fatalf("RunMacro() error = %v", err)
	}
	if got := app.Editor().PlainText(); got != "hi" {
		t.Errorf("PlainText() = %q, want %q", got, "hi")
	}
}

func TestRunExecutesMacros(t *testing.T) {
	dir := t.TempDir()
	macro := filepath.Join(dir, "setup.lua")
	if err := os.WriteFile(macro, []byte(`editor.set_text("from macro")`), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, Options{Macros: []string{macro}})
	screen := tcell.NewSimulationScreen("UTF-8")
	app.SetScreen(screen)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Run() error = %v, want context.DeadlineExceeded", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for Run to return")
	}
	if got := app.Editor().PlainText(); got != "from macro" {
		t.Errorf("PlainText() = %q, want %q", got, "from macro")
	}
}

func TestRunFailingMacro(t *testing.T) {
	macro := filepath.Join(t.TempDir(), "broken.lua")
	if err := os.WriteFile(macro, []byte(`error("boom")`), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, Options{Macros: []string{macro}})
	app.SetScreen(tcell.NewSimulationScreen("UTF-8"))

	if err := app.Run(context.Background()); err == nil {
		t.Fatal("expected Run to report the failing macro")
	}
}

func TestWatchStartsWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("editor:\n  tabWidth: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, Options{ConfigPath: path, Watch: true})
	if app.watcher == nil {
		t.Fatal("expected watcher to be started")
	}
}

func TestShutdownIdempotent(t *testing.T) {
	app, err := New(Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := app.Shutdown(); err != nil {
		t.Fatalf("first Shutdown() error = %v", err)
	}
	if err := app.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}
