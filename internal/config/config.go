package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/textengine/internal/engine"
	"github.com/dshills/textengine/internal/engine/edit"
	"github.com/dshills/textengine/internal/engine/layout"
	"github.com/dshills/textengine/internal/input/key"
	"github.com/dshills/textengine/internal/logging"
)

// Config holds every editor setting.
type Config struct {
	Editor EditorConfig `toml:"editor" yaml:"editor"`
	Find   FindConfig   `toml:"find" yaml:"find"`
	Layout LayoutConfig `toml:"layout" yaml:"layout"`

	// Keys maps command names to key specifications. Bindings here are
	// added to the default key table.
	Keys map[string]string `toml:"keys" yaml:"keys"`

	Log LogConfig `toml:"log" yaml:"log"`
}

// EditorConfig contains editing behaviour settings.
type EditorConfig struct {
	TabWidth         int      `toml:"tabWidth" yaml:"tabWidth"`
	IndentWithSpaces bool     `toml:"indentWithSpaces" yaml:"indentWithSpaces"`
	IndentWidth      int      `toml:"indentWidth" yaml:"indentWidth"`
	UndoCoalesce     Duration `toml:"undoCoalesce" yaml:"undoCoalesce"`
	CursorBlink      Duration `toml:"cursorBlink" yaml:"cursorBlink"`
	MaxUndoEntries   int      `toml:"maxUndoEntries" yaml:"maxUndoEntries"`
	PageRows         int      `toml:"pageRows" yaml:"pageRows"`
}

// FindConfig contains find settings.
type FindConfig struct {
	CaseSensitive bool `toml:"caseSensitive" yaml:"caseSensitive"`
	WholeWords    bool `toml:"wholeWords" yaml:"wholeWords"`
}

// LayoutConfig contains line layout settings.
type LayoutConfig struct {
	// Policy is one of "wrap", "truncate" or "clip".
	Policy      string  `toml:"policy" yaml:"policy"`
	MaxWidth    float64 `toml:"maxWidth" yaml:"maxWidth"`
	LineSpacing float64 `toml:"lineSpacing" yaml:"lineSpacing"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	// File receives log output. Empty means standard error.
	File string `toml:"file" yaml:"file"`
}

// Duration is a time.Duration written as a string such as "500ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Limits for numeric settings.
const (
	MaxTabWidth   = 16
	MaxUndoWindow = time.Minute
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth:       engine.DefaultTabWidth,
			IndentWidth:    edit.DefaultIndentWidth,
			UndoCoalesce:   Duration(engine.DefaultUndoCoalesce),
			CursorBlink:    Duration(engine.DefaultCursorBlink),
			MaxUndoEntries: engine.DefaultMaxUndoEntries,
			PageRows:       engine.DefaultPageRows,
		},
		Layout: LayoutConfig{
			Policy: layout.Wrap.String(),
		},
		Keys: map[string]string{},
		Log: LogConfig{
			Level: logging.LevelInfo.String(),
		},
	}
}

// Format is a configuration file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatFor returns the format implied by path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads and validates the configuration file at path. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data, format)
}

// Parse decodes and validates configuration data.
func Parse(data []byte, format Format) (*Config, error) {
	return parse("<data>", data, format)
}

func parse(source string, data []byte, format Format) (*Config, error) {
	cfg := Default()
	var err error
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
		// An empty document decodes nothing.
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return nil, fmt.Errorf("%w: format %d", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, newParseError(source, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}
	var de *toml.DecodeError
	if errors.As(err, &de) {
		pe.Line, pe.Column = de.Position()
		pe.Message = de.Error()
	}
	var sm *toml.StrictMissingError
	if errors.As(err, &sm) {
		pe.Message = "unknown setting: " + sm.String()
	}
	return pe
}

// Validate checks every setting and returns ValidationErrors listing all
// failures.
func (c *Config) Validate() error {
	var errs ValidationErrors
	fail := func(path, msg string, value any, code ValidationErrorCode) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value, Code: code})
	}

	ed := c.Editor
	if ed.TabWidth < 1 || ed.TabWidth > MaxTabWidth {
		fail("editor.tabWidth", fmt.Sprintf("must be between 1 and %d", MaxTabWidth), ed.TabWidth, ErrCodeOutOfRange)
	}
	if ed.IndentWidth < 1 || ed.IndentWidth > MaxTabWidth {
		fail("editor.indentWidth", fmt.Sprintf("must be between 1 and %d", MaxTabWidth), ed.IndentWidth, ErrCodeOutOfRange)
	}
	if ed.UndoCoalesce < 0 || ed.UndoCoalesce.Std() > MaxUndoWindow {
		fail("editor.undoCoalesce", "must be between 0 and "+MaxUndoWindow.String(), ed.UndoCoalesce.Std(), ErrCodeOutOfRange)
	}
	if ed.CursorBlink < 0 {
		fail("editor.cursorBlink", "must not be negative", ed.CursorBlink.Std(), ErrCodeOutOfRange)
	}
	if ed.MaxUndoEntries < 1 {
		fail("editor.maxUndoEntries", "must be at least 1", ed.MaxUndoEntries, ErrCodeOutOfRange)
	}
	if ed.PageRows < 1 {
		fail("editor.pageRows", "must be at least 1", ed.PageRows, ErrCodeOutOfRange)
	}

	if _, err := layout.ParsePolicy(c.Layout.Policy); err != nil {
		fail("layout.policy", "must be wrap, truncate or clip", c.Layout.Policy, ErrCodeInvalidEnum)
	}
	if c.Layout.MaxWidth < 0 {
		fail("layout.maxWidth", "must not be negative", c.Layout.MaxWidth, ErrCodeOutOfRange)
	}

	for name, spec := range c.Keys {
		path := "keys." + name
		if _, err := edit.ParseCommand(name); err != nil {
			fail(path, "unknown command", name, ErrCodeUnknownSetting)
			continue
		}
		if _, err := key.Parse(spec); err != nil {
			fail(path, err.Error(), spec, ErrCodeInvalidKey)
		}
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		fail("log.level", "must be debug, info, warn or error", c.Log.Level, ErrCodeInvalidEnum)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// FindOptions returns the configured find flags.
func (c *Config) FindOptions() engine.FindOptions {
	var opts engine.FindOptions
	if c.Find.CaseSensitive {
		opts |= engine.CaseSensitive
	}
	if c.Find.WholeWords {
		opts |= engine.WholeWords
	}
	return opts
}

// KeyTable returns the default key table with the configured bindings
// applied on top.
func (c *Config) KeyTable() (*engine.KeyTable, error) {
	t := engine.DefaultKeyTable()
	for name, spec := range c.Keys {
		cmd, err := edit.ParseCommand(name)
		if err != nil {
			return nil, fmt.Errorf("keys.%s: %w", name, engine.ErrUnknownCommand)
		}
		if err := t.BindSpec(spec, cmd); err != nil {
			return nil, fmt.Errorf("keys.%s: %w", name, err)
		}
	}
	return t, nil
}

// EditorOptions converts the configuration into options for engine.New.
func (c *Config) EditorOptions() ([]engine.Option, error) {
	policy, err := layout.ParsePolicy(c.Layout.Policy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	keys, err := c.KeyTable()
	if err != nil {
		return nil, err
	}
	ed := c.Editor
	return []engine.Option{
		engine.WithTabWidth(ed.TabWidth),
		engine.WithIndent(ed.IndentWithSpaces, ed.IndentWidth),
		engine.WithUndoCoalesce(ed.UndoCoalesce.Std()),
		engine.WithCursorBlink(ed.CursorBlink.Std()),
		engine.WithMaxUndoEntries(ed.MaxUndoEntries),
		engine.WithPageRows(ed.PageRows),
		engine.WithFindOptions(c.FindOptions()),
		engine.WithLayout(policy, c.Layout.MaxWidth),
		engine.WithLineSpacing(c.Layout.LineSpacing),
		engine.WithKeyTable(keys),
	}, nil
}

// Apply pushes the configuration into a running editor. The text, cursor
// and undo history are kept.
func (c *Config) Apply(e *engine.Editor) error {
	if err := c.Validate(); err != nil {
		return err
	}
	policy, _ := layout.ParsePolicy(c.Layout.Policy)
	keys, err := c.KeyTable()
	if err != nil {
		return err
	}

	ed := c.Editor
	e.SetTabWidth(ed.TabWidth)
	e.SetIndent(ed.IndentWithSpaces, ed.IndentWidth)
	e.SetUndoCoalesce(ed.UndoCoalesce.Std())
	e.SetCursorBlink(ed.CursorBlink.Std())
	e.SetMaxUndoEntries(ed.MaxUndoEntries)
	e.SetPageRows(ed.PageRows)
	e.SetFindOptions(c.FindOptions())
	e.SetLayout(policy, c.Layout.MaxWidth)
	e.SetLineSpacing(c.Layout.LineSpacing)
	e.SetKeyTable(keys)
	return nil
}

// Logger builds the configured logger. The returned close function
// releases the log file, if any.
func (c *Config) Logger() (*logging.Logger, func() error, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg := logging.DefaultConfig()
	cfg.Level = level
	closer := func() error { return nil }
	if c.Log.File != "" {
		f, err := os.OpenFile(c.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		cfg.Output = f
		closer = f.Close
	}
	return logging.New(cfg), closer, nil
}
