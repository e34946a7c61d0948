// Package config loads, validates and applies editor configuration.
//
// Configuration is a single file in TOML or YAML, chosen by extension.
// Unset values keep their defaults, so a file only needs the settings it
// changes.
//
// # Configuration Files
//
//	# textedit.toml
//	[editor]
//	tabWidth = 4
//	indentWithSpaces = true
//	undoCoalesce = "500ms"
//	cursorBlink = "500ms"
//
//	[find]
//	caseSensitive = false
//	wholeWords = true
//
//	[layout]
//	policy = "wrap"
//	maxWidth = 80
//
//	[keys]
//	FindNext = "<C-g>"
//	Redo = "Ctrl+y"
//
//	[log]
//	level = "debug"
//	file = "/tmp/textedit.log"
//
// # Basic Usage
//
//	cfg, err := config.Load("textedit.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts, err := cfg.EditorOptions()
//	...
//	e := engine.New(opts...)
//
// # Live Reload
//
// Watch reports a freshly loaded Config each time the file changes. Apply
// pushes a reloaded Config into a running editor.
//
// # Error Handling
//
//   - ErrInvalidConfig: a setting failed validation (see ValidationError)
//   - ErrUnsupportedFormat: the file extension is not .toml, .yaml or .yml
//   - ParseError: the file could not be decoded
package config
