// Package clipboard provides clipboard implementations for the editor.
package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/dshills/textengine/internal/logging"
)

// Memory is a process local clipboard.
type Memory struct {
	text string
	set  bool
}

// Read returns the stored text. ok is false when nothing has been
// written or the text is empty.
func (m *Memory) Read() (string, bool) {
	return m.text, m.set && m.text != ""
}

// Write stores text.
func (m *Memory) Write(text string) {
	m.text = text
	m.set = true
}

// System uses the operating system clipboard and falls back to process
// local storage when no system clipboard is available.
type System struct {
	fallback Memory
	logger   *logging.Logger
}

// NewSystem creates a system clipboard. logger may be nil.
func NewSystem(logger *logging.Logger) *System {
	if logger == nil {
		logger = logging.Nop()
	}
	return &System{logger: logger.WithComponent("clipboard")}
}

// Available reports whether a system clipboard utility was found.
func (s *System) Available() bool {
	return !clipboard.Unsupported
}

// Read returns the clipboard text.
func (s *System) Read() (string, bool) {
	if !s.Available() {
		return s.fallback.Read()
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		s.logger.Warn("read failed: %v", err)
		return s.fallback.Read()
	}
	return text, text != ""
}

// Write replaces the clipboard text.
func (s *System) Write(text string) {
	s.fallback.Write(text)
	if !s.Available() {
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		s.logger.Warn("write failed: %v", err)
	}
}
