package config

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidConfig indicates a setting failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedFormat indicates a file extension with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrWatcherClosed indicates the watcher was already closed.
	ErrWatcherClosed = errors.New("config watcher closed")
)

// ParseError reports a file that could not be decoded. Line and Column
// are 1-based and zero when the decoder gives no position.
type ParseError struct {
	Path         string
	Line, Column int
	Message      string
	Err          error
}

func (e *ParseError) Error() string {
	var pos string
	switch {
	case e.Line > 0 && e.Column > 0:
		pos = fmt.Sprintf(":%d:%d", e.Line, e.Column)
	case e.Line > 0:
		pos = fmt.Sprintf(":%d", e.Line)
	}
	return fmt.Sprintf("config %s%s: %s", e.Path, pos, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes one rejected setting. Path is the dotted
// setting name, e.g. "editor.tabWidth".
type ValidationError struct {
	Path    string
	Message string
	Value   any
	Code    ValidationErrorCode
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Is reports ValidationError as ErrInvalidConfig.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// ValidationErrorCode classifies a ValidationError.
type ValidationErrorCode uint8

const (
	ErrCodeUnknownSetting ValidationErrorCode = iota
	ErrCodeOutOfRange
	ErrCodeInvalidEnum
	ErrCodeInvalidKey
)

// String returns the code in snake case.
func (c ValidationErrorCode) String() string {
	switch c {
	case ErrCodeUnknownSetting:
		return "unknown_setting"
	case ErrCodeOutOfRange:
		return "out_of_range"
	case ErrCodeInvalidEnum:
		return "invalid_enum"
	case ErrCodeInvalidKey:
		return "invalid_key"
	default:
		return "unknown"
	}
}

// ValidationErrors collects every failure found in one pass.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Is reports ValidationErrors as ErrInvalidConfig.
func (errs ValidationErrors) Is(target error) bool {
	return target == ErrInvalidConfig
}
