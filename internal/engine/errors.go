package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrUnknownCommand indicates a command name that does not exist.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrInvalidKey indicates a key specification that cannot be parsed.
	ErrInvalidKey = errors.New("invalid key binding")

	// ErrInvalidEncoding indicates text that could not be decoded.
	ErrInvalidEncoding = errors.New("invalid text encoding")
)
