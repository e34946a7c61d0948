package script

import "errors"

// Errors returned by the runner.
var (
	// ErrScriptFailed wraps any error raised while loading or running Lua.
	ErrScriptFailed = errors.New("script failed")

	// ErrRunnerClosed is returned when operating on a closed runner.
	ErrRunnerClosed = errors.New("script runner is closed")

	// ErrNotFunction is returned by Call when the global is not a function.
	ErrNotFunction = errors.New("not a lua function")
)
