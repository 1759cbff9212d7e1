package cli

import (
	"fmt"
)

// UsageError signals that a command was invoked incorrectly, and that its usage should be shown.
// Command is the path of the command that rejected its input, like "forcecheck check".
// [Command.Exec] fills it in when a [CommandFunc] returns a UsageError without one.
type UsageError struct {
	Command string
	wrapped error
}

func (e *UsageError) Error() string {
	msg := "invalid usage"
	if e.wrapped != nil {
		msg += ": " + e.wrapped.Error()
	}
	if len(e.Command) > 0 {
		return e.Command + ": " + msg
	}
	return msg
}

// Is matches any [*UsageError], regardless of its command or cause.
func (e *UsageError) Is(err error) bool {
	_, ok := err.(*UsageError)
	return ok
}

func (e *UsageError) Unwrap() error {
	return e.wrapped
}

// NewUsageError creates a [UsageError] for the command being executed.
// The format and args parameters are passed to [fmt.Errorf] to create the underlying error.
func NewUsageError(format string, args ...any) error {
	return &UsageError{wrapped: fmt.Errorf(format, args...)}
}
