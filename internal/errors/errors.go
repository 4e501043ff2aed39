package errors

import (
	"errors"
	"fmt"
)

// An error caused by the host's packaging tools rather than by the input. The CLI prints its message as-is.
type ToolingError struct {
	// The version of the tool that was found.
	Version string
	err     error
}

func (e *ToolingError) Error() string {
	return e.err.Error()
}

func (e *ToolingError) Unwrap() error {
	return errors.Unwrap(e.err)
}

// Create a new [ToolingError] for the given tool version, accepting the same remaining arguments as [fmt.Errorf].
func Errorf(version string, format string, a ...any) *ToolingError {
	return &ToolingError{Version: version, err: fmt.Errorf(format, a...)}
}

// Report whether any error in `err`'s chain is a [ToolingError].
func IsToolingError(err error) bool {
	var toolingErr *ToolingError
	return errors.As(err, &toolingErr)
}
