package cli

import "fmt"

// ExitError carries an exit code through cobra's error return path.
// Commands that have already reported their failure return an ExitError so
// Execute skips the generic error printing.
type ExitError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}
