package fixturerun

import (
	"errors"
)

const (
	exitCodeCasesFailed = 1
	exitCodeUsage       = 2
)

var errNoCaseTable = errors.New("no case table given")

// exitCodeError wraps an error with a specific exit code.
type exitCodeError struct {
	err      error
	exitCode int
	detail   string
}

func (e *exitCodeError) Error() string {
	return e.detail
}

func (e *exitCodeError) Unwrap() error {
	return e.err
}

func (e *exitCodeError) ExitCode() int {
	return e.exitCode
}

var _ interface { //nolint:errcheck // Compile-time interface assertion, no error return
	error
	Unwrap() error
	ExitCode() int
} = (*exitCodeError)(nil)

// newExitCodeError creates an error with a specific exit code.
func newExitCodeError(exitCode int, detail string, cause error) error {
	return &exitCodeError{
		err:      cause,
		exitCode: exitCode,
		detail:   detail,
	}
}

// ExitCode returns the exit code carried by err, or fallback when there is none.
func ExitCode(err error, fallback int) int {
	var ec interface{ ExitCode() int }
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return fallback
}
