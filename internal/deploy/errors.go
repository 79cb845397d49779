package deploy

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyInitialized = errors.New("workspace already initialized")
	ErrNotInitialized     = errors.New("workspace not initialized")
	ErrPartialInit        = errors.New("workspace partially initialized")
	ErrSubprocessLaunch   = errors.New("failed to launch subprocess")
	ErrSubprocessExit     = errors.New("subprocess exited with non-zero status")
	ErrHookExit           = errors.New("post-deploy script exited with non-zero status")
	ErrAborted            = errors.New("deploy aborted")
)

// ExitError reports a child process that ran and failed.
type ExitError struct {
	Kind    error
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: %s (exit status %d)", e.Kind, e.Command, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Kind }

// ExitCode returns the process exit code for err: 0 for nil, the child's
// code for an *ExitError and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}
