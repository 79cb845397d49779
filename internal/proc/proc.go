package proc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner starts a command and waits for it.
//
// A command that starts and exits reports its exit code with a nil error.
// The error is only set when the command could not be started.
type Runner interface {
	Run(name string, args ...string) (int, error)
}

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner attached to the process's own stdio.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ExecRunner) Run(name string, args ...string) (int, error) {
	cmd := exec.Command(name, args...) //nolint:gosec // tool path comes from config
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return exitCode(name, cmd.Run())
}

// Shell runs command through sh -c.
func Shell(r Runner, command string) (int, error) {
	return r.Run("sh", "-c", command)
}

// LookPath reports the resolved path of an executable.
func LookPath(name string) (string, bool) {
	p, err := exec.LookPath(name)
	return p, err == nil
}

// Output runs a command and returns its trimmed stdout.
func Output(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...) //nolint:gosec // tool path comes from config
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

// exitCode maps the result of exec.Cmd.Run. Processes killed by a signal
// have no exit code and report 1.
func exitCode(name string, err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code, nil
		}
		return 1, nil
	}
	return -1, fmt.Errorf("starting %s: %w", name, err)
}
