package testutil

import (
	"strings"
	"sync"
)

// Call is one recorded invocation.
type Call struct {
	Name string
	Args []string
}

// Line renders the call as a single command line.
func (c Call) Line() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner records invocations instead of spawning processes. Codes are
// returned in order; once exhausted every call exits 0.
type Runner struct {
	Codes []int
	Err   error

	mu    sync.Mutex
	calls []Call
}

func (r *Runner) Run(name string, args ...string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Name: name, Args: append([]string(nil), args...)})
	if r.Err != nil {
		return -1, r.Err
	}
	if len(r.Codes) == 0 {
		return 0, nil
	}
	code := r.Codes[0]
	r.Codes = r.Codes[1:]
	return code, nil
}

// Calls returns the recorded invocations.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}
