package main

import (
	"bytes"
	"testing"

	"github.com/project-serum/serum-dev-tools/internal/config"
	"github.com/project-serum/serum-dev-tools/internal/proc"
	"github.com/project-serum/serum-dev-tools/internal/testutil"
	"github.com/spf13/cobra"
)

// useFakeRunner records subprocess invocations for the rest of the test.
func useFakeRunner(t *testing.T) *testutil.Runner {
	t.Helper()
	r := &testutil.Runner{}
	orig := newRunner
	newRunner = func(*cobra.Command) proc.Runner { return r }
	t.Cleanup(func() { newRunner = orig })
	return r
}

// execute runs the root command and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// initWorkspace runs init against a fixture registry and returns the root.
func initWorkspace(t *testing.T) string {
	t.Helper()
	reg := testutil.NewRegistry(t, config.DefaultProgramID, []uint64{3, 2, 1}, []byte("dex-elf"))
	dir := t.TempDir()
	if _, err := execute(t, "--root", dir, "--registry.url", reg.URL, "init"); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return dir
}
