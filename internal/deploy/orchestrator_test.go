package deploy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/project-serum/serum-dev-tools/internal/cluster"
	"github.com/project-serum/serum-dev-tools/internal/identity"
	"github.com/project-serum/serum-dev-tools/internal/registry"
	"github.com/project-serum/serum-dev-tools/internal/testutil"
	"github.com/project-serum/serum-dev-tools/internal/workspace"
)

const (
	programID = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"
	wallet    = "/home/op/.config/solana/id.json"
)

type fakeFetcher struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeFetcher) FetchLatest(string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

func newOrchestrator(t *testing.T) (*Orchestrator, *testutil.Runner, *fakeFetcher) {
	t.Helper()
	runner := &testutil.Runner{}
	fetcher := &fakeFetcher{data: []byte("elf")}
	return &Orchestrator{
		Workspace: workspace.New(t.TempDir()),
		Fetcher:   fetcher,
		Runner:    runner,
		ProgramID: programID,
		Wallet:    wallet,
	}, runner, fetcher
}

func initialized(t *testing.T) (*Orchestrator, *testutil.Runner) {
	t.Helper()
	o, runner, _ := newOrchestrator(t)
	if _, err := o.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	return o, runner
}

func TestInit(t *testing.T) {
	o, _, fetcher := newOrchestrator(t)
	if o.State() != StateUninitialized {
		t.Fatalf("State() = %q before init", o.State())
	}

	addr, err := o.Init()
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if addr == "" {
		t.Error("Init() returned an empty program address")
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times, want 1", fetcher.calls)
	}
	if o.State() != StateInitialized {
		t.Errorf("State() = %q, want %q", o.State(), StateInitialized)
	}
	if o.Workspace.State() != workspace.StateInitialized {
		t.Errorf("workspace state = %q", o.Workspace.State())
	}
	data, err := os.ReadFile(o.Workspace.ArtifactPath())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "elf" {
		t.Errorf("artifact = %q", data)
	}
}

func TestInit_alreadyInitialized(t *testing.T) {
	o, _ := initialized(t)
	before, err := os.ReadFile(o.Workspace.IdentityPath())
	if err != nil {
		t.Fatal(err)
	}

	fetcher := &fakeFetcher{data: []byte("new")}
	again := &Orchestrator{Workspace: o.Workspace, Fetcher: fetcher, Runner: &testutil.Runner{}, ProgramID: programID}
	_, err = again.Init()
	if !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("Init() error = %v, want ErrAlreadyInitialized", err)
	}
	if fetcher.calls != 0 {
		t.Error("Init() on an existing workspace must not fetch")
	}

	after, err := os.ReadFile(o.Workspace.IdentityPath())
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("Init() rewrote the program keypair")
	}
}

func TestInit_emptyDirectoryCountsAsInitialized(t *testing.T) {
	o, _, fetcher := newOrchestrator(t)
	if err := os.Mkdir(o.Workspace.Dir, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := o.Init(); !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("Init() error = %v, want ErrAlreadyInitialized", err)
	}
	if fetcher.calls != 0 {
		t.Error("fetch should not run")
	}
	entries, _ := os.ReadDir(o.Workspace.Dir)
	if len(entries) != 0 {
		t.Errorf("Init() wrote %d files into an existing workspace", len(entries))
	}
}

func TestInit_fetchFails(t *testing.T) {
	o, _, fetcher := newOrchestrator(t)
	fetcher.err = registry.ErrUnavailable

	_, err := o.Init()
	if !errors.Is(err, registry.ErrUnavailable) {
		t.Fatalf("Init() error = %v, want ErrUnavailable", err)
	}
	if o.State() != StateFailed {
		t.Errorf("State() = %q, want %q", o.State(), StateFailed)
	}
	if o.Workspace.Exists() {
		t.Error("workspace directory created despite fetch failure")
	}
	if _, err := os.Stat(o.Workspace.IdentityPath()); err == nil {
		t.Error("identity written despite fetch failure")
	}

	fresh := &Orchestrator{Workspace: o.Workspace, Runner: &testutil.Runner{}}
	if err := fresh.Deploy("localnet", ""); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Deploy() after failed init error = %v, want ErrNotInitialized", err)
	}
}

func TestInit_noBuildFound(t *testing.T) {
	reg := testutil.NewRegistry(t, programID, nil, []byte("unused"))
	o, _, _ := newOrchestrator(t)
	o.Fetcher = &registry.Fetcher{Source: registry.NewClient(reg.URL)}

	_, err := o.Init()
	if !errors.Is(err, registry.ErrNoBuildFound) {
		t.Fatalf("Init() error = %v, want ErrNoBuildFound", err)
	}
	if o.Workspace.Exists() {
		t.Error("workspace directory created without a build")
	}
}

func TestInit_fromRegistry(t *testing.T) {
	reg := testutil.NewRegistry(t, programID, []uint64{9, 8}, []byte("registry-elf"))
	o, _, _ := newOrchestrator(t)
	o.Fetcher = &registry.Fetcher{Source: registry.NewClient(reg.URL)}

	if _, err := o.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	data, err := os.ReadFile(o.Workspace.ArtifactPath())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "registry-elf" {
		t.Errorf("artifact = %q", data)
	}
}

func TestInit_partialFailure(t *testing.T) {
	o, runner, _ := newOrchestrator(t)

	orig := persistIdentity
	persistIdentity = func(*identity.Identity, string) error {
		return fmt.Errorf("writing keypair: %w", identity.ErrWriteFailed)
	}
	t.Cleanup(func() { persistIdentity = orig })

	_, err := o.Init()
	if !errors.Is(err, ErrPartialInit) {
		t.Fatalf("Init() error = %v, want ErrPartialInit", err)
	}
	if !errors.Is(err, identity.ErrWriteFailed) {
		t.Errorf("Init() error = %v, want ErrWriteFailed in chain", err)
	}
	if o.State() != StateFailed {
		t.Errorf("State() = %q, want %q", o.State(), StateFailed)
	}
	if got := o.Workspace.State(); got != workspace.StateIncomplete {
		t.Errorf("workspace state = %q, want %q", got, workspace.StateIncomplete)
	}

	// The half-written workspace is left alone and refuses to deploy.
	fresh := &Orchestrator{Workspace: o.Workspace, Runner: runner}
	if err := fresh.Deploy("localnet", ""); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Deploy() error = %v, want ErrNotInitialized", err)
	}
	if _, err := fresh.Init(); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("Init() on partial workspace error = %v, want ErrAlreadyInitialized", err)
	}
	if len(runner.Calls()) != 0 {
		t.Errorf("runner called on partial workspace: %v", runner.Calls())
	}
}

func TestDeploy(t *testing.T) {
	o, runner := initialized(t)

	if err := o.Deploy("devnet", ""); err != nil {
		t.Fatalf("Deploy() error: %v", err)
	}
	if o.State() != StateDeployed {
		t.Errorf("State() = %q, want %q", o.State(), StateDeployed)
	}

	calls := runner.Calls()
	if len(calls) != 1 {
		t.Fatalf("runner calls = %v, want 1", calls)
	}
	want := testutil.Call{
		Name: "solana",
		Args: []string{
			"deploy",
			"--url", cluster.DevnetURL,
			"--keypair", wallet,
			"--program-id", o.Workspace.IdentityPath(),
			o.Workspace.ArtifactPath(),
		},
	}
	if !reflect.DeepEqual(calls[0], want) {
		t.Errorf("call = %q, want %q", calls[0].Line(), want.Line())
	}
}

func TestDeploy_customToolAndURL(t *testing.T) {
	o, runner := initialized(t)
	o.Tool = "/opt/solana/bin/solana"

	if err := o.Deploy("https://x.example", ""); err != nil {
		t.Fatal(err)
	}
	call := runner.Calls()[0]
	if call.Name != "/opt/solana/bin/solana" {
		t.Errorf("tool = %q", call.Name)
	}
	if call.Args[2] != "https://x.example" {
		t.Errorf("url arg = %q, want passthrough", call.Args[2])
	}
}

func TestDeploy_notInitialized(t *testing.T) {
	o, runner, _ := newOrchestrator(t)

	err := o.Deploy("localnet", "echo done")
	if !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Deploy() error = %v, want ErrNotInitialized", err)
	}
	if len(runner.Calls()) != 0 {
		t.Errorf("deploy tool invoked on uninitialized workspace: %v", runner.Calls())
	}
}

func TestDeploy_unknownCluster(t *testing.T) {
	o, runner := initialized(t)

	err := o.Deploy("devent", "")
	if !errors.Is(err, cluster.ErrUnknownCluster) {
		t.Fatalf("Deploy() error = %v, want ErrUnknownCluster", err)
	}
	if len(runner.Calls()) != 0 {
		t.Error("deploy tool invoked for an unknown cluster")
	}
}

func TestDeploy_customAlias(t *testing.T) {
	o, runner := initialized(t)
	o.Clusters = &cluster.Resolver{Extra: map[string]string{"staging": "https://rpc.staging.example"}}

	if err := o.Deploy("staging", ""); err != nil {
		t.Fatal(err)
	}
	if got := runner.Calls()[0].Args[2]; got != "https://rpc.staging.example" {
		t.Errorf("url arg = %q", got)
	}
}

func TestDeploy_exitCodePassthrough(t *testing.T) {
	for _, code := range []int{1, 2, 42} {
		o, runner := initialized(t)
		runner.Codes = []int{code}

		err := o.Deploy("localnet", "echo hook")
		if !errors.Is(err, ErrSubprocessExit) {
			t.Fatalf("Deploy() error = %v, want ErrSubprocessExit", err)
		}
		if got := ExitCode(err); got != code {
			t.Errorf("ExitCode() = %d, want %d", got, code)
		}
		if o.State() != StateFailed {
			t.Errorf("State() = %q, want %q", o.State(), StateFailed)
		}
		if n := len(runner.Calls()); n != 1 {
			t.Errorf("hook ran after failed deploy (%d calls)", n)
		}
	}
}

func TestDeploy_hook(t *testing.T) {
	o, runner := initialized(t)

	if err := o.Deploy("localnet", "npm run seed"); err != nil {
		t.Fatalf("Deploy() error: %v", err)
	}
	calls := runner.Calls()
	if len(calls) != 2 {
		t.Fatalf("runner calls = %d, want 2", len(calls))
	}
	want := testutil.Call{Name: "sh", Args: []string{"-c", "npm run seed"}}
	if !reflect.DeepEqual(calls[1], want) {
		t.Errorf("hook call = %q, want %q", calls[1].Line(), want.Line())
	}
}

func TestDeploy_hookExitCode(t *testing.T) {
	o, runner := initialized(t)
	runner.Codes = []int{0, 5}

	err := o.Deploy("localnet", "exit 5")
	if !errors.Is(err, ErrHookExit) {
		t.Fatalf("Deploy() error = %v, want ErrHookExit", err)
	}
	if got := ExitCode(err); got != 5 {
		t.Errorf("ExitCode() = %d, want 5", got)
	}
	if o.State() != StateDeployed {
		t.Errorf("State() = %q, want %q", o.State(), StateDeployed)
	}
}

func TestDeploy_launchFailure(t *testing.T) {
	o, runner := initialized(t)
	runner.Err = errors.New("exec: \"solana\": executable file not found in $PATH")

	err := o.Deploy("localnet", "")
	if !errors.Is(err, ErrSubprocessLaunch) {
		t.Fatalf("Deploy() error = %v, want ErrSubprocessLaunch", err)
	}
	if got := ExitCode(err); got != 1 {
		t.Errorf("ExitCode() = %d, want 1", got)
	}
}

func TestDeploy_mainnetConfirmation(t *testing.T) {
	tests := []struct {
		name    string
		cluster string
		answer  bool
		asked   bool
		wantErr error
	}{
		{"declined", "mainnet", false, true, ErrAborted},
		{"accepted", "mainnet-beta", true, true, nil},
		{"not mainnet", "devnet", false, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, runner := initialized(t)
			asked := false
			o.Confirm = func(string) (bool, error) {
				asked = true
				return tt.answer, nil
			}

			err := o.Deploy(tt.cluster, "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Deploy() error = %v, want %v", err, tt.wantErr)
			}
			if asked != tt.asked {
				t.Errorf("asked = %v, want %v", asked, tt.asked)
			}
			if tt.wantErr != nil && len(runner.Calls()) != 0 {
				t.Error("deploy tool invoked after declining")
			}
		})
	}
}

func TestInstance(t *testing.T) {
	o, runner := initialized(t)

	if err := o.Instance(); err != nil {
		t.Fatalf("Instance() error: %v", err)
	}
	want := testutil.Call{Name: "solana", Args: []string{"address", "-k", o.Workspace.IdentityPath()}}
	if calls := runner.Calls(); len(calls) != 1 || !reflect.DeepEqual(calls[0], want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestInstance_failures(t *testing.T) {
	o, runner, _ := newOrchestrator(t)
	if err := o.Instance(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Instance() error = %v, want ErrNotInitialized", err)
	}
	if len(runner.Calls()) != 0 {
		t.Error("tool invoked on uninitialized workspace")
	}

	o, runner = initialized(t)
	runner.Codes = []int{3}
	if got := ExitCode(o.Instance()); got != 3 {
		t.Errorf("ExitCode() = %d, want 3", got)
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != 0 {
		t.Error("ExitCode(nil) != 0")
	}
	if ExitCode(ErrNotInitialized) != 1 {
		t.Error("ExitCode(plain error) != 1")
	}
	wrapped := fmt.Errorf("outer: %w", &ExitError{Kind: ErrHookExit, Command: "x", Code: 9})
	if ExitCode(wrapped) != 9 {
		t.Errorf("ExitCode(wrapped) = %d, want 9", ExitCode(wrapped))
	}
}

func TestWorkspaceLayout(t *testing.T) {
	o, _ := initialized(t)
	if filepath.Base(o.Workspace.Dir) != "dev-tools" {
		t.Errorf("workspace dir = %q", o.Workspace.Dir)
	}
}
