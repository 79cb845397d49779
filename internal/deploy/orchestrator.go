package deploy

import (
	"errors"
	"fmt"

	"github.com/project-serum/serum-dev-tools/internal/cluster"
	"github.com/project-serum/serum-dev-tools/internal/identity"
	"github.com/project-serum/serum-dev-tools/internal/proc"
	"github.com/project-serum/serum-dev-tools/internal/ui"
	"github.com/project-serum/serum-dev-tools/internal/workspace"
)

// DefaultTool is the deploy executable used when Tool is empty.
const DefaultTool = "solana"

var persistIdentity = identity.Persist

// Fetcher downloads the newest artifact of a program.
type Fetcher interface {
	FetchLatest(programID string) ([]byte, error)
}

// Orchestrator drives init and deploy against one workspace. It holds no
// state across invocations; everything is derived from the workspace on disk.
type Orchestrator struct {
	Workspace *workspace.Workspace
	Fetcher   Fetcher
	Runner    proc.Runner
	Clusters  *cluster.Resolver

	// ProgramID selects the program in the registry.
	ProgramID string
	// Wallet is the signer keypair passed to the deploy tool.
	Wallet string
	// Tool is the deploy executable.
	Tool string

	// Confirm, when set, is asked before deploying to mainnet.
	Confirm func(url string) (bool, error)

	Progress *ui.Progress

	state State
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	if o.state != "" {
		return o.state
	}
	if o.Workspace.State() == workspace.StateInitialized {
		return StateInitialized
	}
	return StateUninitialized
}

// Init creates the workspace, stores the newest artifact and a fresh program
// keypair, and returns the program address. Nothing is written when the
// workspace already exists or the artifact cannot be fetched.
func (o *Orchestrator) Init() (string, error) {
	ws := o.Workspace
	if ws.Exists() {
		return "", fmt.Errorf("%s: %w", ws.Dir, ErrAlreadyInitialized)
	}

	artifact, err := o.Fetcher.FetchLatest(o.ProgramID)
	if err != nil {
		o.state = StateFailed
		return "", fmt.Errorf("fetching latest build of %s: %w", o.ProgramID, err)
	}
	o.Progress.Done("Fetched latest build (%d bytes)", len(artifact))

	id, err := identity.Generate()
	if err != nil {
		o.state = StateFailed
		return "", err
	}
	o.Progress.Done("Generated program keypair %s", id.Address())

	if err := ws.Create(); err != nil {
		o.state = StateFailed
		if errors.Is(err, workspace.ErrAlreadyExists) {
			return "", fmt.Errorf("%s: %w", ws.Dir, ErrAlreadyInitialized)
		}
		return "", err
	}

	if err := ws.WriteArtifact(artifact); err != nil {
		return "", o.partial(err)
	}
	o.Progress.Done("Wrote %s", ws.ArtifactPath())

	if err := persistIdentity(id, ws.IdentityPath()); err != nil {
		return "", o.partial(err)
	}
	o.Progress.Done("Wrote %s", ws.IdentityPath())

	o.state = StateInitialized
	return id.Address(), nil
}

func (o *Orchestrator) partial(err error) error {
	o.state = StateFailed
	return fmt.Errorf("%w: remove %s by hand before running init again: %w", ErrPartialInit, o.Workspace.Dir, err)
}

// Deploy runs the deploy tool against clusterToken and then hook, if set.
// A failing deploy skips the hook. A failing hook after a successful deploy
// is still reported as an *ExitError carrying the hook's code.
func (o *Orchestrator) Deploy(clusterToken, hook string) error {
	if err := o.requireInitialized(); err != nil {
		return err
	}

	url, err := o.resolver().Resolve(clusterToken)
	if err != nil {
		return err
	}

	if o.Confirm != nil && cluster.IsMainnet(url) {
		ok, err := o.Confirm(url)
		if err != nil {
			return fmt.Errorf("confirming deploy: %w", err)
		}
		if !ok {
			return ErrAborted
		}
	}

	o.state = StateDeploying
	o.Progress.Log("Deploying %s to %s", o.Workspace.ArtifactPath(), url)

	tool := o.tool()
	code, err := o.Runner.Run(tool,
		"deploy",
		"--url", url,
		"--keypair", o.Wallet,
		"--program-id", o.Workspace.IdentityPath(),
		o.Workspace.ArtifactPath(),
	)
	if err != nil {
		o.state = StateFailed
		return fmt.Errorf("%w: %w", ErrSubprocessLaunch, err)
	}
	if code != 0 {
		o.state = StateFailed
		return &ExitError{Kind: ErrSubprocessExit, Command: tool + " deploy", Code: code}
	}
	o.state = StateDeployed

	if hook == "" {
		return nil
	}

	o.Progress.Log("Running post-deploy script: %s", hook)
	code, err = proc.Shell(o.Runner, hook)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubprocessLaunch, err)
	}
	if code != 0 {
		return &ExitError{Kind: ErrHookExit, Command: hook, Code: code}
	}
	return nil
}

// Instance prints the program address through the deploy tool.
func (o *Orchestrator) Instance() error {
	if err := o.requireInitialized(); err != nil {
		return err
	}

	tool := o.tool()
	code, err := o.Runner.Run(tool, "address", "-k", o.Workspace.IdentityPath())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubprocessLaunch, err)
	}
	if code != 0 {
		return &ExitError{Kind: ErrSubprocessExit, Command: tool + " address", Code: code}
	}
	return nil
}

func (o *Orchestrator) requireInitialized() error {
	switch o.Workspace.State() {
	case workspace.StateInitialized:
		return nil
	case workspace.StateIncomplete:
		return fmt.Errorf("%s is incomplete: %w", o.Workspace.Dir, ErrNotInitialized)
	default:
		return fmt.Errorf("%s: %w (run init first)", o.Workspace.Dir, ErrNotInitialized)
	}
}

func (o *Orchestrator) resolver() *cluster.Resolver {
	if o.Clusters == nil {
		return &cluster.Resolver{}
	}
	return o.Clusters
}

func (o *Orchestrator) tool() string {
	if o.Tool == "" {
		return DefaultTool
	}
	return o.Tool
}
