package main

import (
	"github.com/project-serum/serum-dev-tools/internal/cluster"
	"github.com/project-serum/serum-dev-tools/internal/config"
	"github.com/project-serum/serum-dev-tools/internal/deploy"
	"github.com/project-serum/serum-dev-tools/internal/proc"
	"github.com/project-serum/serum-dev-tools/internal/registry"
	"github.com/project-serum/serum-dev-tools/internal/ui"
	"github.com/project-serum/serum-dev-tools/internal/workspace"
	"github.com/spf13/cobra"
)

// newRunner attaches child processes to the command's stdio. Tests swap it
// for a recording runner.
var newRunner = func(cmd *cobra.Command) proc.Runner {
	return &proc.ExecRunner{
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}
}

// env is the resolved state shared by every command of one invocation.
type env struct {
	cfg *config.Config
	ws  *workspace.Workspace
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	root, _ := cmd.Flags().GetString("root")
	cfgPath, _ := cmd.Flags().GetString("config")
	wallet, _ := cmd.Flags().GetString("provider.wallet")
	registryURL, _ := cmd.Flags().GetString("registry.url")

	cfg, err := config.Resolve(root, cfgPath, config.Overrides{
		Wallet:      wallet,
		RegistryURL: registryURL,
	})
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, ws: workspace.New(root)}, nil
}

// orchestrator wires the collaborators; steps sizes the progress counter.
func (e *env) orchestrator(cmd *cobra.Command, steps int) *deploy.Orchestrator {
	return &deploy.Orchestrator{
		Workspace: e.ws,
		Fetcher:   &registry.Fetcher{Source: registry.NewClient(e.cfg.Registry.URL)},
		Runner:    newRunner(cmd),
		Clusters:  &cluster.Resolver{Extra: e.cfg.Clusters},
		ProgramID: e.cfg.Registry.ProgramID,
		Wallet:    e.cfg.Provider.Wallet,
		Tool:      e.cfg.SolanaPath,
		Progress:  ui.NewProgress(cmd.ErrOrStderr(), steps),
	}
}
