package main

import (
	"fmt"
	"os"

	"github.com/project-serum/serum-dev-tools/internal/proc"
	"github.com/project-serum/serum-dev-tools/internal/workspace"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the environment for common issues",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ok := true

	// Deploy tool.
	tool := e.cfg.SolanaPath
	_, _ = fmt.Fprintf(out, "Checking %s... ", tool)
	toolPath, found := proc.LookPath(tool)
	if !found {
		_, _ = fmt.Fprintln(out, "NOT FOUND")
		_, _ = fmt.Fprintln(out, "  The Solana CLI is required. Install it from https://docs.solana.com/cli/install-solana-cli-tools")
		ok = false
	} else {
		_, _ = fmt.Fprintf(out, "found at %s\n", toolPath)
		_, _ = fmt.Fprintf(out, "Checking %s version... ", tool)
		if ver, verr := proc.Output(toolPath, "--version"); verr != nil {
			_, _ = fmt.Fprintln(out, "ERROR")
			ok = false
		} else {
			_, _ = fmt.Fprintln(out, ver)
		}
	}

	// Signer wallet.
	_, _ = fmt.Fprintf(out, "Checking wallet %s... ", e.cfg.Provider.Wallet)
	if isFile(e.cfg.Provider.Wallet) {
		_, _ = fmt.Fprintln(out, "OK")
	} else {
		_, _ = fmt.Fprintln(out, "NOT FOUND (use --provider.wallet or run solana-keygen new)")
		ok = false
	}

	// Workspace.
	state := e.ws.State()
	_, _ = fmt.Fprintf(out, "Workspace %s: %s\n", e.ws.Dir, state)
	if state == workspace.StateIncomplete {
		_, _ = fmt.Fprintf(out, "  Remove %s and run init again.\n", e.ws.Dir)
		ok = false
	}

	if ok {
		_, _ = fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}

// isFile reports whether path is a regular file.
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
