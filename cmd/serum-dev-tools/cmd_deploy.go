package main

import (
	"fmt"
	"os"

	"github.com/project-serum/serum-dev-tools/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy <cluster>",
		Short: "Deploy the workspace program to a cluster (localnet, devnet, testnet, mainnet or a URL)",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeploy,
	}
	cmd.Flags().String("script", "", "Shell command to run after a successful deploy")
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation before deploying to mainnet")
	return cmd
}

func runDeploy(cmd *cobra.Command, args []string) error {
	script, _ := cmd.Flags().GetString("script")
	yes, _ := cmd.Flags().GetBool("yes")

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	o := e.orchestrator(cmd, 0)
	if !yes && term.IsTerminal(int(os.Stdin.Fd())) {
		o.Confirm = func(url string) (bool, error) {
			return ui.Confirm(fmt.Sprintf("Deploy to %s? This spends real SOL.", url))
		}
	}

	if err := o.Deploy(args[0], script); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Render("Deploy successful"))
	return nil
}
