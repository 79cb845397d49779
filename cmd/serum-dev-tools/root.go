package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "serum-dev-tools",
		Short:         "Provision a local Serum DEX program and deploy it to a cluster",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("root", ".", "Directory containing the dev-tools workspace")
	cmd.PersistentFlags().String("config", "", "Config file (default <root>/serum-dev-tools.yaml if present)")
	cmd.PersistentFlags().String("provider.wallet", "", "Signer wallet keypair (default ~/.config/solana/id.json)")
	cmd.PersistentFlags().String("registry.url", "", "Build registry base URL")

	cmd.AddCommand(
		newInitCmd(),
		newInstanceCmd(),
		newDeployCmd(),
		newStatusCmd(),
		newDoctorCmd(),
	)

	return cmd
}
