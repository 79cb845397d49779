package main

import (
	"github.com/spf13/cobra"
)

func newInstanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "instance",
		Short: "Print the address of the workspace's program keypair",
		Args:  cobra.NoArgs,
		RunE:  runInstance,
	}
}

func runInstance(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	return e.orchestrator(cmd, 0).Instance()
}
