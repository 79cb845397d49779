package main

import (
	"fmt"

	"github.com/project-serum/serum-dev-tools/internal/ui"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Fetch the latest program build and generate a program keypair",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	o := e.orchestrator(cmd, 4)
	address, err := o.Init()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, ui.Success.Render("Initialized dev-tools!"))
	_, _ = fmt.Fprintf(out, "Program ID: %s\n", ui.Bold.Render(address))
	return nil
}
