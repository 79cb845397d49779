package main

import (
	"fmt"
	"os"

	"github.com/project-serum/serum-dev-tools/internal/deploy"
	"github.com/project-serum/serum-dev-tools/internal/ui"
)

// Set via -ldflags at build time.
var version = "dev"

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Failure.Render("Error: "+err.Error()))
		os.Exit(deploy.ExitCode(err))
	}
}
