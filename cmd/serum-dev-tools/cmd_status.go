package main

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/project-serum/serum-dev-tools/internal/ui"
	"github.com/project-serum/serum-dev-tools/internal/workspace"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the state of the dev-tools workspace",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type workspaceStatus struct {
	Dir      string     `json:"dir"`
	State    string     `json:"state"`
	Identity fileStatus `json:"identity"`
	Artifact fileStatus `json:"artifact"`
}

type fileStatus struct {
	Path    string `json:"path"`
	Present bool   `json:"present"`
	Size    int64  `json:"size,omitempty"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	s := collectStatus(e.ws)
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	_, _ = fmt.Fprintf(out, "Workspace: %s (%s)\n\n", s.Dir, stateLabel(workspace.State(s.State)))

	tbl := ui.NewTable(out, "FILE", "PRESENT", "SIZE", "PATH")
	tbl.Row("identity", s.Identity.Present, "", s.Identity.Path)
	size := ""
	if s.Artifact.Present {
		size = humanize.Bytes(uint64(s.Artifact.Size))
	}
	tbl.Row("artifact", s.Artifact.Present, size, s.Artifact.Path)
	return tbl.Flush()
}

func collectStatus(ws *workspace.Workspace) workspaceStatus {
	s := workspaceStatus{
		Dir:      ws.Dir,
		State:    string(ws.State()),
		Identity: fileStatus{Path: ws.IdentityPath()},
		Artifact: fileStatus{Path: ws.ArtifactPath()},
	}
	s.Identity.Present = isFile(ws.IdentityPath())
	if size := ws.ArtifactSize(); size >= 0 {
		s.Artifact.Present = true
		s.Artifact.Size = size
	}
	return s
}

func stateLabel(s workspace.State) string {
	switch s {
	case workspace.StateInitialized:
		return ui.Success.Render(string(s))
	case workspace.StateIncomplete:
		return ui.Warning.Render(string(s) + ", remove it and run init again")
	default:
		return ui.Faint.Render(string(s) + ", run init")
	}
}
