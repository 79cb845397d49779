package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DirName is the workspace directory created under the root.
	DirName = "dev-tools"

	// IdentityFile is the program keypair consumed by the deploy tool.
	IdentityFile = "serum-dex-dev.json"

	// ArtifactFile is the compiled program fetched from the registry.
	ArtifactFile = "serum-dex.so"
)

var (
	ErrAlreadyExists = errors.New("workspace already exists")
	ErrWriteFailed   = errors.New("write failed")
)

// State describes what is on disk for a workspace.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateIncomplete    State = "incomplete"
	StateInitialized   State = "initialized"
)

// Workspace is the dev-tools directory under a root.
type Workspace struct {
	Dir string
}

// New returns the workspace rooted at root/dev-tools.
func New(root string) *Workspace {
	return &Workspace{Dir: filepath.Join(root, DirName)}
}

// Exists reports whether the workspace directory is present.
func (w *Workspace) Exists() bool {
	info, err := os.Stat(w.Dir)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// Create makes the workspace directory. Callers check Exists first.
func (w *Workspace) Create() error {
	if w.Exists() {
		return fmt.Errorf("%s: %w", w.Dir, ErrAlreadyExists)
	}
	if err := os.Mkdir(w.Dir, 0755); err != nil { //nolint:gosec // workspace dir is read by the deploy tool
		return fmt.Errorf("creating %s: %w: %w", w.Dir, ErrWriteFailed, err)
	}
	return nil
}

// IdentityPath returns the path of the program keypair file.
func (w *Workspace) IdentityPath() string {
	return filepath.Join(w.Dir, IdentityFile)
}

// ArtifactPath returns the path of the program artifact file.
func (w *Workspace) ArtifactPath() string {
	return filepath.Join(w.Dir, ArtifactFile)
}

// WriteArtifact stores the artifact bytes. The file is never rewritten once present.
func (w *Workspace) WriteArtifact(data []byte) error {
	path := w.ArtifactPath()
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644) //nolint:gosec // artifact needs to be readable
	if err != nil {
		return fmt.Errorf("writing %s: %w: %w", path, ErrWriteFailed, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w: %w", path, ErrWriteFailed, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w: %w", path, ErrWriteFailed, err)
	}
	return nil
}

// State inspects the directory and both owned files.
func (w *Workspace) State() State {
	if !w.Exists() {
		return StateUninitialized
	}
	if !isFile(w.IdentityPath()) || !isFile(w.ArtifactPath()) {
		return StateIncomplete
	}
	return StateInitialized
}

// ArtifactSize returns the size of the artifact file, or -1 if it is missing.
func (w *Workspace) ArtifactSize() int64 {
	info, err := os.Stat(w.ArtifactPath())
	if err != nil || info.IsDir() {
		return -1
	}
	return info.Size()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
