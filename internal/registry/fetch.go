package registry

import "fmt"

// Source is the subset of the registry the fetcher needs.
type Source interface {
	LatestBuilds(programID string) ([]Build, error)
	BuildArtifacts(buildID uint64) (*Artifacts, error)
	Download(url string) ([]byte, error)
}

// Fetcher resolves and downloads the newest artifact of a program.
type Fetcher struct {
	Source Source
}

// FetchLatest returns the artifact bytes of the newest build of programID.
// The registry lists builds newest first.
func (f *Fetcher) FetchLatest(programID string) ([]byte, error) {
	builds, err := f.Source.LatestBuilds(programID)
	if err != nil {
		return nil, err
	}
	if len(builds) == 0 {
		return nil, fmt.Errorf("program %s: %w", programID, ErrNoBuildFound)
	}

	artifacts, err := f.Source.BuildArtifacts(builds[0].ID)
	if err != nil {
		return nil, err
	}

	return f.Source.Download(artifacts.Binary)
}
