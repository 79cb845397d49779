package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrUnavailable     = errors.New("registry unavailable")
	ErrResponseInvalid = errors.New("registry response invalid")
	ErrNoBuildFound    = errors.New("no build found")
)

// Build is one entry of the latest-builds listing.
type Build struct {
	ID uint64 `json:"id"`
}

// Artifacts describes the downloadable outputs of a build.
type Artifacts struct {
	Binary string `json:"binary"`
}

// Client is a JSON-over-HTTP registry client.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a client for the registry at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    &http.Client{},
	}
}

// LatestBuilds lists builds of a program, newest first.
func (c *Client) LatestBuilds(programID string) ([]Build, error) {
	var builds []Build
	if err := c.getJSON(fmt.Sprintf("%s/program/%s/latest", c.BaseURL, programID), &builds); err != nil {
		return nil, err
	}
	return builds, nil
}

// BuildArtifacts returns the artifact locations of a build.
func (c *Client) BuildArtifacts(buildID uint64) (*Artifacts, error) {
	var a Artifacts
	if err := c.getJSON(fmt.Sprintf("%s/build/%d/artifacts", c.BaseURL, buildID), &a); err != nil {
		return nil, err
	}
	if a.Binary == "" {
		return nil, fmt.Errorf("build %d: %w: missing binary location", buildID, ErrResponseInvalid)
	}
	return &a, nil
}

// Download fetches raw bytes from an artifact location.
func (c *Client) Download(url string) ([]byte, error) {
	body, err := c.get(url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w: %w", url, ErrUnavailable, err)
	}
	return data, nil
}

func (c *Client) getJSON(url string, v any) error {
	body, err := c.get(url)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w: %w", url, ErrResponseInvalid, err)
	}
	return nil
}

func (c *Client) get(url string) (io.ReadCloser, error) {
	resp, err := c.HTTP.Get(url) //nolint:gosec // registry URL comes from config
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w: %w", url, ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %w: %s", url, ErrUnavailable, resp.Status)
	}
	return resp.Body, nil
}
