package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Registry is an in-process build registry serving one program.
type Registry struct {
	URL       string
	ProgramID string
	Builds    []uint64
	Artifact  []byte

	// LatestBody, when set, is served verbatim for the latest-builds listing.
	LatestBody string

	mu   sync.Mutex
	hits []string
}

// NewRegistry starts a registry that lists builds newest first and serves
// artifact for every build. The server is closed when the test ends.
func NewRegistry(t *testing.T, programID string, builds []uint64, artifact []byte) *Registry {
	t.Helper()
	r := &Registry{ProgramID: programID, Builds: builds, Artifact: artifact}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /program/{id}/latest", r.latest)
	mux.HandleFunc("GET /build/{id}/artifacts", r.artifacts)
	mux.HandleFunc("GET /download/{id}", r.download)

	srv := httptest.NewServer(r.record(mux))
	t.Cleanup(srv.Close)
	r.URL = srv.URL
	return r
}

// Hits returns the request paths served so far.
func (r *Registry) Hits() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.hits...)
}

func (r *Registry) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.mu.Lock()
		r.hits = append(r.hits, req.URL.Path)
		r.mu.Unlock()
		next.ServeHTTP(w, req)
	})
}

func (r *Registry) latest(w http.ResponseWriter, req *http.Request) {
	if req.PathValue("id") != r.ProgramID {
		http.NotFound(w, req)
		return
	}
	if r.LatestBody != "" {
		_, _ = w.Write([]byte(r.LatestBody))
		return
	}
	type build struct {
		ID uint64 `json:"id"`
	}
	out := make([]build, 0, len(r.Builds))
	for _, id := range r.Builds {
		out = append(out, build{ID: id})
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (r *Registry) artifacts(w http.ResponseWriter, req *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]string{
		"binary": fmt.Sprintf("%s/download/%s", r.URL, req.PathValue("id")),
	})
}

func (r *Registry) download(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write(r.Artifact)
}
