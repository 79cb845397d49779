// Package cluster maps cluster names to RPC endpoints.
package cluster

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownCluster = errors.New("unknown cluster")

const (
	LocalnetURL = "http://127.0.0.1:8899"
	DevnetURL   = "https://api.devnet.solana.com"
	TestnetURL  = "https://api.testnet.solana.com"
	MainnetURL  = "https://api.mainnet-beta.solana.com"
)

var builtin = map[string]string{
	"localnet":     LocalnetURL,
	"localhost":    LocalnetURL,
	"l":            LocalnetURL,
	"devnet":       DevnetURL,
	"d":            DevnetURL,
	"testnet":      TestnetURL,
	"t":            TestnetURL,
	"mainnet":      MainnetURL,
	"mainnet-beta": MainnetURL,
	"m":            MainnetURL,
}

// Resolver resolves cluster tokens. Extra aliases take precedence over the
// built-in ones.
type Resolver struct {
	Extra map[string]string
}

// Resolve returns the endpoint for token. Known aliases map to their
// endpoint, anything containing a URL scheme is returned unchanged.
func (r *Resolver) Resolve(token string) (string, error) {
	if url, ok := r.Extra[token]; ok {
		return url, nil
	}
	if url, ok := builtin[token]; ok {
		return url, nil
	}
	if strings.Contains(token, "://") {
		return token, nil
	}
	return "", fmt.Errorf("%w %q (expected one of %s, or a URL)", ErrUnknownCluster, token, strings.Join(r.Names(), ", "))
}

// IsMainnet reports whether url is the mainnet endpoint.
func IsMainnet(url string) bool {
	return strings.TrimSuffix(url, "/") == MainnetURL
}

// Names lists the known aliases in sorted order.
func (r *Resolver) Names() []string {
	names := make([]string, 0, len(builtin)+len(r.Extra))
	for name := range builtin {
		if _, ok := r.Extra[name]; !ok {
			names = append(names, name)
		}
	}
	for name := range r.Extra {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
