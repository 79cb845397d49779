// Package identity generates program keypairs and writes them in the
// Solana CLI keypair file format.
package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mr-tron/base58"
)

var ErrWriteFailed = errors.New("write failed")

// Identity is an ed25519 keypair used as a program address.
type Identity struct {
	private ed25519.PrivateKey
}

// Generate creates a fresh keypair from crypto/rand.
func Generate() (*Identity, error) {
	return generate(rand.Reader)
}

func generate(r io.Reader) (*Identity, error) {
	_, private, err := ed25519.GenerateKey(r)
	if err != nil {
		return nil, fmt.Errorf("generating ed25519 keypair: %w", err)
	}
	return &Identity{private: private}, nil
}

// PublicKey returns the raw 32-byte public key.
func (id *Identity) PublicKey() ed25519.PublicKey {
	return id.private.Public().(ed25519.PublicKey)
}

// Address returns the base58 encoded public key, the program's on-chain address.
func (id *Identity) Address() string {
	return base58.Encode(id.PublicKey())
}

// MarshalJSON encodes the 64-byte secret key as a JSON array of numbers,
// which is what `solana program deploy --program-id` reads.
func (id *Identity) MarshalJSON() ([]byte, error) {
	secret := make([]int, len(id.private))
	for i, b := range id.private {
		secret[i] = int(b)
	}
	return json.Marshal(secret)
}

// Persist writes the keypair to path. An existing file is never replaced.
func Persist(id *Identity, path string) error {
	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encoding keypair: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("writing keypair %s: %w: %w", path, ErrWriteFailed, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing keypair %s: %w: %w", path, ErrWriteFailed, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing keypair %s: %w: %w", path, ErrWriteFailed, err)
	}
	return nil
}
