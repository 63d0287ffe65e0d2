// Package credential remembers the session token in the OS keyring so a
// restart does not require signing in again.
package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const (
	serviceName = "checkit"
	sessionKey  = "session_token"
)

// ErrNoToken is returned by LoadToken when nothing is remembered.
var ErrNoToken = errors.New("no remembered session")

// Vault stores the remembered session token.
type Vault struct {
	ring keyring.Keyring
}

// NewVault wraps an already opened keyring.
func NewVault(ring keyring.Keyring) *Vault {
	return &Vault{ring: ring}
}

// Open returns a Vault backed by the platform keyring, falling back to an
// encrypted file under dir.
func Open(dir string) (*Vault, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  dir,
		FilePasswordFunc:         keyring.FixedStringPrompt("checkit-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return NewVault(ring), nil
}

// LoadToken returns the remembered session token.
func (v *Vault) LoadToken() (string, error) {
	item, err := v.ring.Get(sessionKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("getting credential %q: %w", sessionKey, err)
	}
	if len(item.Data) == 0 {
		return "", ErrNoToken
	}
	return string(item.Data), nil
}

// SaveToken remembers token, replacing any previous one.
func (v *Vault) SaveToken(token string) error {
	err := v.ring.Set(keyring.Item{
		Key:   sessionKey,
		Data:  []byte(token),
		Label: "checkit session",
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", sessionKey, err)
	}
	return nil
}

// ClearToken forgets the remembered token. Clearing an empty vault is not
// an error.
func (v *Vault) ClearToken() error {
	if err := v.ring.Remove(sessionKey); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting credential %q: %w", sessionKey, err)
	}
	return nil
}
