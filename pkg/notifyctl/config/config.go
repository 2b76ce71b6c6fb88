// Package config resolves notifyctl's server address and admin key from
// flags, the environment and the OS keyring.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	DefaultServer = "http://localhost:5000"

	ServerEnv = "BACKEND_URL"
	APIKeyEnv = "ADMIN_API_KEY"

	KeyringService = "notifyctl"
	keyringUser    = "admin-api-key"
)

// KeyStore persists the admin key between invocations.
type KeyStore interface {
	Get() (string, error)
	Set(key string) error
	Clear() error
}

// KeyringStore keeps the key in the OS keyring (Keychain, Secret Service,
// Windows Credential Manager).
type KeyringStore struct {
	Service string
	User    string
}

var _ KeyStore = KeyringStore{}

func DefaultKeyStore() KeyringStore {
	return KeyringStore{Service: KeyringService, User: keyringUser}
}

// Get returns "" without error when no key is stored.
func (s KeyringStore) Get() (string, error) {
	key, err := keyring.Get(s.Service, s.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading admin key from keyring: %w", err)
	}
	return key, nil
}

func (s KeyringStore) Set(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("admin key must not be empty")
	}
	if err := keyring.Set(s.Service, s.User, key); err != nil {
		return fmt.Errorf("storing admin key in keyring: %w", err)
	}
	return nil
}

// Clear is a no-op when no key is stored.
func (s KeyringStore) Clear() error {
	err := keyring.Delete(s.Service, s.User)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("removing admin key from keyring: %w", err)
	}
	return nil
}

// ResolveServer picks the flag value, then BACKEND_URL, then DefaultServer.
func ResolveServer(flag string, getenv func(string) string) string {
	if flag != "" {
		return flag
	}
	if v := strings.TrimSpace(getenv(ServerEnv)); v != "" {
		return v
	}
	return DefaultServer
}

// ResolveAPIKey picks the flag value, then ADMIN_API_KEY, then the key store.
// It returns "" when none of them has a key.
func ResolveAPIKey(flag string, getenv func(string) string, store KeyStore) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if v := strings.TrimSpace(getenv(APIKeyEnv)); v != "" {
		return v, nil
	}
	if store == nil {
		return "", nil
	}
	return store.Get()
}
