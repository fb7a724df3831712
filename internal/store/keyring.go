package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/systmms/awspass/internal/logging"
)

// KeyringStore keeps credential entries in the operating system
// keyring (Secret Service on Linux, Keychain on macOS). Logical paths
// map directly to keyring user names under a fixed service.
type KeyringStore struct {
	service string
	logger  *logging.Logger
}

// NewKeyringStore creates a keyring-backed store.
func NewKeyringStore(service string, logger *logging.Logger) *KeyringStore {
	return &KeyringStore{service: service, logger: logger}
}

// Fetch retrieves the value stored for a logical path.
func (s *KeyringStore) Fetch(ctx context.Context, path string) (string, error) {
	s.logger.Debug("fetching %s from keyring", logging.Secret(path))

	value, err := keyring.Get(s.service, path)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrSecretNotFound, path)
		}
		return "", fmt.Errorf("keyring get failed: %w", err)
	}
	return value, nil
}

// Exists reports whether the keyring holds an entry for the path.
func (s *KeyringStore) Exists(ctx context.Context, path string) bool {
	_, err := keyring.Get(s.service, path)
	return err == nil
}

// Set writes an entry; used by setup tooling and tests.
func (s *KeyringStore) Set(path, value string) error {
	if err := keyring.Set(s.service, path, value); err != nil {
		return fmt.Errorf("keyring set failed: %w", err)
	}
	return nil
}

// Delete removes an entry.
func (s *KeyringStore) Delete(path string) error {
	if err := keyring.Delete(s.service, path); err != nil {
		return fmt.Errorf("keyring delete failed: %w", err)
	}
	return nil
}
