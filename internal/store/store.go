// Package store abstracts the encrypted secret store holding AWS
// credential entries. The resolver depends only on the Store
// interface; concrete backends wrap the pass CLI or the OS keyring.
package store

import (
	"context"
	"errors"
)

// ErrSecretNotFound reports that a logical path has no entry in the
// store. Callers decide whether absence is fatal.
var ErrSecretNotFound = errors.New("secret not found in store")

// Store is the narrow contract over a secret backend. Implementations
// must never log, print, or persist fetched values.
type Store interface {
	// Fetch returns the decrypted value at a logical path. Absence is
	// reported via ErrSecretNotFound.
	Fetch(ctx context.Context, path string) (string, error)

	// Exists reports whether an entry is present at the path without
	// decrypting it.
	Exists(ctx context.Context, path string) bool
}

// ProfileLister is implemented by backends that can enumerate the
// profiles stored under a prefix. Names only, never values.
type ProfileLister interface {
	ListProfiles() ([]string, error)
}

// HealthChecker is implemented by backends that can verify their own
// setup, for the doctor command.
type HealthChecker interface {
	// CheckDependencies verifies required external tools are installed.
	CheckDependencies() error
	// CheckInitialized verifies the store has been set up.
	CheckInitialized() error
}
