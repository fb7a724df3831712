package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	awserrors "github.com/systmms/awspass/internal/errors"
	"github.com/systmms/awspass/internal/logging"
	pkgexec "github.com/systmms/awspass/pkg/exec"
)

// PassStore wraps the pass (zx2c4) password manager CLI. Values are
// decrypted by `pass show`; existence checks look at the store
// directory directly so a hardware-token touch is only demanded for
// actual decryption.
type PassStore struct {
	dir      string
	prefix   string
	executor pkgexec.CommandExecutor
	logger   *logging.Logger
}

// NewPassStore creates a pass-backed store. dir overrides the password
// store directory; empty means PASSWORD_STORE_DIR or the default
// ~/.password-store.
func NewPassStore(dir, prefix string, executor pkgexec.CommandExecutor, logger *logging.Logger) *PassStore {
	return &PassStore{
		dir:      dir,
		prefix:   prefix,
		executor: executor,
		logger:   logger,
	}
}

// Fetch retrieves the first line of a pass entry, the password proper.
func (s *PassStore) Fetch(ctx context.Context, path string) (string, error) {
	s.logger.Debug("fetching %s from pass", logging.Secret(path))

	stdout, stderr, err := s.execute(ctx, "show", path)
	if err != nil {
		combined := string(stderr) + string(stdout)
		switch {
		case strings.Contains(combined, "not in the password store"):
			return "", fmt.Errorf("%w: %s", ErrSecretNotFound, path)
		case strings.Contains(combined, "password store is empty"),
			strings.Contains(combined, "Try \"pass init\""):
			return "", awserrors.CredentialError{
				Code:       awserrors.CodeNotInitialized,
				Message:    "password store is not initialized",
				Suggestion: "run 'pass init <gpg-key-id>' to set up the store",
				Err:        err,
			}
		}
		return "", fmt.Errorf("pass show failed: %w: %s", err, strings.TrimSpace(string(stderr)))
	}

	// pass keeps the password on the first line; later lines hold
	// free-form metadata that is not part of the value.
	value := strings.TrimSpace(string(stdout))
	if i := strings.IndexByte(value, '\n'); i >= 0 {
		value = value[:i]
	}
	return strings.TrimSpace(value), nil
}

// Exists checks for the entry's .gpg file in the store directory,
// avoiding a decryption round-trip (and the interactive unlock it
// would demand).
func (s *PassStore) Exists(ctx context.Context, path string) bool {
	entry := filepath.Join(s.storeDir(), path+".gpg")
	info, err := os.Stat(entry)
	return err == nil && !info.IsDir()
}

// CheckDependencies verifies the pass and gpg binaries are installed.
func (s *PassStore) CheckDependencies() error {
	for _, bin := range []string{"pass", "gpg"} {
		if _, err := s.executor.LookPath(bin); err != nil {
			return awserrors.CredentialError{
				Code:       awserrors.CodeDependency,
				Message:    fmt.Sprintf("%s not found", bin),
				Suggestion: fmt.Sprintf("install %s and make sure it is on PATH", bin),
				Err:        err,
			}
		}
	}
	return nil
}

// CheckInitialized verifies the password store has been set up.
func (s *PassStore) CheckInitialized() error {
	gpgID := filepath.Join(s.storeDir(), ".gpg-id")
	if _, err := os.Stat(gpgID); err != nil {
		return awserrors.CredentialError{
			Code:       awserrors.CodeNotInitialized,
			Message:    fmt.Sprintf("password store at %s is not initialized", s.storeDir()),
			Suggestion: "run 'pass init <gpg-key-id>' to set up the store",
			Err:        err,
		}
	}
	return nil
}

// ListProfiles enumerates profile names stored under the prefix. A
// directory counts as a profile when it holds an access-key-id entry.
func (s *PassStore) ListProfiles() ([]string, error) {
	root := filepath.Join(s.storeDir(), s.prefix)
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	var profiles []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		marker := filepath.Join(root, entry.Name(), "access-key-id.gpg")
		if _, err := os.Stat(marker); err == nil {
			profiles = append(profiles, entry.Name())
		}
	}
	sort.Strings(profiles)
	return profiles, nil
}

// execute runs pass with the store directory routed through the
// environment, never through shell interpolation.
func (s *PassStore) execute(ctx context.Context, args ...string) ([]byte, []byte, error) {
	if s.dir != "" {
		return s.executor.ExecuteEnv(ctx, []string{"PASSWORD_STORE_DIR=" + s.dir}, "pass", args...)
	}
	return s.executor.Execute(ctx, "pass", args...)
}

// storeDir resolves the effective password store directory.
func (s *PassStore) storeDir() string {
	if s.dir != "" {
		return s.dir
	}
	if env := os.Getenv("PASSWORD_STORE_DIR"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".password-store"
	}
	return filepath.Join(home, ".password-store")
}
