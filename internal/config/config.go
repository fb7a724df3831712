// Package config loads helper configuration from an optional YAML file
// with environment variable overrides. A missing file is not an error;
// every field has a working default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	awserrors "github.com/systmms/awspass/internal/errors"
)

// Config is the full helper configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Profile ProfileConfig `yaml:"profile"`
	Retry   RetryConfig   `yaml:"retry"`
	Agent   AgentConfig   `yaml:"agent"`
	AWS     AWSConfig     `yaml:"aws"`
}

// StoreConfig selects and tunes the secret store backend.
type StoreConfig struct {
	// Backend is "pass" (default) or "keyring".
	Backend string `yaml:"backend"`
	// Prefix is the logical path prefix under which profiles live,
	// e.g. "aws" yields entries like aws/dev/access-key-id.
	Prefix string `yaml:"prefix"`
	// Dir overrides the pass password store directory. Empty means
	// PASSWORD_STORE_DIR or ~/.password-store.
	Dir string `yaml:"dir"`
	// KeyringService is the service name for the keyring backend.
	KeyringService string `yaml:"keyring_service"`
}

// ProfileConfig controls profile selection.
type ProfileConfig struct {
	// Default is the profile used when no positional argument is given.
	// It is validated exactly like an explicit argument.
	Default string `yaml:"default"`
}

// RetryConfig tunes the bounded-retry fetch of required entries.
type RetryConfig struct {
	Attempts int `yaml:"attempts"`
	DelayMs  int `yaml:"delay_ms"`
}

// AgentConfig tunes gpg-agent readiness polling.
type AgentConfig struct {
	Attempts int `yaml:"attempts"`
	DelayMs  int `yaml:"delay_ms"`
}

// AWSConfig holds settings for the optional STS verification check.
type AWSConfig struct {
	Region string `yaml:"region"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend:        "pass",
			Prefix:         "aws",
			KeyringService: "awspass",
		},
		Profile: ProfileConfig{Default: "default"},
		Retry:   RetryConfig{Attempts: 3, DelayMs: 1000},
		Agent:   AgentConfig{Attempts: 5, DelayMs: 500},
		AWS:     AWSConfig{Region: "us-east-1"},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "awspass", "config.yaml")
}

// Load reads configuration from path, falling back to DefaultPath when
// path is empty. A missing file yields the defaults. Environment
// overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, awserrors.CredentialError{
					Code:       awserrors.CodeCredentialProcess,
					Message:    fmt.Sprintf("invalid config file %s", path),
					Suggestion: "check the YAML for indentation errors and missing quotes",
					Err:        err,
				}
			}
		case os.IsNotExist(err):
			// Defaults apply.
		default:
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	fillDefaults(&cfg)
	return cfg, nil
}

// applyEnv layers environment overrides on top of the file values.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PASSWORD_STORE_DIR"); v != "" && cfg.Store.Dir == "" {
		cfg.Store.Dir = v
	}
	if v := os.Getenv("AWSPASS_PREFIX"); v != "" {
		cfg.Store.Prefix = v
	}
	if v := os.Getenv("AWSPASS_PROFILE"); v != "" {
		cfg.Profile.Default = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.AWS.Region = v
	}
}

// fillDefaults repairs zero values left by a sparse config file.
func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = def.Store.Backend
	}
	if cfg.Store.Prefix == "" {
		cfg.Store.Prefix = def.Store.Prefix
	}
	if cfg.Store.KeyringService == "" {
		cfg.Store.KeyringService = def.Store.KeyringService
	}
	if cfg.Profile.Default == "" {
		cfg.Profile.Default = def.Profile.Default
	}
	if cfg.Retry.Attempts <= 0 {
		cfg.Retry.Attempts = def.Retry.Attempts
	}
	if cfg.Retry.DelayMs < 0 {
		cfg.Retry.DelayMs = def.Retry.DelayMs
	}
	if cfg.Agent.Attempts <= 0 {
		cfg.Agent.Attempts = def.Agent.Attempts
	}
	if cfg.Agent.DelayMs < 0 {
		cfg.Agent.DelayMs = def.Agent.DelayMs
	}
	if cfg.AWS.Region == "" {
		cfg.AWS.Region = def.AWS.Region
	}
}

// RetryDelay returns the fetch retry delay as a duration.
func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.Retry.DelayMs) * time.Millisecond
}

// AgentDelay returns the agent poll delay as a duration.
func (c Config) AgentDelay() time.Duration {
	return time.Duration(c.Agent.DelayMs) * time.Millisecond
}

// DebugEnabled reports whether the debug environment toggle is set to
// a truthy value.
func DebugEnabled() bool {
	switch os.Getenv("AWSPASS_DEBUG") {
	case "1", "true", "TRUE", "yes", "on":
		return true
	}
	return false
}
