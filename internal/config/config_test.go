package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/awspass/internal/config"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("PASSWORD_STORE_DIR", "")
	t.Setenv("AWSPASS_PREFIX", "")
	t.Setenv("AWSPASS_PROFILE", "")
	t.Setenv("AWS_REGION", "")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "pass", cfg.Store.Backend)
	assert.Equal(t, "aws", cfg.Store.Prefix)
	assert.Equal(t, "default", cfg.Profile.Default)
	assert.Equal(t, 3, cfg.Retry.Attempts)
	assert.Equal(t, time.Second, cfg.RetryDelay())
	assert.Equal(t, 5, cfg.Agent.Attempts)
	assert.Equal(t, 500*time.Millisecond, cfg.AgentDelay())
}

func TestLoad_SparseFileKeepsDefaults(t *testing.T) {
	t.Setenv("PASSWORD_STORE_DIR", "")
	t.Setenv("AWSPASS_PREFIX", "")
	t.Setenv("AWSPASS_PROFILE", "")
	t.Setenv("AWS_REGION", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  prefix: cloud\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "cloud", cfg.Store.Prefix)
	assert.Equal(t, "pass", cfg.Store.Backend, "unset fields keep defaults")
	assert.Equal(t, 3, cfg.Retry.Attempts)
}

func TestLoad_FullFile(t *testing.T) {
	t.Setenv("PASSWORD_STORE_DIR", "")
	t.Setenv("AWSPASS_PREFIX", "")
	t.Setenv("AWSPASS_PROFILE", "")
	t.Setenv("AWS_REGION", "")

	content := `
store:
  backend: keyring
  prefix: aws
  keyring_service: myservice
profile:
  default: work
retry:
  attempts: 5
  delay_ms: 10
agent:
  attempts: 2
  delay_ms: 0
aws:
  region: eu-central-1
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "keyring", cfg.Store.Backend)
	assert.Equal(t, "myservice", cfg.Store.KeyringService)
	assert.Equal(t, "work", cfg.Profile.Default)
	assert.Equal(t, 5, cfg.Retry.Attempts)
	assert.Equal(t, 10*time.Millisecond, cfg.RetryDelay())
	assert.Equal(t, 2, cfg.Agent.Attempts)
	assert.Equal(t, time.Duration(0), cfg.AgentDelay())
	assert.Equal(t, "eu-central-1", cfg.AWS.Region)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [unclosed"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config file")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PASSWORD_STORE_DIR", "/tmp/store")
	t.Setenv("AWSPASS_PREFIX", "corp")
	t.Setenv("AWSPASS_PROFILE", "prod")
	t.Setenv("AWS_REGION", "us-west-2")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/store", cfg.Store.Dir)
	assert.Equal(t, "corp", cfg.Store.Prefix)
	assert.Equal(t, "prod", cfg.Profile.Default)
	assert.Equal(t, "us-west-2", cfg.AWS.Region)
}

func TestDebugEnabled(t *testing.T) {
	for _, v := range []string{"1", "true", "yes", "on"} {
		t.Setenv("AWSPASS_DEBUG", v)
		assert.True(t, config.DebugEnabled(), v)
	}
	for _, v := range []string{"", "0", "false", "off"} {
		t.Setenv("AWSPASS_DEBUG", v)
		assert.False(t, config.DebugEnabled(), v)
	}
}
