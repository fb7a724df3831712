package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/systmms/awspass/internal/logging"
)

func TestDebugSuppressedWhenDisabled(t *testing.T) {
	// Cannot use t.Parallel() because captureStderr() swaps global os.Stderr.

	logger := logging.New(false, true)

	output := captureStderr(func() {
		logger.Debug("should not appear")
	})

	assert.Empty(t, output)
}

func TestLevelsWriteToStderr(t *testing.T) {
	logger := logging.New(false, true)

	output := captureStderr(func() {
		logger.Info("info line")
		logger.Warn("warn line")
		logger.Error("error line")
	})

	assert.Contains(t, output, "✓ info line")
	assert.Contains(t, output, "⚠ warn line")
	assert.Contains(t, output, "✗ error line")
}

func TestColorOutput(t *testing.T) {
	logger := logging.New(false, false)

	output := captureStderr(func() {
		logger.Error("colored")
	})

	assert.Contains(t, output, "\033[31m")
}

func TestDebugEnabled(t *testing.T) {
	t.Parallel()

	assert.True(t, logging.New(true, true).DebugEnabled())
	assert.False(t, logging.New(false, true).DebugEnabled())
}
