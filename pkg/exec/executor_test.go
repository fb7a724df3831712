package exec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealCommandExecutor_Execute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		command     string
		args        []string
		wantSuccess bool
		wantOutput  string
	}{
		{
			name:        "echo command",
			command:     "echo",
			args:        []string{"hello"},
			wantSuccess: true,
			wantOutput:  "hello\n",
		},
		{
			name:        "command with multiple args",
			command:     "echo",
			args:        []string{"hello", "world"},
			wantSuccess: true,
			wantOutput:  "hello world\n",
		},
		{
			name:        "invalid command",
			command:     "nonexistent_command_xyz123",
			args:        []string{},
			wantSuccess: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			executor := &RealCommandExecutor{}
			ctx := context.Background()

			stdout, stderr, err := executor.Execute(ctx, tt.command, tt.args...)

			if tt.wantSuccess {
				require.NoError(t, err)
				assert.Equal(t, tt.wantOutput, string(stdout))
				assert.Empty(t, stderr)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRealCommandExecutor_ExecuteEnv(t *testing.T) {
	t.Parallel()

	executor := &RealCommandExecutor{}
	stdout, _, err := executor.ExecuteEnv(context.Background(),
		[]string{"AWSPASS_TEST_VAR=marker-value"},
		"sh", "-c", "echo $AWSPASS_TEST_VAR")

	require.NoError(t, err)
	assert.Equal(t, "marker-value\n", string(stdout))
}

func TestRealCommandExecutor_LookPath(t *testing.T) {
	t.Parallel()

	executor := &RealCommandExecutor{}

	path, err := executor.LookPath("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = executor.LookPath("nonexistent_command_xyz123")
	assert.Error(t, err)
}

func TestRealCommandExecutor_ContextCancellation(t *testing.T) {
	t.Parallel()

	executor := &RealCommandExecutor{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := executor.Execute(ctx, "sleep", "10")
	assert.Error(t, err)
}

func TestCommandExecutorInterface(t *testing.T) {
	t.Parallel()

	var _ CommandExecutor = &RealCommandExecutor{}
	var _ CommandExecutor = (*RealCommandExecutor)(nil)

	executor := DefaultExecutor()
	require.NotNil(t, executor)
	_, ok := executor.(*RealCommandExecutor)
	assert.True(t, ok, "DefaultExecutor should return a *RealCommandExecutor")
}
