package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	awserrors "github.com/systmms/awspass/internal/errors"
	"github.com/systmms/awspass/internal/validation"
)

func TestProfile_Accepts(t *testing.T) {
	t.Parallel()

	for _, name := range []string{
		"dev",
		"staging-2024",
		"test_env",
		"default",
		"A",
		strings.Repeat("a", 64),
	} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := validation.Profile(name)
			require.NoError(t, err)
			assert.Equal(t, name, got, "validated profile must be the identical string")
		})
	}
}

func TestProfile_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		msgContains string
	}{
		{name: "empty", input: "", msgContains: "empty"},
		{name: "parent traversal", input: "../etc/passwd", msgContains: "traversal"},
		{name: "embedded slash", input: "a/b", msgContains: "invalid"},
		{name: "leading dot", input: ".hidden", msgContains: "traversal"},
		{name: "leading slash", input: "/abs", msgContains: "traversal"},
		{name: "trailing slash", input: "dev/", msgContains: "traversal"},
		{name: "too long", input: strings.Repeat("x", 65), msgContains: "invalid"},
		{name: "shell metacharacters", input: "dev;rm -rf /", msgContains: "traversal"},
		{name: "spaces", input: "my profile", msgContains: "invalid"},
		{name: "dollar expansion", input: "$HOME", msgContains: "invalid"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := validation.Profile(tt.input)
			require.Error(t, err)
			assert.Equal(t, awserrors.CodeInvalidProfile, awserrors.ClassifyCode(err))
			assert.Contains(t, err.Error(), tt.msgContains)
		})
	}
}

func TestProfile_TotalOverArbitraryInput(t *testing.T) {
	t.Parallel()

	// Every string up to 200 bytes must produce a clean Ok or error,
	// never a panic. Exercise a spread of byte values and lengths.
	for length := 0; length <= 200; length += 7 {
		for _, b := range []byte{0x00, '.', '/', 'a', 'Z', '9', '-', '_', ';', 0xFF} {
			b := b
			input := strings.Repeat(string([]byte{b}), length)
			got, err := validation.Profile(input)
			if err == nil {
				assert.Equal(t, input, got)
			} else {
				assert.Equal(t, awserrors.CodeInvalidProfile, awserrors.ClassifyCode(err))
			}
		}
	}
}
