package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	awserrors "github.com/systmms/awspass/internal/errors"
)

func TestCredentialError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  awserrors.CredentialError
		want string
	}{
		{
			name: "message only",
			err:  awserrors.CredentialError{Message: "profile not found"},
			want: "profile not found",
		},
		{
			name: "message with suggestion",
			err: awserrors.CredentialError{
				Message:    "gpg-agent is not responding",
				Suggestion: "run 'gpg-connect-agent /bye' manually",
			},
			want: "gpg-agent is not responding\n  💡 Try: run 'gpg-connect-agent /bye' manually",
		},
		{
			name: "falls back to wrapped error",
			err:  awserrors.CredentialError{Err: fmt.Errorf("exit status 2")},
			want: "exit status 2",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestClassifyCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want awserrors.Code
	}{
		{
			name: "classified error",
			err:  awserrors.New(awserrors.CodeInvalidProfile, "bad profile"),
			want: awserrors.CodeInvalidProfile,
		},
		{
			name: "wrapped classified error",
			err:  fmt.Errorf("resolving: %w", awserrors.New(awserrors.CodeRetrieval, "fetch failed")),
			want: awserrors.CodeRetrieval,
		},
		{
			name: "unclassified error falls back to generic code",
			err:  fmt.Errorf("something unexpected"),
			want: awserrors.CodeCredentialProcess,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, awserrors.ClassifyCode(tt.err))
		})
	}
}

func TestWireMessage(t *testing.T) {
	t.Parallel()

	classified := awserrors.CredentialError{
		Message:    "secret not found",
		Suggestion: "check 'pass ls'",
	}
	assert.Equal(t, "secret not found", awserrors.WireMessage(classified),
		"wire message must not carry terminal-only suggestion text")

	plain := fmt.Errorf("boom")
	assert.Equal(t, "boom", awserrors.WireMessage(plain))
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	inner := fmt.Errorf("exit status 1")
	err := awserrors.CredentialError{Code: awserrors.CodeRetrieval, Message: "fetch failed", Err: inner}
	assert.ErrorIs(t, err, inner)
}
