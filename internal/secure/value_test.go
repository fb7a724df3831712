package secure_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/awspass/internal/secure"
)

func TestValueRoundTrip(t *testing.T) {
	t.Parallel()

	v := secure.NewValue("wJalrXUtnFEMI/K7MDENG/bPxRfiCYEXAMPLEKEY")

	got, err := v.Reveal()
	require.NoError(t, err)
	assert.Equal(t, "wJalrXUtnFEMI/K7MDENG/bPxRfiCYEXAMPLEKEY", got)

	// A second reveal works; the enclave is not consumed.
	got, err = v.Reveal()
	require.NoError(t, err)
	assert.Equal(t, "wJalrXUtnFEMI/K7MDENG/bPxRfiCYEXAMPLEKEY", got)
}

func TestValueDestroy(t *testing.T) {
	t.Parallel()

	v := secure.NewValue("session-token")
	v.Destroy()
	v.Destroy() // idempotent

	_, err := v.Reveal()
	assert.Error(t, err)
}

func TestValueNeverFormatsPlaintext(t *testing.T) {
	t.Parallel()

	v := secure.NewValue("topsecret")
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", v))
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%s", v))
	assert.NotContains(t, fmt.Sprintf("%+v", v), "topsecret")
}
