// Package secure provides memory-safe storage for credential values
// between retrieval and output. Values are held in memguard enclaves,
// encrypted at rest in memory and mlocked against swapping.
package secure

import (
	"fmt"
	"sync"

	"github.com/awnumar/memguard"
)

// Value holds one sensitive string in a protected memory region. The
// plaintext only exists while Reveal copies it out for the caller.
//
// For complete cleanup of all memguard data at process exit, call
// memguard.Purge() in a defer statement in main().
type Value struct {
	enclave *memguard.Enclave
	mu      sync.RWMutex
	// destroyed allows idempotent Destroy() calls and prevents use
	// after destroy
	destroyed bool
}

// NewValue seals a string into a protected enclave.
func NewValue(s string) *Value {
	// memguard.NewEnclave wipes the input slice after sealing; the
	// copy here keeps the caller's string usable.
	return &Value{enclave: memguard.NewEnclave([]byte(s))}
}

// Reveal decrypts the enclave and returns the plaintext. The locked
// buffer backing the decryption is destroyed before returning.
func (v *Value) Reveal() (string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.destroyed {
		return "", fmt.Errorf("secure value already destroyed")
	}

	locked, err := v.enclave.Open()
	if err != nil {
		return "", fmt.Errorf("opening secure enclave: %w", err)
	}
	defer locked.Destroy()

	// string() copies; the locked buffer itself is wiped on Destroy.
	return string(locked.Bytes()), nil
}

// Destroy marks the value as unusable. Idempotent. The encrypted
// enclave data is left for garbage collection; it is safe at rest
// without explicit wiping.
func (v *Value) Destroy() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.destroyed {
		return
	}
	v.enclave = nil
	v.destroyed = true
}

// String implements Stringer so accidental %v formatting of a Value
// can never print the plaintext.
func (v *Value) String() string {
	return "[REDACTED]"
}
