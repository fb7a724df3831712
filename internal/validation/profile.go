// Package validation checks caller-supplied input before it is used to
// build secret lookup paths or passed to subprocess arguments.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	awserrors "github.com/systmms/awspass/internal/errors"
)

// profilePattern is the full syntax of a valid profile name. The
// validated value later becomes a path segment handed to the secret
// store and an argument to the pass CLI, so nothing outside this
// alphabet is ever acceptable.
var profilePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Profile validates a raw profile name. It returns the identical
// string on success. All failures are classified InvalidProfileError
// on the wire; the messages distinguish why for diagnosis.
func Profile(raw string) (string, error) {
	if raw == "" {
		return "", awserrors.CredentialError{
			Code:       awserrors.CodeInvalidProfile,
			Message:    "profile name is empty",
			Suggestion: "pass a profile name, e.g. 'awspass dev'",
		}
	}

	// Traversal patterns are checked before the general syntax so the
	// diagnostic names the actual problem with hostile input.
	if strings.Contains(raw, "..") ||
		strings.HasPrefix(raw, ".") ||
		strings.HasPrefix(raw, "/") ||
		strings.HasSuffix(raw, "/") {
		return "", awserrors.CredentialError{
			Code:    awserrors.CodeInvalidProfile,
			Message: fmt.Sprintf("profile name %q contains a path traversal pattern", raw),
		}
	}

	if !profilePattern.MatchString(raw) {
		return "", awserrors.CredentialError{
			Code:    awserrors.CodeInvalidProfile,
			Message: fmt.Sprintf("profile name %q is invalid: must be 1-64 characters from [A-Za-z0-9_-]", raw),
		}
	}

	return raw, nil
}
