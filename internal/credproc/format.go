// Package credproc implements the AWS credential-process wire
// contract: structured JSON on stdout regardless of outcome, a human
// line on stderr for failures, exit 0 or 1.
package credproc

import (
	"encoding/json"
	"fmt"
	"io"

	awserrors "github.com/systmms/awspass/internal/errors"
	"github.com/systmms/awspass/internal/resolver"
)

// Version is the credential-process contract version literal.
const Version = 1

// Credentials is the success response shape. SessionToken is omitted
// entirely when no token was resolved; the contract forbids null or
// empty placeholders.
type Credentials struct {
	Version         int    `json:"Version"`
	AccessKeyID     string `json:"AccessKeyId"`
	SecretAccessKey string `json:"SecretAccessKey"`
	SessionToken    string `json:"SessionToken,omitempty"`
}

// Failure is the error response shape. Code is one of the classified
// wire codes; Message is the bare human-readable reason.
type Failure struct {
	Version int    `json:"Version"`
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

// Formatter serializes outcomes to the caller's streams. The invoking
// AWS tooling parses stdout; a human watching the terminal reads
// stderr.
type Formatter struct {
	stdout io.Writer
	stderr io.Writer
	styler Styler
}

// NewFormatter creates a formatter writing to the given streams.
func NewFormatter(stdout, stderr io.Writer, styler Styler) *Formatter {
	return &Formatter{stdout: stdout, stderr: stderr, styler: styler}
}

// Success writes the credential JSON to stdout and returns the exit
// code: 0, or 1 via Failure when a sealed value cannot be revealed.
// The values are revealed only here, at the last possible moment
// before output.
func (f *Formatter) Success(set *resolver.CredentialSet) int {
	secretKey, err := set.SecretAccessKey.Reveal()
	if err != nil {
		return f.Failure(fmt.Errorf("unsealing secret access key: %w", err))
	}

	out := Credentials{
		Version:         Version,
		AccessKeyID:     set.AccessKeyID,
		SecretAccessKey: secretKey,
	}
	if set.SessionToken != nil {
		token, err := set.SessionToken.Reveal()
		if err != nil {
			return f.Failure(fmt.Errorf("unsealing session token: %w", err))
		}
		out.SessionToken = token
	}

	data, err := json.Marshal(out)
	if err != nil {
		return f.Failure(fmt.Errorf("encoding credential response: %w", err))
	}
	fmt.Fprintln(f.stdout, string(data))
	return 0
}

// Failure writes the error JSON to stdout, a human-readable line to
// stderr, and returns exit code 1. stdout gets JSON even on failure so
// the invoking tooling can parse a reason.
func (f *Formatter) Failure(err error) int {
	failure := Failure{
		Version: Version,
		Code:    string(awserrors.ClassifyCode(err)),
		Message: awserrors.WireMessage(err),
	}

	data, marshalErr := json.Marshal(failure)
	if marshalErr != nil {
		// Last resort: a hand-built minimal response.
		data = []byte(fmt.Sprintf(`{"Version":%d,"Code":"%s","Message":"failed to encode error response"}`,
			Version, awserrors.CodeCredentialProcess))
	}
	fmt.Fprintln(f.stdout, string(data))

	fmt.Fprintln(f.stderr, f.styler.Error(err.Error()))
	return 1
}
