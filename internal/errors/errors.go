// Package errors defines the typed failures the helper reports on its
// wire contract. Every failure is classified exactly once, at its
// origin, and carried as a value up to the entry point.
package errors

import (
	"errors"
	"strings"
)

// Code is the machine-readable failure classification emitted in the
// JSON error response. The string values are part of the wire contract
// and must not change.
type Code string

const (
	CodeInvalidProfile     Code = "InvalidProfileError"
	CodeDependency         Code = "DependencyError"
	CodeNotInitialized     Code = "NotInitializedError"
	CodeGPGAuth            Code = "GPGAuthError"
	CodeGPGAgent           Code = "GPGAgentError"
	CodeCredentialNotFound Code = "CredentialNotFoundError"
	CodeExpiredCredentials Code = "ExpiredCredentialsError"
	CodeRetrieval          Code = "RetrievalError"
	CodeEmptyCredential    Code = "EmptyCredentialError"
	CodeCredentialProcess  Code = "CredentialProcessError"
)

// CredentialError represents a classified failure with helpful context
// for the human reading stderr. Message alone goes into the JSON
// response; Suggestion and Details only appear in terminal output.
type CredentialError struct {
	Code       Code
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e CredentialError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e CredentialError) Unwrap() error {
	return e.Err
}

// New creates a classified error with a message.
func New(code Code, message string) CredentialError {
	return CredentialError{Code: code, Message: message}
}

// ClassifyCode extracts the wire code from an error. Errors that were
// never classified fall back to the generic CredentialProcessError.
func ClassifyCode(err error) Code {
	var ce CredentialError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return CodeCredentialProcess
}

// WireMessage extracts the message destined for the JSON response:
// the bare Message of a classified error, without the suggestion and
// details meant for terminal output.
func WireMessage(err error) string {
	var ce CredentialError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return err.Error()
}
