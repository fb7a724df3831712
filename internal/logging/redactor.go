package logging

import (
	"regexp"
	"strings"
	"sync"
)

const placeholder = "[REDACTED]"

// Patterns that look like credentials regardless of where they came
// from. Intentionally broad.
var (
	// IAM-style (AKIA) and STS-style (ASIA) access key identifiers.
	accessKeyPattern = regexp.MustCompile(`\b(?:AKIA|ASIA)[A-Z0-9]{16}\b`)

	// Long base64-ish runs, the shape of secret keys and session tokens.
	base64RunPattern = regexp.MustCompile(`[A-Za-z0-9+/=]{30,}`)
)

// Redactor rewrites credential-shaped substrings before a message
// reaches a terminal or transcript. Literals are exact strings the
// caller knows are sensitive, such as the secret lookup path.
type Redactor struct {
	mu       sync.RWMutex
	literals []string
}

// NewRedactor creates a redactor with the built-in patterns and any
// initial literal strings.
func NewRedactor(literals ...string) *Redactor {
	r := &Redactor{}
	for _, lit := range literals {
		r.AddLiteral(lit)
	}
	return r
}

// AddLiteral registers an exact string to redact.
func (r *Redactor) AddLiteral(s string) {
	if s == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.literals = append(r.literals, s)
}

// Redact returns the message with every credential-shaped substring
// replaced by a fixed placeholder.
func (r *Redactor) Redact(msg string) string {
	r.mu.RLock()
	for _, lit := range r.literals {
		msg = strings.ReplaceAll(msg, lit, placeholder)
	}
	r.mu.RUnlock()

	msg = accessKeyPattern.ReplaceAllString(msg, placeholder)
	msg = base64RunPattern.ReplaceAllString(msg, placeholder)
	return msg
}
