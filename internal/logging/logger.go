// Package logging provides terminal logging with credential redaction.
// All output goes to stderr; stdout is reserved for the wire contract.
package logging

import (
	"fmt"
	"os"
)

// Logger provides leveled logging with redaction support. Every line
// passes through the redactor before being written, so debug output
// can never leak a credential-shaped value into a transcript.
type Logger struct {
	debug    bool
	noColor  bool
	redactor *Redactor
}

// New creates a new logger instance.
func New(debug, noColor bool) *Logger {
	return &Logger{
		debug:    debug,
		noColor:  noColor,
		redactor: NewRedactor(),
	}
}

// RedactLiteral registers an exact string (for example the secret
// lookup path) that must never appear in log output.
func (l *Logger) RedactLiteral(s string) {
	l.redactor.AddLiteral(s)
}

// DebugEnabled reports whether debug logging is enabled.
func (l *Logger) DebugEnabled() bool {
	return l.debug
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	msg := l.redactor.Redact(fmt.Sprintf(format, args...))
	if !l.noColor {
		fmt.Fprintf(os.Stderr, "\033[32m✓\033[0m %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "✓ %s\n", msg)
	}
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	msg := l.redactor.Redact(fmt.Sprintf(format, args...))
	if !l.noColor {
		fmt.Fprintf(os.Stderr, "\033[33m⚠\033[0m %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "⚠ %s\n", msg)
	}
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	msg := l.redactor.Redact(fmt.Sprintf(format, args...))
	if !l.noColor {
		fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "✗ %s\n", msg)
	}
}

// Debug logs a debug message if debug mode is enabled.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	msg := l.redactor.Redact(fmt.Sprintf(format, args...))
	if !l.noColor {
		fmt.Fprintf(os.Stderr, "\033[36m[DEBUG]\033[0m %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "[DEBUG] %s\n", msg)
	}
}

// Secret represents a value that should be redacted in logs.
type Secret string

// String implements the Stringer interface, always returning a redacted value.
func (s Secret) String() string {
	return "[REDACTED]"
}

// GoString implements the GoStringer interface for %#v formatting.
func (s Secret) GoString() string {
	return "[REDACTED]"
}

// MaskValue masks a credential value for safe display, keeping just
// enough of the ends to recognize which value it was.
func MaskValue(value string) string {
	if len(value) <= 8 {
		return "***"
	}
	return value[:3] + "***" + value[len(value)-3:]
}
