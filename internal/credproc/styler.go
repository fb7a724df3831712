package credproc

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Styler renders human-facing lines, with ANSI color only when the
// target stream is a terminal. It is computed once at startup and
// passed in explicitly; there is no mutable formatting state.
type Styler struct {
	color bool
}

// NewStyler creates a styler. Pass the result of DetectTTY (or false
// in tests and when --no-color is set).
func NewStyler(color bool) Styler {
	return Styler{color: color}
}

// DetectTTY reports whether stderr is an interactive terminal.
func DetectTTY() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Error renders a failure line.
func (s Styler) Error(msg string) string {
	if s.color {
		return "\033[31m✗\033[0m " + msg
	}
	return "✗ " + msg
}

// Success renders a confirmation line.
func (s Styler) Success(msg string) string {
	if s.color {
		return "\033[32m✓\033[0m " + msg
	}
	return "✓ " + msg
}
