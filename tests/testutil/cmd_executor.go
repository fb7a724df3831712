// Package testutil provides testing utilities for awspass.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
)

// MockResponse defines the expected output for a mocked command.
type MockResponse struct {
	Stdout []byte
	Stderr []byte
	Err    error
}

// RecordedCall stores information about a command execution.
type RecordedCall struct {
	Command string
	Args    []string
}

// MockCommandExecutor provides a configurable mock for testing
// CLI-wrapping code. It satisfies pkgexec.CommandExecutor.
type MockCommandExecutor struct {
	mu sync.Mutex

	// Responses maps command patterns to their mock responses.
	// Key format: "command arg1 arg2" (space-separated).
	Responses map[string]MockResponse

	// Sequences maps command patterns to ordered responses consumed
	// one per call, for exercising retry loops. Once drained, the
	// last response repeats.
	Sequences map[string][]MockResponse
	consumed  map[string]int

	// MissingBinaries lists names LookPath reports as not installed.
	MissingBinaries []string

	// DefaultResponse is used when no matching pattern is found.
	DefaultResponse *MockResponse

	// RecordedCalls stores all calls made to Execute for verification.
	RecordedCalls []RecordedCall

	// StrictMode causes Execute to fail if no matching response is found.
	StrictMode bool
}

// NewMockCommandExecutor creates a new mock executor with empty responses.
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{
		Responses: make(map[string]MockResponse),
		Sequences: make(map[string][]MockResponse),
		consumed:  make(map[string]int),
	}
}

// AddResponse registers a successful stdout response for a pattern.
func (m *MockCommandExecutor) AddResponse(pattern, stdout string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[pattern] = MockResponse{Stdout: []byte(stdout)}
}

// AddErrorResponse registers a failing response for a pattern.
func (m *MockCommandExecutor) AddErrorResponse(pattern, stderr string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[pattern] = MockResponse{
		Stderr: []byte(stderr),
		Err:    fmt.Errorf("exit status 1"),
	}
}

// AddSequence registers ordered responses consumed one per matching call.
func (m *MockCommandExecutor) AddSequence(pattern string, responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sequences[pattern] = responses
}

// Execute returns the mocked response for the given command.
func (m *MockCommandExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	return m.ExecuteEnv(ctx, nil, name, args...)
}

// ExecuteEnv returns the mocked response, ignoring the extra env.
func (m *MockCommandExecutor) ExecuteEnv(ctx context.Context, env []string, name string, args ...string) ([]byte, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RecordedCalls = append(m.RecordedCalls, RecordedCall{Command: name, Args: args})

	key := m.buildKey(name, args)

	for pattern, seq := range m.Sequences {
		if m.matchesPattern(key, pattern) {
			idx := m.consumed[pattern]
			if idx >= len(seq) {
				idx = len(seq) - 1
			} else {
				m.consumed[pattern]++
			}
			resp := seq[idx]
			return resp.Stdout, resp.Stderr, resp.Err
		}
	}

	if resp, ok := m.Responses[key]; ok {
		return resp.Stdout, resp.Stderr, resp.Err
	}

	for pattern, resp := range m.Responses {
		if m.matchesPattern(key, pattern) {
			return resp.Stdout, resp.Stderr, resp.Err
		}
	}

	if m.DefaultResponse != nil {
		return m.DefaultResponse.Stdout, m.DefaultResponse.Stderr, m.DefaultResponse.Err
	}

	if m.StrictMode {
		return nil, nil, fmt.Errorf("mock: no response configured for command: %s", key)
	}

	return []byte{}, []byte{}, nil
}

// LookPath reports binaries in MissingBinaries as absent and resolves
// everything else to a fake path.
func (m *MockCommandExecutor) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, missing := range m.MissingBinaries {
		if missing == name {
			return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
		}
	}
	return "/usr/bin/" + name, nil
}

// CallCount returns how many recorded calls ran the named command.
func (m *MockCommandExecutor) CallCount(command string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, call := range m.RecordedCalls {
		if call.Command == command {
			n++
		}
	}
	return n
}

// AssertCalled fails the test if the named command was never executed.
func (m *MockCommandExecutor) AssertCalled(t *testing.T, command string) {
	t.Helper()
	if m.CallCount(command) == 0 {
		t.Errorf("expected command %q to be called", command)
	}
}

// AssertNotCalled fails the test if the named command was executed.
func (m *MockCommandExecutor) AssertNotCalled(t *testing.T, command string) {
	t.Helper()
	if n := m.CallCount(command); n > 0 {
		t.Errorf("expected command %q to never be called, got %d call(s)", command, n)
	}
}

func (m *MockCommandExecutor) buildKey(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// matchesPattern reports whether a call key matches a configured
// pattern: exact, or the pattern followed by further arguments. A
// bare prefix is not enough, so "tty" never matches "ttyd --start".
func (m *MockCommandExecutor) matchesPattern(key, pattern string) bool {
	return key == pattern || strings.HasPrefix(key, pattern+" ")
}
