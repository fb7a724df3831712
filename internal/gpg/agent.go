// Package gpg manages gpg-agent readiness. Decryption through pass is
// gated on an interactive unlock (PIN, passphrase, or hardware-token
// touch); this package makes sure the agent is running and bound to a
// terminal before any secret is fetched.
package gpg

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	awserrors "github.com/systmms/awspass/internal/errors"
	"github.com/systmms/awspass/internal/logging"
	pkgexec "github.com/systmms/awspass/pkg/exec"
)

// Gate is the readiness contract the resolver depends on.
type Gate interface {
	// EnsureReady blocks until the decryption backend can serve
	// interactive unlock prompts, or fails after bounded attempts.
	// Calling it when already ready is a cheap no-op.
	EnsureReady(ctx context.Context) error
}

// NopGate is always ready. Backends that decrypt without gpg-agent,
// such as the OS keyring, use it so resolution never requires the gpg
// tooling to be installed.
type NopGate struct{}

func (NopGate) EnsureReady(ctx context.Context) error { return nil }

// Agent ensures gpg-agent is running via the gpg-connect-agent and
// gpg-agent CLIs.
type Agent struct {
	executor pkgexec.CommandExecutor
	logger   *logging.Logger
	attempts int
	delay    time.Duration
	sleep    func(time.Duration)
}

// NewAgent creates an agent gate. attempts and delay bound the
// readiness poll after a daemon start.
func NewAgent(executor pkgexec.CommandExecutor, logger *logging.Logger, attempts int, delay time.Duration) *Agent {
	return &Agent{
		executor: executor,
		logger:   logger,
		attempts: attempts,
		delay:    delay,
		sleep:    time.Sleep,
	}
}

// EnsureReady pings the agent, starting it if necessary, and polls
// until it answers or attempts are exhausted.
func (a *Agent) EnsureReady(ctx context.Context) error {
	if _, err := a.executor.LookPath("gpg-connect-agent"); err != nil {
		return awserrors.CredentialError{
			Code:       awserrors.CodeDependency,
			Message:    "gpg-connect-agent not found",
			Suggestion: "install GnuPG (apt install gnupg, brew install gnupg)",
			Err:        err,
		}
	}

	a.ensureTTY(ctx)

	if a.ping(ctx) {
		a.logger.Debug("gpg-agent already running")
		a.bindTTY(ctx)
		return nil
	}

	a.logger.Debug("gpg-agent not responding, starting daemon")
	_, stderr, startErr := a.executor.Execute(ctx, "gpg-agent", "--daemon")
	if startErr != nil {
		// A daemon racing us into existence reports "already running";
		// that is not a startup failure.
		if strings.Contains(string(stderr), "already running") {
			startErr = nil
		}
	}

	for attempt := 1; attempt <= a.attempts; attempt++ {
		if a.ping(ctx) {
			a.logger.Debug("gpg-agent ready after %d attempt(s)", attempt)
			a.bindTTY(ctx)
			return nil
		}
		if attempt < a.attempts {
			a.sleep(a.delay)
		}
	}

	if startErr != nil {
		return awserrors.CredentialError{
			Code:       awserrors.CodeGPGAgent,
			Message:    "failed to start gpg-agent",
			Details:    strings.TrimSpace(string(stderr)),
			Suggestion: "start it manually: gpg-agent --daemon",
			Err:        startErr,
		}
	}
	return awserrors.CredentialError{
		Code:       awserrors.CodeGPGAuth,
		Message:    fmt.Sprintf("gpg-agent did not become ready after %d attempts", a.attempts),
		Suggestion: "check 'gpg-connect-agent /bye' and your pinentry configuration",
	}
}

// ping reports whether the agent answers a /bye.
func (a *Agent) ping(ctx context.Context) bool {
	_, _, err := a.executor.Execute(ctx, "gpg-connect-agent", "/bye")
	return err == nil
}

// bindTTY points the agent's pinentry at the current terminal so
// unlock prompts land somewhere a human can see. Failure is only a
// diagnostic; the agent may still be usable.
func (a *Agent) bindTTY(ctx context.Context) {
	if _, _, err := a.executor.Execute(ctx, "gpg-connect-agent", "updatestartuptty", "/bye"); err != nil {
		a.logger.Debug("updatestartuptty failed: %v", err)
	}
}

// ensureTTY guarantees GPG_TTY is set before the agent is contacted.
// Without it, pinentry has no terminal to prompt on.
func (a *Agent) ensureTTY(ctx context.Context) {
	if os.Getenv("GPG_TTY") != "" {
		return
	}
	tty := "/dev/tty"
	if out, _, err := a.executor.Execute(ctx, "tty"); err == nil {
		if s := strings.TrimSpace(string(out)); s != "" && s != "not a tty" {
			tty = s
		}
	}
	a.logger.Debug("GPG_TTY not set, falling back to %s", tty)
	os.Setenv("GPG_TTY", tty)
}
