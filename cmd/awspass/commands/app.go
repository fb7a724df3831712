// Package commands wires the helper's CLI surface.
package commands

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/systmms/awspass/internal/config"
	"github.com/systmms/awspass/internal/gpg"
	"github.com/systmms/awspass/internal/logging"
	"github.com/systmms/awspass/internal/store"
	pkgexec "github.com/systmms/awspass/pkg/exec"
)

// ErrFailed signals a resolution failure whose JSON response has
// already been written; main maps it to exit code 1 without printing
// anything further.
var ErrFailed = errors.New("credential resolution failed")

// VerifyFunc checks resolved credentials against AWS and returns the
// caller identity ARN. Injectable so tests never touch the network.
type VerifyFunc func(ctx context.Context, region, accessKeyID, secretAccessKey, sessionToken string) (string, error)

// App holds the wiring shared by all commands. Fields left nil are
// built from configuration in the pre-run; tests inject fakes.
type App struct {
	Config   config.Config
	Logger   *logging.Logger
	Executor pkgexec.CommandExecutor
	Store    store.Store
	Gate     gpg.Gate
	Verify   VerifyFunc
	Stdout   io.Writer
	Stderr   io.Writer

	// initErr records a configuration failure so the root command can
	// still emit a well-formed JSON error response.
	initErr error
}

// NewApp creates the production wiring.
func NewApp() *App {
	return &App{
		Executor: pkgexec.DefaultExecutor(),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// initialize loads configuration and builds the store and gate unless
// a test injected them already.
func (a *App) initialize(configFile string, debug, noColor bool) {
	cfg, err := config.Load(configFile)
	if err != nil {
		a.initErr = err
		if a.Logger == nil {
			a.Logger = logging.New(debug, noColor)
		}
		return
	}
	a.Config = cfg

	if a.Logger == nil {
		a.Logger = logging.New(debug || config.DebugEnabled(), noColor)
	}
	if a.Store == nil {
		switch cfg.Store.Backend {
		case "keyring":
			a.Store = store.NewKeyringStore(cfg.Store.KeyringService, a.Logger)
		default:
			a.Store = store.NewPassStore(cfg.Store.Dir, cfg.Store.Prefix, a.Executor, a.Logger)
		}
	}
	if a.Gate == nil {
		if cfg.Store.Backend == "keyring" {
			// The keyring unlocks through the OS, not gpg-agent; gating
			// on gpg here would demand tools the backend never uses.
			a.Gate = gpg.NopGate{}
		} else {
			a.Gate = gpg.NewAgent(a.Executor, a.Logger, cfg.Agent.Attempts, cfg.AgentDelay())
		}
	}
	if a.Verify == nil {
		a.Verify = stsVerify
	}
}
