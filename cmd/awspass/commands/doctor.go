package commands

import (
	"context"
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/systmms/awspass/internal/credproc"
	"github.com/systmms/awspass/internal/resolver"
	"github.com/systmms/awspass/internal/store"
	"github.com/systmms/awspass/internal/validation"
)

// NewDoctorCommand builds the health-check command. It verifies the
// external tools, the agent, and the store setup for a profile, and
// with --verify proves the resolved credentials against STS.
func NewDoctorCommand(app *App) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "doctor [profile]",
		Short: "Check dependencies, agent, and store setup",
		Long: `Verify that the helper can serve credentials.

This command checks:
- Required tools (pass, gpg) are installed
- gpg-agent is running and reachable
- The password store is initialized
- The profile's required entries exist

With --verify, it also resolves the credentials and calls
STS GetCallerIdentity to prove they are accepted by AWS.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.initErr != nil {
				return app.initErr
			}

			styler := credproc.NewStyler(credproc.DetectTTY())
			ok := func(format string, a ...interface{}) {
				fmt.Fprintln(app.Stdout, styler.Success(fmt.Sprintf(format, a...)))
			}
			bad := func(format string, a ...interface{}) {
				fmt.Fprintln(app.Stdout, styler.Error(fmt.Sprintf(format, a...)))
			}

			profile := app.Config.Profile.Default
			if len(args) == 1 {
				profile = args[0]
			}
			validated, err := validation.Profile(profile)
			if err != nil {
				bad("invalid profile: %v", err)
				return ErrFailed
			}

			failures := 0

			if hc, isChecker := app.Store.(store.HealthChecker); isChecker {
				if err := hc.CheckDependencies(); err != nil {
					bad("dependencies: %v", err)
					failures++
				} else {
					ok("required tools installed")
				}
				if err := hc.CheckInitialized(); err != nil {
					bad("store: %v", err)
					failures++
				} else {
					ok("secret store initialized")
				}
			} else {
				ok("store backend needs no external tools")
			}

			if err := app.Gate.EnsureReady(cmd.Context()); err != nil {
				bad("gpg-agent: %v", err)
				failures++
			} else {
				ok("gpg-agent ready")
			}

			prefix := app.Config.Store.Prefix
			for _, field := range []string{"access-key-id", "secret-access-key"} {
				entry := path.Join(prefix, validated, field)
				if app.Store.Exists(cmd.Context(), entry) {
					ok("entry %s present", entry)
				} else {
					bad("entry %s missing", entry)
					failures++
				}
			}

			if verify && failures == 0 {
				r := resolver.New(app.Store, app.Gate, app.Logger, resolver.Options{
					Prefix:        prefix,
					RetryAttempts: app.Config.Retry.Attempts,
					RetryDelay:    app.Config.RetryDelay(),
				})
				set, err := r.Resolve(cmd.Context(), validated)
				if err != nil {
					bad("resolution: %v", err)
					failures++
				} else {
					defer set.Destroy()
					arn, err := verifyCredentials(cmd.Context(), app, set)
					if err != nil {
						bad("STS rejected the credentials: %v", err)
						failures++
					} else {
						ok("credentials accepted, caller identity %s", arn)
					}
				}
			}

			if failures > 0 {
				return ErrFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Resolve credentials and verify them against STS")

	return cmd
}

// verifyCredentials unseals the set just long enough to hand static
// credentials to the injected verifier.
func verifyCredentials(ctx context.Context, app *App, set *resolver.CredentialSet) (string, error) {
	secretKey, err := set.SecretAccessKey.Reveal()
	if err != nil {
		return "", err
	}
	token := ""
	if set.SessionToken != nil {
		token, err = set.SessionToken.Reveal()
		if err != nil {
			return "", err
		}
	}
	return app.Verify(ctx, app.Config.AWS.Region, set.AccessKeyID, secretKey, token)
}
