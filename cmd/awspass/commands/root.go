package commands

import (
	"github.com/spf13/cobra"

	"github.com/systmms/awspass/internal/credproc"
	"github.com/systmms/awspass/internal/resolver"
	"github.com/systmms/awspass/internal/store"
	"github.com/systmms/awspass/internal/validation"
)

// NewRootCommand builds the credential-process entry point. Invoked
// by AWS tooling as `credential_process = awspass <profile>`, it
// writes the credential JSON to stdout and exits 0, or an error JSON
// and exits 1.
func NewRootCommand(app *App, version string) *cobra.Command {
	var (
		configFile string
		debug      bool
		noColor    bool
	)

	cmd := &cobra.Command{
		Use:   "awspass [profile]",
		Short: "AWS credential_process helper backed by pass",
		Long: `awspass resolves temporary AWS credentials from a GPG-encrypted
secret store and prints them in the credential_process JSON format.

Point the AWS CLI at it from ~/.aws/config:

  [profile dev]
  credential_process = awspass dev

Entries live under <prefix>/<profile>/ in the store:

  aws/dev/access-key-id
  aws/dev/secret-access-key
  aws/dev/session-token   (optional)
  aws/dev/expiration      (optional)`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.initialize(configFile, debug, noColor)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			styler := credproc.NewStyler(!noColor && credproc.DetectTTY())
			formatter := credproc.NewFormatter(app.Stdout, app.Stderr, styler)

			if app.initErr != nil {
				formatter.Failure(app.initErr)
				return ErrFailed
			}

			// The default profile goes through the same validation as
			// an explicit argument.
			profile := app.Config.Profile.Default
			if len(args) == 1 {
				profile = args[0]
			}
			validated, err := validation.Profile(profile)
			if err != nil {
				formatter.Failure(err)
				return ErrFailed
			}

			// A missing external tool is DependencyError, not a
			// retrievable failure; check before resolution starts.
			if checker, isChecker := app.Store.(store.HealthChecker); isChecker {
				if err := checker.CheckDependencies(); err != nil {
					formatter.Failure(err)
					return ErrFailed
				}
			}

			r := resolver.New(app.Store, app.Gate, app.Logger, resolver.Options{
				Prefix:        app.Config.Store.Prefix,
				RetryAttempts: app.Config.Retry.Attempts,
				RetryDelay:    app.Config.RetryDelay(),
			})

			set, err := r.Resolve(cmd.Context(), validated)
			if err != nil {
				formatter.Failure(err)
				return ErrFailed
			}
			defer set.Destroy()

			if formatter.Success(set) != 0 {
				return ErrFailed
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default: ~/.config/awspass/config.yaml)")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable redacted debug logging on stderr")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(
		NewDoctorCommand(app),
		NewListCommand(app),
	)

	return cmd
}
