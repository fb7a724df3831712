package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	awserrors "github.com/systmms/awspass/internal/errors"
	"github.com/systmms/awspass/internal/store"
)

// NewListCommand builds the profile listing command. Names only,
// never values; nothing is decrypted.
func NewListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List profiles stored under the prefix",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.initErr != nil {
				return app.initErr
			}

			lister, canList := app.Store.(store.ProfileLister)
			if !canList {
				return awserrors.CredentialError{
					Code:       awserrors.CodeCredentialProcess,
					Message:    fmt.Sprintf("the %s backend cannot enumerate profiles", app.Config.Store.Backend),
					Suggestion: "use the pass backend, or check entries directly in your keyring manager",
				}
			}

			profiles, err := lister.ListProfiles()
			if err != nil {
				return err
			}
			for _, profile := range profiles {
				fmt.Fprintln(app.Stdout, profile)
			}
			return nil
		},
	}
}
