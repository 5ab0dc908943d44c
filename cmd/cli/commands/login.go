package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/mkhera/voluntree-cli/pkg/session"
)

// LoginCmd creates the login command
func LoginCmd(app *AppContext) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login <access_token>",
		Short: "Store an API access token for subsequent commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accessToken := args[0]

			hostID, err := session.SubjectFromToken(accessToken)
			if err != nil {
				return fmt.Errorf("invalid access token: %w", err)
			}

			// A token for a different account invalidates the cached listings.
			snapshot := app.Opportunities.Snapshot()
			if snapshot.OwnerID != "" && snapshot.OwnerID != hostID {
				app.Logger.Info("Logging in as a different host, clearing cached listings")
				app.Opportunities.Clear(app.Ctx)
			}

			sess := &session.Session{
				Token:  &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"},
				HostID: hostID,
				Email:  email,
			}
			if err := app.Sessions.Save(sess); err != nil {
				return err
			}

			fmt.Printf("\n✓ Logged in as host %s\n\n", hostID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address to record alongside the session")

	return cmd
}
