package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// WhoamiCmd creates the whoami command
func WhoamiCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently logged-in host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.Sessions.Load()
			if err != nil {
				return err
			}
			if sess.Token == nil || sess.Token.AccessToken == "" {
				fmt.Println("Not logged in.")
				return nil
			}

			fmt.Printf("\nHost ID: %s\n", sess.HostID)
			if sess.Email != "" {
				fmt.Printf("Email:   %s\n", sess.Email)
			}
			fmt.Println()
			return nil
		},
	}
}
