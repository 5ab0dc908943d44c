package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// LogoutCmd creates the logout command
func LogoutCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session and cached listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.Clear(); err != nil {
				return err
			}
			app.Opportunities.Clear(app.Ctx)

			fmt.Println("\n✓ Logged out")
			return nil
		},
	}
}
