package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkhera/voluntree-cli/pkg/core/services"
)

// ToggleStatusCmd creates the toggleStatus command
func ToggleStatusCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "toggleStatus <id>",
		Short: "Flip a listing between active and inactive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ToggleOpportunityStatus(app.Ctx, app.Opportunities, app.Client, app.Logger, args[0])
			if err != nil {
				return presentError(err)
			}

			fmt.Printf("\n✓ Status changed: %s → %s\n\n", result.From, result.To)
			return nil
		},
	}
}
