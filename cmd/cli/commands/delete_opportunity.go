package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkhera/voluntree-cli/pkg/core/services"
)

// DeleteOpportunityCmd creates the deleteOpportunity command
func DeleteOpportunityCmd(app *AppContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "deleteOpportunity <id>",
		Short: "Delete a listing permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if !force {
				fmt.Printf("Delete opportunity %s permanently? [y/N] ", id)
				scanner := bufio.NewScanner(os.Stdin)
				if !scanner.Scan() {
					return nil
				}
				answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
				if answer != "y" && answer != "yes" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := services.DeleteOpportunity(app.Ctx, app.Opportunities, app.Client, app.Logger, id); err != nil {
				return presentError(err)
			}

			fmt.Printf("\n✓ Opportunity %s deleted\n\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}
