package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkhera/voluntree-cli/pkg/core/form"
	"github.com/mkhera/voluntree-cli/pkg/core/services"
)

// CreateOpportunityCmd creates the createOpportunity command
func CreateOpportunityCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "createOpportunity <draft.yaml>",
		Short: "Create a new listing from a draft file",
		Long: `Create a new opportunity listing from a yaml draft file.

The draft holds the listing fields plus local image paths (between 1 and 3).
If the server rejects the submission the draft is untouched; fix it and
run the command again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := form.LoadDraft(args[0])
			if err != nil {
				return err
			}

			f := form.New()
			if err := f.ApplyDraft(draft); err != nil {
				return err
			}

			result, err := services.SubmitOpportunity(app.Ctx, app.Client, app.Opportunities, app.Logger, f)
			if err != nil {
				return presentError(err)
			}

			fmt.Printf("\n✓ Opportunity created!\n\n")
			fmt.Printf("ID:       %s\n", result.Opportunity.ID)
			fmt.Printf("Property: %s\n", result.Opportunity.PropertyName)
			fmt.Printf("Status:   %s\n\n", result.Opportunity.Status)

			return nil
		},
	}
}
