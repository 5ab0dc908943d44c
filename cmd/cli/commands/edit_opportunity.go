package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkhera/voluntree-cli/pkg/core/form"
	"github.com/mkhera/voluntree-cli/pkg/core/services"
)

// EditOpportunityCmd creates the editOpportunity command
func EditOpportunityCmd(app *AppContext) *cobra.Command {
	var (
		draftPath      string
		sets           []string
		toggles        []string
		meal           string
		addImages      []string
		removeExisting []int
		removeNew      []int
	)

	cmd := &cobra.Command{
		Use:   "editOpportunity <id>",
		Short: "Edit an existing listing",
		Long: `Edit an opportunity listing. The current listing is fetched from the
server, changes are applied on top, and the full listing is resubmitted.

Changes come from a draft file (--draft), individual field values (--set),
tag toggles (--toggle), and image operations. Stored photos and newly
attached files are addressed separately: --remove-existing and --remove-new
each take a 1-based position within their own list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := services.LoadOpportunityForEdit(app.Ctx, app.Client, app.Logger, args[0])
			if err != nil {
				return presentError(err)
			}

			if draftPath != "" {
				draft, err := form.LoadDraft(draftPath)
				if err != nil {
					return err
				}
				if err := f.ApplyDraft(draft); err != nil {
					return err
				}
			}

			for _, set := range sets {
				name, value, ok := strings.Cut(set, "=")
				if !ok {
					return fmt.Errorf("--set expects field=value, got %q", set)
				}
				if err := f.SetField(name, value); err != nil {
					return err
				}
			}

			for _, toggle := range toggles {
				field, value, ok := strings.Cut(toggle, "=")
				if !ok {
					return fmt.Errorf("--toggle expects field=value, got %q", toggle)
				}
				if err := f.ToggleTag(field, value); err != nil {
					return err
				}
			}

			if meal != "" {
				if err := f.SetMeal(meal); err != nil {
					return err
				}
			}

			// Removals run before additions so a full listing can swap a photo
			// in one invocation. Positions are 1-based and resolved high to low
			// so earlier removals don't shift later ones.
			for _, pos := range sortDescending(removeExisting) {
				if err := f.RemoveExistingImage(pos - 1); err != nil {
					return err
				}
			}
			for _, pos := range sortDescending(removeNew) {
				if err := f.RemoveNewImage(pos - 1); err != nil {
					return err
				}
			}
			if len(addImages) > 0 {
				if err := f.AddImageFiles(addImages); err != nil {
					return err
				}
			}

			result, err := services.SubmitOpportunity(app.Ctx, app.Client, app.Opportunities, app.Logger, f)
			if err != nil {
				return presentError(err)
			}

			fmt.Printf("\n✓ Opportunity updated!\n\n")
			fmt.Printf("ID:       %s\n", result.Opportunity.ID)
			fmt.Printf("Property: %s\n", result.Opportunity.PropertyName)
			fmt.Printf("Photos:   %d\n\n", len(result.Opportunity.Images))

			return nil
		},
	}

	cmd.Flags().StringVar(&draftPath, "draft", "", "Draft yaml file to apply on top of the fetched listing")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a field, e.g. --set description='New text'")
	cmd.Flags().StringArrayVar(&toggles, "toggle", nil, "Toggle a tag value, e.g. --toggle skills=Gardening")
	cmd.Flags().StringVar(&meal, "meal", "", "Select the meal plan")
	cmd.Flags().StringArrayVar(&addImages, "add-image", nil, "Attach a local image file")
	cmd.Flags().IntSliceVar(&removeExisting, "remove-existing", nil, "Remove a stored photo by position (1-based)")
	cmd.Flags().IntSliceVar(&removeNew, "remove-new", nil, "Remove a newly attached photo by position (1-based)")

	return cmd
}

func sortDescending(positions []int) []int {
	sorted := append([]int(nil), positions...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	return sorted
}
