package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkhera/voluntree-cli/pkg/core/model"
)

// ViewOpportunityCmd creates the viewOpportunity command
func ViewOpportunityCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewOpportunity <id>",
		Short: "Show one listing in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opportunity, err := app.Client.FetchByID(app.Ctx, args[0])
			if err != nil {
				return presentError(err)
			}

			printOpportunity(opportunity)
			return nil
		},
	}
}

func printOpportunity(opp *model.Opportunity) {
	fmt.Printf("\n%s (%s)\n", opp.PropertyName, opp.ID)
	fmt.Printf("Status:       %s\n", opp.Status)
	fmt.Printf("Location:     %s, %s\n", opp.District, opp.State)
	if opp.Location != "" {
		fmt.Printf("Area:         %s\n", opp.Location)
	}
	if opp.Title != "" {
		fmt.Printf("Title:        %s\n", opp.Title)
	}
	fmt.Printf("Description:  %s\n", opp.Description)
	if opp.VolunteerIn != "" {
		fmt.Printf("Volunteer in: %s\n", opp.VolunteerIn)
	}
	if opp.Expectations != "" {
		fmt.Printf("Expectations: %s\n", opp.Expectations)
	}

	if len(opp.PropertyType) > 0 {
		fmt.Printf("Property:     %s\n", strings.Join(opp.PropertyType, ", "))
	}
	if len(opp.RoomType) > 0 {
		fmt.Printf("Rooms:        %s\n", strings.Join(opp.RoomType, ", "))
	}
	fmt.Printf("Meals:        %s\n", opp.Meals)
	if len(opp.Amenities) > 0 {
		fmt.Printf("Amenities:    %s\n", strings.Join(opp.Amenities, ", "))
	}
	if len(opp.Transport) > 0 {
		fmt.Printf("Transport:    %s\n", strings.Join(opp.Transport, ", "))
	}
	if len(opp.Skills) > 0 {
		fmt.Printf("Skills:       %s\n", strings.Join(opp.Skills, ", "))
	}

	fmt.Printf("Volunteers:   %d needed\n", opp.VolunteerNeeded)
	fmt.Printf("Hours/day:    %d, days off: %d\n", opp.WorkingHours, opp.DaysOff)
	if opp.MaximumDuration != nil {
		fmt.Printf("Stay:         %d-%d weeks\n", opp.MinimumDuration, *opp.MaximumDuration)
	} else {
		fmt.Printf("Stay:         %d+ weeks\n", opp.MinimumDuration)
	}
	fmt.Printf("Applications: %d\n", opp.ApplicationsCount)

	if len(opp.Images) > 0 {
		fmt.Println("Photos:")
		for i, img := range opp.Images {
			fmt.Printf("  %d. %s\n", i+1, img.URL)
		}
	}
	fmt.Println()
}
