package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mkhera/voluntree-cli/pkg/core/services"
)

// ListOpportunitiesCmd creates the listOpportunities command
func ListOpportunitiesCmd(app *AppContext) *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "listOpportunities",
		Short: "List your opportunity listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cached {
				result, err := services.RefreshOpportunities(app.Ctx, app.Opportunities, app.Sessions, app.Logger)
				if err != nil {
					return presentError(err)
				}
				if result.IdentityChanged {
					fmt.Println("Cached listings belonged to a different account and were discarded.")
				}
			}

			snapshot := app.Opportunities.Snapshot()
			if len(snapshot.Opportunities) == 0 {
				fmt.Println("\nNo opportunities yet. Create one with createOpportunity.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"ID", "Property", "District", "State", "Status", "Applications", "Photos"})
			for _, opp := range snapshot.Opportunities {
				t.AppendRow(table.Row{
					opp.ID,
					opp.PropertyName,
					opp.District,
					opp.State,
					opp.Status,
					opp.ApplicationsCount,
					len(opp.Images),
				})
			}

			fmt.Println()
			t.Render()
			if !snapshot.LastFetched.IsZero() {
				fmt.Printf("\nLast fetched: %s\n\n", snapshot.LastFetched.Format("2006-01-02 15:04:05 MST"))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&cached, "cached", false, "Show the cached list without contacting the server")

	return cmd
}
