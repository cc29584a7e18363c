package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pablasso/planbook/internal/plan"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List plans, most recently saved first",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	return withPlanner(cmd.Context(), func(e *env) error {
		plans := e.planner.ListPlansSortedNewestFirst()
		out := cmd.OutOrStdout()

		if len(plans) == 0 {
			fmt.Fprintln(out, "No plans yet. Create one with: planbook add --name <name>")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSTYLE\tSIZE\tGOAL\tSERVICES\tSAVED")
		for _, p := range plans {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				p.ID,
				p.Name,
				p.Style.Label(),
				p.Size.Label(),
				p.Goal.Label(),
				servicesSummary(p),
				savedAge(p.TS),
			)
		}
		return w.Flush()
	})
}

// servicesSummary renders "done/total" against the service catalog.
func servicesSummary(p plan.Plan) string {
	return fmt.Sprintf("%d/%d", plan.ServicesDone(p), len(plan.ServiceCatalog))
}

// savedAge returns a relative time such as "3 minutes ago" for a ms timestamp.
func savedAge(ts int64) string {
	if ts <= 0 {
		return "-"
	}
	return humanize.Time(time.UnixMilli(ts))
}
