package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pablasso/planbook/internal/plan"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one plan in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	return withPlanner(cmd.Context(), func(e *env) error {
		p, ok := e.planner.Find(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", plan.ErrNotFound, args[0])
		}
		printPlan(cmd.OutOrStdout(), p)
		return nil
	})
}

func printPlan(w io.Writer, p plan.Plan) {
	fmt.Fprintf(w, "%s\n", p.Name)
	fmt.Fprintf(w, "  id:       %s\n", p.ID)
	if p.TS > 0 {
		fmt.Fprintf(w, "  saved:    %s (%s)\n", time.UnixMilli(p.TS).Format(time.DateTime), savedAge(p.TS))
	}
	fmt.Fprintf(w, "  style:    %s\n", p.Style.Label())
	fmt.Fprintf(w, "  size:     %s\n", p.Size.Label())
	fmt.Fprintf(w, "  goal:     %s\n", p.Goal.Label())
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "  tags:     %s\n", strings.Join(p.Tags, ", "))
	}
	fmt.Fprintf(w, "  services: %s\n", servicesSummary(p))
	for _, name := range plan.ServiceCatalog {
		mark := " "
		if p.Services[name] {
			mark = "x"
		}
		fmt.Fprintf(w, "    [%s] %s\n", mark, name)
	}
	if p.Notes != "" {
		fmt.Fprintln(w, "  notes:")
		for _, line := range strings.Split(p.Notes, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}
