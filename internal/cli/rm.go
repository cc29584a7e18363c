package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pablasso/planbook/internal/plan"
)

var rmForce bool

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a plan",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

func init() {
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "Skip confirmation prompt")
}

func runRm(cmd *cobra.Command, args []string) error {
	return withPlanner(cmd.Context(), func(e *env) error {
		p, ok := e.planner.Find(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", plan.ErrNotFound, args[0])
		}

		out := cmd.OutOrStdout()
		if !rmForce && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete %q?", p.Name)) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}

		if err := e.planner.DeletePlan(cmd.Context(), p.ID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %q\n", p.Name)
		return nil
	})
}
