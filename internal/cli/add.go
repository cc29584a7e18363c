package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pablasso/planbook/internal/plan"
)

var addFlags formFlags

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a plan",
	Long:  "Creates a plan from flags. Unset fields take their defaults: a blank name becomes \"Untitled plan\", style curvy, size medium, goal fast-growth.",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

func init() {
	addFlags.register(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	form, err := addFlags.apply(cmd, plan.DefaultForm())
	if err != nil {
		return err
	}

	return withPlanner(cmd.Context(), func(e *env) error {
		saved, err := e.planner.CommitEdit(cmd.Context(), form)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %q (%s)\n", saved.Name, saved.ID)
		return nil
	})
}
