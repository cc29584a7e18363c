package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var editFlags formFlags

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a plan",
	Long:  "Updates the plan with the given id. Only the flags you pass change; everything else keeps its current value. Saving refreshes the plan's timestamp.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editFlags.register(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	return withPlanner(cmd.Context(), func(e *env) error {
		form, err := e.planner.BeginEdit(args[0])
		if err != nil {
			return err
		}

		form, err = editFlags.apply(cmd, form)
		if err != nil {
			e.planner.CancelEdit()
			return err
		}

		saved, err := e.planner.CommitEdit(cmd.Context(), form)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %q (%s)\n", saved.Name, saved.ID)
		return nil
	})
}
