package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:     "copy <id>",
	Aliases: []string{"cp", "duplicate"},
	Short:   "Duplicate a plan under a new id",
	Args:    cobra.ExactArgs(1),
	RunE:    runCopy,
}

func runCopy(cmd *cobra.Command, args []string) error {
	return withPlanner(cmd.Context(), func(e *env) error {
		dup, err := e.planner.DuplicatePlan(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %q (%s)\n", dup.Name, dup.ID)
		return nil
	})
}
