package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every plan",
	Long:  "Clears the stored plan collection. This action cannot be undone; export first if you want a copy.",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	return withPlanner(cmd.Context(), func(e *env) error {
		out := cmd.OutOrStdout()
		count := e.planner.Len()

		if !resetForce {
			question := fmt.Sprintf("This will delete %d plan(s) from %s storage. Continue?", count, e.cfg.Storage.Driver)
			if !confirm(cmd.InOrStdin(), out, question) {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		if err := e.planner.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d plan(s).\n", count)
		return nil
	})
}
