package cli

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var (
	exportOut       string
	exportClipboard bool
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every plan as JSON",
	Long:  `Writes {"version": 1, "exportedAt": ..., "plans": [...]} to stdout, a file, or the clipboard. The output can be fed back to "planbook import".`,
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to file instead of stdout")
	exportCmd.Flags().BoolVarP(&exportClipboard, "clipboard", "c", false, "Copy to the clipboard instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	return withPlanner(cmd.Context(), func(e *env) error {
		data, err := e.planner.ExportSnapshot()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		count := e.planner.Len()

		switch {
		case exportOut != "":
			if err := os.WriteFile(exportOut, append(data, '\n'), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", exportOut, err)
			}
			fmt.Fprintf(out, "Exported %d plan(s) to %s\n", count, exportOut)
		case exportClipboard:
			if err := writeClipboard(string(data)); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			fmt.Fprintf(out, "Copied %d plan(s) to the clipboard\n", count)
		default:
			fmt.Fprintln(out, string(data))
		}
		return nil
	})
}
