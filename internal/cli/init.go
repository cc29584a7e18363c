package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pablasso/planbook/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  "Creates the data directory and a config.yaml with every setting at its default. Point PLANBOOK_CONFIG elsewhere to write it somewhere else.",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := config.Path()
	if err := config.WriteDefault(path); err != nil {
		return err
	}

	dataDir := config.DefaultDataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dataDir, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Wrote", path)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Pick a storage driver in the config (file is the default)")
	fmt.Fprintln(out, "  2. Run: planbook add --name <name>")
	return nil
}
