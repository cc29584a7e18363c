package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pablasso/planbook/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "planbook",
	Short:         "Planning notes for city layouts",
	Long:          `Planbook keeps personal planning notes for city layouts: road style, size, goal, tags, notes and a service checklist. Run without arguments for the interactive view.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands read the config path the way config.Load does.
		if configPath != "" {
			return os.Setenv("PLANBOOK_CONFIG", configPath)
		}
		return nil
	},
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $PLANBOOK_CONFIG or ~/.planbook/config.yaml)")
	rootCmd.AddCommand(
		listCmd,
		showCmd,
		addCmd,
		editCmd,
		copyCmd,
		rmCmd,
		exportCmd,
		importCmd,
		resetCmd,
		initCmd,
		backupCmd,
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
