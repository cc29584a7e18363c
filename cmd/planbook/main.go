package main

import (
	"fmt"
	"os"

	"github.com/pablasso/planbook/internal/cli"
	"github.com/pablasso/planbook/internal/tui"
	"github.com/pablasso/planbook/internal/version"
)

func main() {
	args := os.Args[1:]

	// No args or only flags launch the TUI; a subcommand routes to the CLI.
	if hasSubcommand(args) {
		if err := cli.Execute(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	res, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	switch {
	case res.ShowHelp:
		fmt.Print(res.HelpText)
		return
	case res.ShowVersion:
		fmt.Printf("planbook %s (%s, built %s)\n", version.Version, version.CommitSHA, version.BuildDate)
		return
	}

	if err := tui.Run(res.Options); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
