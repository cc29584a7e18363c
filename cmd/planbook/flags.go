package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/pablasso/planbook/internal/tui"
)

type parseResult struct {
	Options     tui.Options
	ShowHelp    bool
	ShowVersion bool
	HelpText    string
}

// parseArgs parses the flags accepted when planbook starts the TUI.
func parseArgs(args []string) (parseResult, error) {
	fs := pflag.NewFlagSet("planbook", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	configPath := fs.String("config", "", "Config file (default $PLANBOOK_CONFIG or ~/.planbook/config.yaml)")
	showVersion := fs.BoolP("version", "v", false, "Show version information")

	usage := func() string {
		var b strings.Builder
		fmt.Fprintln(&b, "Usage: planbook [flags]")
		fmt.Fprintln(&b, "       planbook <command> [args]")
		fmt.Fprintln(&b, "")
		fmt.Fprintln(&b, "Planbook keeps planning notes for city layouts.")
		fmt.Fprintln(&b, "Run 'planbook help' to list the commands.")
		fmt.Fprintln(&b, "")
		fmt.Fprintln(&b, "Flags:")
		b.WriteString(fs.FlagUsages())
		return b.String()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return parseResult{ShowHelp: true, HelpText: usage()}, nil
		}
		return parseResult{}, fmt.Errorf("%v\n\n%s", err, usage())
	}

	if fs.NArg() > 0 {
		return parseResult{}, fmt.Errorf("positional args are not supported\n\n%s", usage())
	}

	if *showVersion {
		return parseResult{ShowVersion: true}, nil
	}

	return parseResult{Options: tui.Options{ConfigPath: *configPath}}, nil
}

// hasSubcommand reports whether args name a CLI command, skipping the value
// of a separate --config flag.
func hasSubcommand(args []string) bool {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--config":
			i++
		case !strings.HasPrefix(arg, "-"):
			return true
		}
	}
	return false
}
