package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// logger is rebuilt from the persistent flags before any subcommand runs.
var logger = newLogger("warn", "text", os.Stderr)

var rootCmd = &cobra.Command{
	Use:   appName + " [command]",
	Short: "Compile block definitions into editor blocks, toolboxes and code",
	Long: appName + " reads block definition files (JSON or YAML), registers each block\n" +
		"with an in-memory editor and emits toolboxes and program code from them.\n\n" +
		"Definition files are read from <config>/blocks/, $" + envBlocks + " and --file.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(flagLogLevel, flagLogFormat, cmd.ErrOrStderr())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().AddFlagSet(sharedFlags())
}

// completeBlockIDs completes the first positional argument with registered
// block ids.
func completeBlockIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	p, err := load(flagFiles)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var ids []string
	for _, s := range p.schemas {
		if strings.HasPrefix(s.ID, toComplete) {
			ids = append(ids, s.ID)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
