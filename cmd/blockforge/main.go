package main

import (
	"fmt"

	"blockforge/pkg/lib"
)

func main() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(toolboxCmd)
	rootCmd.AddCommand(emitCmd)
	rootCmd.AddCommand(tryCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(initCmd)

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		lib.Exit(err)
	}
}

// exitError makes a command fail with a specific exit status.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func (e *exitError) ExitCode() int { return e.code }

// diagnosticsError reports that a command finished but produced diagnostics
// while --strict was set.
func diagnosticsError(diags []string) error {
	return &exitError{code: 2, msg: fmt.Sprintf("%d diagnostic(s) reported", len(diags))}
}
