package main

import (
	"fmt"

	"blockforge/cmd/blockforge/blockdef"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every block definition file",
	Long: "Load every definition file, validate its structure and register it, then\n" +
		"check each block's configuration and its default-children nesting.",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := load(flagFiles)
		if err != nil {
			return err
		}
		if err := blockdef.CheckAll(p.schemas); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), styleOK.Render(fmt.Sprintf("ok (%d blocks)", len(p.schemas))))
		return nil
	},
}
