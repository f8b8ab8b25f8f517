package main

import (
	"fmt"
	"os"

	"blockforge/cmd/blockforge/blockdef"

	"github.com/spf13/cobra"
)

var toolboxCmd = &cobra.Command{
	Use:   "toolbox",
	Short: "Add every registered block to its toolbox category",
	Long: "Read the toolbox document (--toolbox or <config>/toolbox.json), append an\n" +
		"entry for each registered block to the category named by the block and\n" +
		"print the result. Problems are logged as warnings and the document is\n" +
		"left as intact as possible.",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := load(flagFiles)
		if err != nil {
			return err
		}
		path := resolveToolboxFile(p.configDir, flagToolbox)
		doc, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("toolbox file %s: %w", path, err)
		}

		out, diags := blockdef.AssembleToolbox(doc, p.schemas, logger)

		output, _ := cmd.Flags().GetString("output")
		if output != "" {
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(os.Stderr, "written to %s\n", output)
		} else {
			cmd.OutOrStdout().Write(out)
		}

		if strict, _ := cmd.Flags().GetBool("strict"); strict && len(diags) > 0 {
			return diagnosticsError(diags)
		}
		return nil
	},
}

func init() {
	toolboxCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	toolboxCmd.Flags().Bool("strict", false, "exit with status 2 when any diagnostic is reported")
}
