package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

//go:embed cmd_example_blocks.yml
var exampleBlocksYAML []byte

//go:embed cmd_example_toolbox.json
var exampleToolboxJSON []byte

//go:embed cmd_example_program.json
var exampleProgramJSON []byte

const exampleBlocksHeader = `# blockforge — example block definitions
# Validate:  blockforge --file <this-file> validate
# Inspect:   blockforge --file <this-file> show <id>

`

// exampleParts maps --part values to their embedded content.
var exampleParts = map[string][]byte{
	"blocks":  exampleBlocksYAML,
	"toolbox": exampleToolboxJSON,
	"program": exampleProgramJSON,
}

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print example block definitions, toolbox or program",
	Long: "Print an example that exercises every block kind.\n" +
		"--part selects the block definitions (default), the toolbox document or a\n" +
		"program using the example blocks. Use --output to write to a file instead of stdout.",
	RunE: func(cmd *cobra.Command, args []string) error {
		part, _ := cmd.Flags().GetString("part")
		content, ok := exampleParts[part]
		if !ok {
			return fmt.Errorf("unknown part %q (valid: blocks, toolbox, program)", part)
		}

		output, _ := cmd.Flags().GetString("output")
		w := cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}

		if part == "blocks" {
			fmt.Fprint(w, exampleBlocksHeader)
		}
		if _, err := w.Write(content); err != nil {
			return err
		}

		if output != "" {
			fmt.Fprintf(os.Stderr, "written to %s\n", output)
		}
		return nil
	},
}

func init() {
	exampleCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	exampleCmd.Flags().String("part", "blocks", "what to print: blocks, toolbox or program")
}
