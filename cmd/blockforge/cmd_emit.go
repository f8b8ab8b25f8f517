package main

import (
	"fmt"
	"io"
	"os"

	"blockforge/cmd/blockforge/blockdef"

	"github.com/spf13/cobra"
)

var emitCmd = &cobra.Command{
	Use:   "emit <program.json>",
	Short: "Generate code for a serialized block program",
	Long: "Compile the block definitions, then generate code for every top-level\n" +
		"stack of the program. Use - to read the program from stdin.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := load(flagFiles)
		if err != nil {
			return err
		}
		data, err := readInput(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		prog, err := blockdef.ParseProgram(data)
		if err != nil {
			return err
		}

		code, diags := blockdef.EmitProgram(p.editor, prog)
		for _, d := range diags {
			logger.Warn(d)
		}
		fmt.Fprint(cmd.OutOrStdout(), code)

		if strict, _ := cmd.Flags().GetBool("strict"); strict && len(diags) > 0 {
			return diagnosticsError(diags)
		}
		return nil
	},
}

// readInput reads path, or stdin when path is "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("program file %s: %w", path, err)
	}
	return data, nil
}

func init() {
	emitCmd.Flags().Bool("strict", false, "exit with status 2 when any diagnostic is reported")
}
