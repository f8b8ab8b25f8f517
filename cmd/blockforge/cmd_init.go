package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialise the blockforge config directory with example files",
	Long: "Create the blockforge config directory structure and populate it with\n" +
		"the example blocks, toolbox and program.\n\n" +
		"Files created:\n" +
		"  <config>/blocks/blocks.yml       — block definitions\n" +
		"  <config>/toolbox.json            — toolbox document\n" +
		"  <config>/programs/example.json   — a program using the example blocks\n\n" +
		"The default config directory follows the same priority as the main command:\n" +
		"  $BLOCKFORGE_CONFIG_DIR > $XDG_CONFIG_HOME/blockforge > ~/.config/blockforge",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		dir, _ := cmd.Flags().GetString("dir")

		if dir == "" {
			var err error
			dir, err = resolveConfigDir()
			if err != nil {
				return err
			}
		}

		files, err := initConfigDir(dir, force)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "initialised %s\n", dir)
		for _, f := range files {
			fmt.Fprintf(os.Stderr, "  %s\n", f)
		}
		fmt.Fprintf(os.Stderr, "\nRun `%s list` to see the registered blocks.\n", appName)
		return nil
	},
}

// initConfigDir writes the example files below dir and returns their paths.
func initConfigDir(dir string, force bool) ([]string, error) {
	blocksDir := filepath.Join(dir, "blocks")
	programsDir := filepath.Join(dir, "programs")
	for _, d := range []string{blocksDir, programsDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	files := []struct {
		path    string
		header  string
		content []byte
	}{
		{filepath.Join(blocksDir, "blocks.yml"), exampleBlocksHeader, exampleBlocksYAML},
		{filepath.Join(dir, "toolbox.json"), "", exampleToolboxJSON},
		{filepath.Join(programsDir, "example.json"), "", exampleProgramJSON},
	}
	var written []string
	for _, f := range files {
		if err := writeInitFile(f.path, f.header, f.content, force); err != nil {
			return written, err
		}
		written = append(written, f.path)
	}
	return written, nil
}

func writeInitFile(path, header string, content []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if header != "" {
		fmt.Fprint(f, header)
	}
	_, err = f.Write(content)
	return err
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite existing files")
	initCmd.Flags().String("dir", "", "target config directory (default: auto-resolved)")
}
