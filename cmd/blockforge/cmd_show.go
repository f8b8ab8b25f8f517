package main

import (
	"errors"
	"fmt"
	"strings"

	"blockforge/cmd/blockforge/blockdef"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:               "show [id]",
	Short:             "Show how a block is drawn and the code it produces",
	Long:              "Show a block's layout and the code a sample instance emits.\nWithout an id, pick the block interactively.",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeBlockIDs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := load(flagFiles)
		if err != nil {
			return err
		}

		var s blockdef.Schema
		if len(args) == 1 {
			var ok bool
			s, ok = p.registry.Get(args[0])
			if !ok {
				return notFoundError(args[0], p.schemas)
			}
		} else {
			s, err = pickSchema(p)
			if err != nil {
				return err
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), describe(p, s))
		return nil
	},
}

// pickSchema lets the user select a block with a fuzzy finder whose preview
// pane shows the block's description.
func pickSchema(p *project) (blockdef.Schema, error) {
	if len(p.schemas) == 0 {
		return blockdef.Schema{}, fmt.Errorf("no blocks registered")
	}
	idx, err := fuzzyfinder.Find(
		p.schemas,
		func(i int) string {
			return p.schemas[i].ID + "  " + p.schemas[i].Name
		},
		fuzzyfinder.WithPromptString("Select block: "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return describe(p, p.schemas[i])
		}),
	)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return blockdef.Schema{}, fmt.Errorf("no block selected")
	}
	if err != nil {
		return blockdef.Schema{}, err
	}
	return p.schemas[idx], nil
}

// notFoundError reports an unknown block id and lists the valid ones.
func notFoundError(id string, schemas []blockdef.Schema) error {
	ids := make([]string, len(schemas))
	for i, s := range schemas {
		ids[i] = s.ID
	}
	return fmt.Errorf("%q not found\navailable: %s", id, strings.Join(ids, ", "))
}
