package main

import (
	"fmt"
	"io"
	"sort"

	"blockforge/cmd/blockforge/blockdef"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered blocks by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := load(flagFiles)
		if err != nil {
			return err
		}
		printEntries(cmd.OutOrStdout(), collectEntries(p.schemas))
		return nil
	},
}

// blockEntry is one line of the block listing.
type blockEntry struct {
	category string
	id       string
	name     string
	kind     blockdef.Kind
}

// collectEntries orders schemas the way the toolbox does: categories in
// first-seen order, blocks by kind priority within each.
func collectEntries(schemas []blockdef.Schema) []blockEntry {
	rank := map[string]int{}
	for _, s := range schemas {
		if _, ok := rank[s.Category]; !ok {
			rank[s.Category] = len(rank)
		}
	}
	out := make([]blockEntry, len(schemas))
	for i, s := range schemas {
		out[i] = blockEntry{category: s.Category, id: s.ID, name: s.Name, kind: s.Kind}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if rank[out[i].category] != rank[out[j].category] {
			return rank[out[i].category] < rank[out[j].category]
		}
		return out[i].kind.Priority() < out[j].kind.Priority()
	})
	return out
}

// printEntries prints entries aligned, under a header per category.
func printEntries(w io.Writer, entries []blockEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no blocks found")
		return
	}

	maxLen := 0
	for _, e := range entries {
		if n := len(e.id); n > maxLen {
			maxLen = n
		}
	}

	current := ""
	for i, e := range entries {
		if i == 0 || e.category != current {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, styleHeader.Render(e.category))
			current = e.category
		}
		fmt.Fprintf(w, "  %-*s  %s\n", maxLen, e.id, styleDim.Render("["+string(e.kind)+"] "+e.name))
	}
}
