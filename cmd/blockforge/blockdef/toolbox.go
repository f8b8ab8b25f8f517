package blockdef

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
)

// kindPriority orders blocks inside a toolbox category.
var kindPriority = map[Kind]int{
	KindCreator:     0,
	KindSetter:      1,
	KindAsk:         2,
	KindAction:      3,
	KindCondition:   4,
	KindBuiltIn:     5,
	KindGlobalValue: 6,
}

// Priority is the position of k's blocks within a toolbox category.
func (k Kind) Priority() int {
	if p, ok := kindPriority[k]; ok {
		return p
	}
	return len(kindPriority)
}

// AssembleToolbox appends a block entry for every schema to the top-level
// category of doc whose name matches the schema's category, after whatever
// the category already lists. Within a category entries follow kind
// priority, then input order.
//
// It never fails: a document that cannot be assembled is returned
// unchanged, and every problem is reported as a diagnostic (and logged at
// warn level when logger is not nil).
func AssembleToolbox(doc []byte, schemas []Schema, logger *slog.Logger) ([]byte, []string) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	var diags []string
	report := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		diags = append(diags, msg)
		logger.Warn(msg)
	}

	var root map[string]any
	if err := decodeNumbers(doc, &root); err != nil || root == nil {
		report("toolbox: cannot parse document: %v", err)
		return doc, diags
	}
	contents, ok := root["contents"].([]any)
	if !ok {
		report("toolbox: document has no contents array")
		return doc, diags
	}

	order, groups := groupByCategory(schemas)
	matched := map[string]bool{}

	for i, node := range contents {
		cat, ok := node.(map[string]any)
		if !ok {
			continue
		}
		name, _ := cat["name"].(string)
		group, ok := groups[name]
		if name == "" || !ok {
			continue
		}
		if _, dynamic := cat["custom"]; dynamic {
			report("toolbox: category %q is dynamic and cannot hold blocks", name)
			matched[name] = true
			continue
		}

		var existing []any
		switch c := cat["contents"].(type) {
		case nil:
		case []any:
			existing = c
		default:
			report("toolbox: category %q has no contents array", name)
			return doc, diags
		}

		entries := make([]any, 0, len(existing)+len(group))
		entries = append(entries, existing...)
		for _, s := range group {
			entries = append(entries, toolboxEntry(s))
		}
		updated := make(map[string]any, len(cat))
		for k, v := range cat {
			updated[k] = v
		}
		updated["contents"] = entries
		contents[i] = updated
		matched[name] = true
	}

	for _, name := range order {
		if matched[name] {
			continue
		}
		for _, s := range groups[name] {
			report("toolbox: block %s: no toolbox category named %q", s.ID, name)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		report("toolbox: cannot encode document: %v", err)
		return doc, diags
	}
	return buf.Bytes(), diags
}

// groupByCategory returns category names in first-seen order and the
// schemas of each category sorted by kind priority.
func groupByCategory(schemas []Schema) ([]string, map[string][]Schema) {
	var order []string
	groups := map[string][]Schema{}
	for _, s := range schemas {
		if _, ok := groups[s.Category]; !ok {
			order = append(order, s.Category)
		}
		groups[s.Category] = append(groups[s.Category], s)
	}
	for _, g := range groups {
		sort.SliceStable(g, func(i, j int) bool {
			return g[i].Kind.Priority() < g[j].Kind.Priority()
		})
	}
	return order, groups
}

// toolboxEntry builds {kind: "block", type: id} plus block-specific extras:
// a BuiltIn's toolbox configuration and any default children.
func toolboxEntry(s Schema) map[string]any {
	entry := map[string]any{}
	if c, ok := s.Config.(*BuiltInConfig); ok {
		for k, v := range c.Toolbox {
			entry[k] = v
		}
	}
	if children := s.DefaultChildren(); len(children) > 0 {
		inputs := map[string]any{}
		if preset, ok := entry["inputs"].(map[string]any); ok {
			for k, v := range preset {
				inputs[k] = v
			}
		}
		inputs[SlotDo] = map[string]any{"block": stackJSON(children)}
		entry["inputs"] = inputs
	}
	entry["kind"] = "block"
	entry["type"] = s.ID
	return entry
}

// stackJSON serializes refs as a statement stack linked through "next".
func stackJSON(refs []NestedRef) map[string]any {
	if len(refs) == 0 {
		return nil
	}
	b := map[string]any{"type": refs[0].BlockID}
	if len(refs[0].Children) > 0 {
		b["inputs"] = map[string]any{SlotDo: map[string]any{"block": stackJSON(refs[0].Children)}}
	}
	if len(refs) > 1 {
		b["next"] = map[string]any{"block": stackJSON(refs[1:])}
	}
	return b
}
