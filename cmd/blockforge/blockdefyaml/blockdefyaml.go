package blockdefyaml

import (
	"fmt"

	"blockforge/cmd/blockforge/blockdef"

	"gopkg.in/yaml.v3"
)

// Two YAML forms are supported:
//   - Mapping form: a mapping with a "blocks" key holding the list.
//   - Shorthand form: a bare sequence of block definitions.
//
// Either way the result is the generic value blockdef.ValidateSchemas
// expects: []any of map[string]any.

// Parse decodes one YAML (or JSON) document into a generic definition list.
func Parse(in []byte) (any, error) {
	var docNode yaml.Node
	if err := yaml.Unmarshal(in, &docNode); err != nil {
		return nil, fmt.Errorf("phase=parse path=<doc>: %w", err)
	}
	if len(docNode.Content) == 0 {
		return []any{}, nil
	}

	list := blocksNode(docNode.Content[0])

	var v any
	if err := list.Decode(&v); err != nil {
		return nil, fmt.Errorf("phase=parse path=<doc>: %w", err)
	}
	return normalize(v), nil
}

// blocksNode returns the node holding the definition list. Anything other
// than a sequence or a mapping with a "blocks" key is returned as is, so
// the validator rejects it the way it rejects a non-array JSON document.
func blocksNode(root *yaml.Node) *yaml.Node {
	if root.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value == "blocks" {
				return root.Content[i+1]
			}
		}
	}
	return root
}

// normalize converts the map[interface{}]interface{} values yaml.v3 may
// produce for non-string keys into map[string]any.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = normalize(e)
		}
		return x
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range x {
			x[i] = normalize(e)
		}
		return x
	default:
		return v
	}
}

// ParseMany parses every input and concatenates their definition lists in
// input order. Duplicate ids across files are left for the validator.
func ParseMany(inputs ...[]byte) (any, error) {
	all := []any{}
	for i, in := range inputs {
		v, err := Parse(in)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i+1, err)
		}
		items, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("input %d: block definitions must be an array", i+1)
		}
		all = append(all, items...)
	}
	return all, nil
}

// Build parses the inputs and registers them through a new engine on reg.
func Build(reg *blockdef.Registry, inputs ...[]byte) ([]blockdef.Schema, error) {
	v, err := ParseMany(inputs...)
	if err != nil {
		return nil, err
	}
	return blockdef.NewEngine(reg).Build(v)
}

// Append adds item to the definition list of a YAML document, preserving
// the document's comments and key order. An empty input starts a new
// shorthand document.
func Append(in []byte, item any) ([]byte, error) {
	var docNode yaml.Node
	if err := yaml.Unmarshal(in, &docNode); err != nil {
		return nil, fmt.Errorf("phase=parse path=<doc>: %w", err)
	}

	var entry yaml.Node
	if err := entry.Encode(item); err != nil {
		return nil, err
	}

	if len(docNode.Content) == 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Content: []*yaml.Node{&entry}}
		return yaml.Marshal(seq)
	}

	list := blocksNode(docNode.Content[0])
	if list.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("phase=parse path=blocks: block definitions must be a sequence")
	}
	list.Content = append(list.Content, &entry)
	return yaml.Marshal(&docNode)
}
