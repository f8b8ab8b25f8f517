package blockdef

import (
	"fmt"
	"strings"
)

// WouldCreateCircularReference reports whether nesting childID under
// parentID in tree would make a block (transitively) contain itself.
//
// A child that does not occur in tree can never close a cycle.
func WouldCreateCircularReference(tree []NestedRef, parentID, childID string) bool {
	if parentID == childID {
		return true
	}
	child, ok := findRef(tree, childID)
	if !ok {
		return false
	}
	return containsRef(child.Children, parentID)
}

// findRef returns the first node named id, depth-first.
func findRef(tree []NestedRef, id string) (NestedRef, bool) {
	for _, n := range tree {
		if n.BlockID == id {
			return n, true
		}
		if found, ok := findRef(n.Children, id); ok {
			return found, true
		}
	}
	return NestedRef{}, false
}

func containsRef(tree []NestedRef, id string) bool {
	_, ok := findRef(tree, id)
	return ok
}

// Nest returns a copy of tree with child appended under the first node named
// parentID; an empty parentID appends at the top level. The edit is refused
// with ErrCycleDetected when it would nest a block inside itself.
func Nest(tree []NestedRef, parentID string, child NestedRef) ([]NestedRef, error) {
	if nestsItself(child, nil) {
		return nil, fmt.Errorf("nest %s: %w", child.BlockID, ErrCycleDetected)
	}
	if parentID == "" {
		return append(cloneRefs(tree), cloneRef(child)), nil
	}
	if WouldCreateCircularReference(tree, parentID, child.BlockID) || containsRef(child.Children, parentID) {
		return nil, fmt.Errorf("nest %s under %s: %w", child.BlockID, parentID, ErrCycleDetected)
	}
	out := cloneRefs(tree)
	if !appendUnder(out, parentID, child) {
		return nil, fmt.Errorf("nest %s under %s: %w: %s", child.BlockID, parentID, ErrUnknownBlock, parentID)
	}
	return out, nil
}

// nestsItself reports whether some node of n's subtree occurs below itself.
func nestsItself(n NestedRef, path []string) bool {
	for _, id := range path {
		if id == n.BlockID {
			return true
		}
	}
	path = append(path, n.BlockID)
	for _, c := range n.Children {
		if nestsItself(c, path) {
			return true
		}
	}
	return false
}

func appendUnder(tree []NestedRef, parentID string, child NestedRef) bool {
	for i := range tree {
		if tree[i].BlockID == parentID {
			tree[i].Children = append(tree[i].Children, cloneRef(child))
			return true
		}
		if appendUnder(tree[i].Children, parentID, child) {
			return true
		}
	}
	return false
}

func cloneRefs(tree []NestedRef) []NestedRef {
	if tree == nil {
		return nil
	}
	out := make([]NestedRef, len(tree))
	for i, n := range tree {
		out[i] = cloneRef(n)
	}
	return out
}

func cloneRef(n NestedRef) NestedRef {
	return NestedRef{BlockID: n.BlockID, Children: cloneRefs(n.Children)}
}

// CheckNesting expands every schema's default children through the default
// children of the schemas they reference and reports the first reference
// back to a block already on the expansion path, or to an unknown id.
func CheckNesting(schemas []Schema) error {
	byID := make(map[string]Schema, len(schemas))
	for _, s := range schemas {
		byID[s.ID] = s
	}
	for _, s := range schemas {
		children := s.DefaultChildren()
		if len(children) == 0 {
			continue
		}
		if err := checkNestedRefs(children, byID, []string{s.ID}); err != nil {
			return err
		}
	}
	return nil
}

func checkNestedRefs(refs []NestedRef, byID map[string]Schema, stack []string) error {
	for _, r := range refs {
		path := joinPath(strings.Join(stack, "."), r.BlockID)
		for _, s := range stack {
			if s == r.BlockID {
				return fmt.Errorf("phase=nesting path=%s: %w: %s", path, ErrCycleDetected, r.BlockID)
			}
		}
		def, ok := byID[r.BlockID]
		if !ok {
			return fmt.Errorf("phase=nesting path=%s: %w: %s", path, ErrUnknownBlock, r.BlockID)
		}

		newStack := append(append([]string(nil), stack...), r.BlockID)
		if err := checkNestedRefs(r.Children, byID, newStack); err != nil {
			return err
		}
		if err := checkNestedRefs(def.DefaultChildren(), byID, newStack); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}
