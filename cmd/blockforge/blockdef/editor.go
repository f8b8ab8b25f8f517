package blockdef

import "sort"

// MemoryEditor is an in-process Editor. Host blocks live in their own
// tables: registrations shadow them and Unregister never removes them.
type MemoryEditor struct {
	shapes         map[string]Layout
	generators     map[string]Generator
	hostShapes     map[string]Layout
	hostGenerators map[string]Generator
}

// NewMemoryEditor returns an editor with no blocks at all.
func NewMemoryEditor() *MemoryEditor {
	return &MemoryEditor{
		shapes:         make(map[string]Layout),
		generators:     make(map[string]Generator),
		hostShapes:     make(map[string]Layout),
		hostGenerators: make(map[string]Generator),
	}
}

// NewHostEditor returns an editor preloaded with the standard host blocks.
func NewHostEditor() *MemoryEditor {
	e := NewMemoryEditor()
	for _, hb := range hostBlocks() {
		e.RegisterHost(hb.id, hb.layout, hb.gen)
	}
	return e
}

// RegisterHost installs a block that ships with the editor.
func (e *MemoryEditor) RegisterHost(id string, layout Layout, gen Generator) {
	e.hostShapes[id] = layout
	e.hostGenerators[id] = gen
}

func (e *MemoryEditor) RegisterShape(id string, layout Layout) {
	e.shapes[id] = layout
}

func (e *MemoryEditor) RegisterGenerator(id string, gen Generator) {
	if gen == nil {
		delete(e.generators, id)
		return
	}
	e.generators[id] = gen
}

func (e *MemoryEditor) Unregister(id string) {
	delete(e.shapes, id)
	delete(e.generators, id)
}

func (e *MemoryEditor) HasShape(id string) bool {
	_, ok := e.Shape(id)
	return ok
}

// Shape returns the active layout for id.
func (e *MemoryEditor) Shape(id string) (Layout, bool) {
	if l, ok := e.shapes[id]; ok {
		return l, true
	}
	l, ok := e.hostShapes[id]
	return l, ok
}

// Generator returns the active generator for id.
func (e *MemoryEditor) Generator(id string) (Generator, bool) {
	if g, ok := e.generators[id]; ok {
		return g, true
	}
	g, ok := e.hostGenerators[id]
	return g, ok
}

// IDs returns the sorted ids of every registered (non-host) shape.
func (e *MemoryEditor) IDs() []string {
	ids := make([]string, 0, len(e.shapes))
	for id := range e.shapes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
