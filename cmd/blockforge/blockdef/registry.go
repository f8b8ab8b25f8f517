package blockdef

import (
	"io"
	"log/slog"
)

// Editor is the port to the visual editor's two lookup tables: block
// shapes and code generators, both keyed by block id.
type Editor interface {
	RegisterShape(id string, layout Layout)
	RegisterGenerator(id string, gen Generator)
	// Unregister drops a shape and generator previously registered under id.
	Unregister(id string)
	// HasShape reports whether the editor can draw id, including blocks the
	// host ships with.
	HasShape(id string) bool
}

// Registry compiles schemas into editor registrations.
//
// Registering an id again replaces its shape and generator; Compile also
// unregisters ids that disappeared from the schema set, so a generator for
// an edited or removed schema is never invoked again.
type Registry struct {
	editor  Editor
	logger  *slog.Logger
	owned   map[string]struct{}
	schemas []Schema
	index   map[string]int
}

// NewRegistry returns a Registry writing into editor. A nil logger discards
// diagnostics.
func NewRegistry(editor Editor, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		editor: editor,
		logger: logger,
		owned:  make(map[string]struct{}),
		index:  make(map[string]int),
	}
}

// Register installs a single schema.
func (r *Registry) Register(s Schema) {
	if s.Kind == KindBuiltIn {
		if _, ok := r.owned[s.ID]; ok {
			// A custom block became a category wrapper: drop our shape so
			// the host's own one shows through.
			r.editor.Unregister(s.ID)
			delete(r.owned, s.ID)
		}
		if !r.editor.HasShape(s.ID) {
			r.logger.Warn("built-in block is not provided by the editor", "id", s.ID, "category", s.Category)
		}
		r.record(s)
		return
	}

	layout, _ := BuildLayout(s)
	r.editor.RegisterShape(s.ID, layout)
	r.editor.RegisterGenerator(s.ID, Synthesize(s))
	r.owned[s.ID] = struct{}{}
	r.record(s)
	r.logger.Debug("registered block", "id", s.ID, "kind", s.Kind)
}

func (r *Registry) record(s Schema) {
	if i, ok := r.index[s.ID]; ok {
		r.schemas[i] = s
		return
	}
	r.index[s.ID] = len(r.schemas)
	r.schemas = append(r.schemas, s)
}

// Compile makes schemas the complete registered set: each schema is
// registered in order (Ask options resolved against Creators first) and
// every previously registered id absent from schemas is unregistered.
func (r *Registry) Compile(schemas []Schema) {
	schemas = ResolveAskOptions(schemas)

	keep := make(map[string]struct{}, len(schemas))
	for _, s := range schemas {
		keep[s.ID] = struct{}{}
	}
	for id := range r.owned {
		if _, ok := keep[id]; !ok {
			r.editor.Unregister(id)
			delete(r.owned, id)
			r.logger.Debug("unregistered block", "id", id)
		}
	}

	r.schemas = nil
	r.index = make(map[string]int, len(schemas))
	for _, s := range schemas {
		r.Register(s)
	}
}

// Schemas returns the registered schemas in registration order.
func (r *Registry) Schemas() []Schema {
	return append([]Schema(nil), r.schemas...)
}

// Get returns the registered schema for id.
func (r *Registry) Get(id string) (Schema, bool) {
	i, ok := r.index[id]
	if !ok {
		return Schema{}, false
	}
	return r.schemas[i], true
}
