package blockdef

// Engine runs the authoring pipeline: structural validation, typed decoding
// and registration.
type Engine struct {
	registry *Registry
}

func NewEngine(reg *Registry) *Engine {
	return &Engine{registry: reg}
}

// Build registers the definitions in raw, a decoded JSON or YAML value.
// On any error nothing is registered, so the registry keeps its previous
// known-good state.
func (e *Engine) Build(raw any) ([]Schema, error) {
	if err := ValidateSchemas(raw); err != nil {
		return nil, err
	}

	schemas, err := DecodeSchemas(raw)
	if err != nil {
		return nil, err
	}

	e.registry.Compile(schemas)
	return e.registry.Schemas(), nil
}

// Registry returns the registry the engine writes into.
func (e *Engine) Registry() *Registry {
	return e.registry
}
