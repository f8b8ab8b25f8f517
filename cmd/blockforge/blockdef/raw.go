package blockdef

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// rawSchema is the wire form of a Schema before its config is decoded
// according to its kind.
type rawSchema struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Color    string          `json:"color"`
	Kind     Kind            `json:"kind"`
	Config   json.RawMessage `json:"config"`
}

// ParseJSON decodes a JSON definition list into a generic value suitable
// for ValidateSchemas.
func ParseJSON(data []byte) (any, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("phase=parse path=<doc>: %w", err)
	}
	return v, nil
}

// DecodeSchemas converts an already validated generic value into typed
// schemas. Values that fail ValidateSchemas are rejected first.
func DecodeSchemas(v any) ([]Schema, error) {
	if err := ValidateSchemas(v); err != nil {
		return nil, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("phase=decode path=<doc>: %w", err)
	}
	var raws []rawSchema
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("phase=decode path=<doc>: %w", err)
	}

	out := make([]Schema, 0, len(raws))
	for _, r := range raws {
		cfg, err := decodeConfig(r.Kind, r.Config)
		if err != nil {
			return nil, fmt.Errorf("phase=decode path=%s: %w: %v", r.ID, ErrInvalidConfig, err)
		}
		out = append(out, Schema{
			ID:       r.ID,
			Name:     r.Name,
			Category: r.Category,
			Color:    r.Color,
			Kind:     r.Kind,
			Config:   cfg,
		})
	}
	return out, nil
}

func decodeConfig(kind Kind, data json.RawMessage) (Config, error) {
	var cfg Config
	switch kind {
	case KindSetter:
		cfg = &SetterConfig{}
	case KindCreator:
		cfg = &CreatorConfig{}
	case KindAction:
		cfg = &ActionConfig{}
	case KindAsk:
		cfg = &AskConfig{}
	case KindCondition:
		cfg = &ConditionConfig{}
	case KindGlobalValue:
		cfg = &GlobalValueConfig{}
	case KindBuiltIn:
		cfg = &BuiltInConfig{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EncodeSchema returns the generic wire form of s, the inverse of DecodeSchemas
// for a single item.
func EncodeSchema(s Schema) (map[string]any, error) {
	var cfg any = map[string]any{}
	if s.Config != nil {
		cfg = s.Config
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var config map[string]any
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return map[string]any{
		"id":       s.ID,
		"name":     s.Name,
		"category": s.Category,
		"color":    s.Color,
		"kind":     string(s.Kind),
		"config":   config,
	}, nil
}

// UnmarshalJSON accepts numeric option values as well as strings, since
// authors frequently write `value: 3` in YAML.
func (o *Option) UnmarshalJSON(data []byte) error {
	var wire struct {
		Label json.RawMessage `json:"label"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	label, err := scalarString(wire.Label)
	if err != nil {
		return fmt.Errorf("option label: %w", err)
	}
	value, err := scalarString(wire.Value)
	if err != nil {
		return fmt.Errorf("option value: %w", err)
	}
	o.Label, o.Value = label, value
	return nil
}

func scalarString(data json.RawMessage) (string, error) {
	if len(data) == 0 || string(data) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		return n.String(), nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		return fmt.Sprint(b), nil
	}
	return "", fmt.Errorf("expected a string or number, got %s", data)
}
