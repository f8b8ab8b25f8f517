package blockdef

import "fmt"

// requiredFields is checked in this order, so the reported field is stable.
var requiredFields = []string{"category", "color", "config", "id", "name", "kind"}

// ValidateSchemas checks an arbitrary decoded JSON value (as produced by
// encoding/json or yaml.v3 into interface{}) for the structure of a block
// definition list. It reports only the first offending item.
//
// The returned error is a *ValidationError; nil means the value is valid.
func ValidateSchemas(v any) error {
	items, ok := v.([]any)
	if !ok {
		return &ValidationError{Msg: "block definitions must be an array"}
	}

	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if err := validateRawSchema(item, i+1, seen); err != nil {
			return err
		}
	}
	return nil
}

func validateRawSchema(item any, index int, seen map[string]struct{}) error {
	obj, ok := item.(map[string]any)
	if !ok {
		return &ValidationError{Index: index, Msg: "must be an object"}
	}

	for _, f := range requiredFields {
		if _, present := obj[f]; !present {
			return &ValidationError{Index: index, Field: f, Msg: fmt.Sprintf("missing required field %q", f)}
		}
	}

	id, ok := nonEmptyString(obj["id"])
	if !ok {
		return &ValidationError{Index: index, Field: "id", Msg: "id must be a non-empty string"}
	}
	if _, dup := seen[id]; dup {
		return &ValidationError{Index: index, Field: "id", Msg: fmt.Sprintf("duplicate id %q", id), Err: ErrDuplicateID}
	}
	seen[id] = struct{}{}

	kind, _ := obj["kind"].(string)
	if !Kind(kind).Valid() {
		return &ValidationError{Index: index, Field: "kind", Msg: fmt.Sprintf("invalid kind %v", describe(obj["kind"])), Err: ErrUnknownKind}
	}

	for _, f := range []string{"name", "category", "color"} {
		if _, ok := nonEmptyString(obj[f]); !ok {
			return &ValidationError{Index: index, Field: f, Msg: f + " must be a non-empty string"}
		}
	}

	if _, ok := obj["config"].(map[string]any); !ok {
		return &ValidationError{Index: index, Field: "config", Msg: "config must be an object"}
	}
	return nil
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// describe renders an untrusted value for an error message.
func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
