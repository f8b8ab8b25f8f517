package blockdef

import (
	"strings"
	"testing"
)

func mustContain(t *testing.T, got string, subs ...string) {
	t.Helper()
	for _, sub := range subs {
		if !strings.Contains(got, sub) {
			t.Fatalf("expected %q to contain %q", got, sub)
		}
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

// fakeInstance is a hand-built block instance.
type fakeInstance struct {
	id         string
	fields     map[string]any
	statements map[string]string
	values     map[string]string
	collapsed  bool
}

func (f *fakeInstance) ID() string { return f.id }

func (f *fakeInstance) Field(name string) any { return f.fields[name] }

func (f *fakeInstance) Connected(slot string) bool {
	_, s := f.statements[slot]
	_, v := f.values[slot]
	return s || v
}

func (f *fakeInstance) StatementCode(slot string) string { return f.statements[slot] }

func (f *fakeInstance) ValueCode(slot string, _ Precedence) string { return f.values[slot] }

func (f *fakeInstance) Collapsed() bool { return f.collapsed }

func fields(kv ...any) *fakeInstance {
	inst := &fakeInstance{id: "b1", fields: map[string]any{}}
	for i := 0; i+1 < len(kv); i += 2 {
		inst.fields[kv[i].(string)] = kv[i+1]
	}
	return inst
}

// rawBlock builds the generic form of a valid definition.
func rawBlock(id, kind string) map[string]any {
	return map[string]any{
		"id":       id,
		"name":     id,
		"category": "Agents",
		"color":    "#aa0000",
		"kind":     kind,
		"config":   map[string]any{},
	}
}

func mustDecode(t *testing.T, items ...map[string]any) []Schema {
	t.Helper()
	raw := make([]any, len(items))
	for i, it := range items {
		raw[i] = it
	}
	schemas, err := DecodeSchemas(raw)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	return schemas
}
