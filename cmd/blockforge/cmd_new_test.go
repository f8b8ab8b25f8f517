package main

import (
	"errors"
	"strings"
	"testing"

	"blockforge/cmd/blockforge/blockdef"
	"blockforge/cmd/blockforge/blockdefyaml"
)

func TestParseOptions(t *testing.T) {
	got, err := parseOptions(" Red=RED, blue ,, Big Salt = SALT ")
	if err != nil {
		t.Fatal(err)
	}
	want := []blockdef.Option{
		{Label: "Red", Value: "RED"},
		{Label: "blue", Value: "blue"},
		{Label: "Big Salt", Value: "SALT"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("option %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseOptions_Errors(t *testing.T) {
	for _, in := range []string{"", " , ", "=RED", "Red="} {
		if _, err := parseOptions(in); err == nil {
			t.Errorf("parseOptions(%q): expected error", in)
		}
	}
}

// ----------------------------------------------------------------------------
// newAnswers.schema
// ----------------------------------------------------------------------------

func TestAnswersSchema_Setter(t *testing.T) {
	a := newAnswers{ID: " color ", Name: "color", Category: "Agents", Color: "#fff",
		Kind: string(blockdef.KindSetter), Options: "red=RED"}
	s, err := a.schema()
	if err != nil {
		t.Fatal(err)
	}
	if s.ID != "color" {
		t.Errorf("id not trimmed: %q", s.ID)
	}
	c, ok := s.Config.(*blockdef.SetterConfig)
	if !ok || len(c.Options) != 1 || c.Options[0].Value != "RED" {
		t.Fatalf("config = %#v", s.Config)
	}
	if err := blockdef.CheckConfig(s); err != nil {
		t.Fatal(err)
	}
}

func TestAnswersSchema_NumberSetterHasNoOptions(t *testing.T) {
	a := newAnswers{ID: "size", Name: "size", Category: "Agents", Color: "#fff",
		Kind: string(blockdef.KindSetter), UseNumberInput: true}
	s, err := a.schema()
	if err != nil {
		t.Fatal(err)
	}
	if err := blockdef.CheckConfig(s); err != nil {
		t.Fatal(err)
	}
}

func TestAnswersSchema_PerKind(t *testing.T) {
	tests := []struct {
		answers newAnswers
		check   func(blockdef.Config) bool
	}{
		{
			newAnswers{Kind: "Creator", Options: "water=WATER", CanHaveChildren: true},
			func(c blockdef.Config) bool {
				cc, ok := c.(*blockdef.CreatorConfig)
				return ok && cc.CanHaveChildren && len(cc.Options) == 1
			},
		},
		{
			newAnswers{Kind: "Action", Template: "${ACTION}();"},
			func(c blockdef.Config) bool {
				ac, ok := c.(*blockdef.ActionConfig)
				return ok && ac.Template == "${ACTION}();"
			},
		},
		{
			newAnswers{Kind: "Ask", Target: " molecules ", IncludeAll: true},
			func(c blockdef.Config) bool {
				ac, ok := c.(*blockdef.AskConfig)
				return ok && ac.TargetEntityName == "molecules" && ac.IncludeAllOption
			},
		},
		{
			newAnswers{Kind: "Condition", Options: "wall"},
			func(c blockdef.Config) bool {
				cc, ok := c.(*blockdef.ConditionConfig)
				return ok && len(cc.Options) == 1 && cc.Template == ""
			},
		},
		{
			newAnswers{Kind: "GlobalValue", GlobalName: "temp", ValueType: "string"},
			func(c blockdef.Config) bool {
				gc, ok := c.(*blockdef.GlobalValueConfig)
				return ok && gc.GlobalName == "temp" && gc.ValueType == "string"
			},
		},
		{
			newAnswers{Kind: "BuiltIn"},
			func(c blockdef.Config) bool {
				_, ok := c.(*blockdef.BuiltInConfig)
				return ok
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.answers.Kind, func(t *testing.T) {
			s, err := tt.answers.schema()
			if err != nil {
				t.Fatal(err)
			}
			if !tt.check(s.Config) {
				t.Fatalf("unexpected config %#v", s.Config)
			}
		})
	}
}

func TestAnswersSchema_UnknownKind(t *testing.T) {
	_, err := newAnswers{Kind: "Teleporter"}.schema()
	if !errors.Is(err, blockdef.ErrUnknownKind) {
		t.Fatalf("got %v", err)
	}
}

// ----------------------------------------------------------------------------
// appendDefinition
// ----------------------------------------------------------------------------

func newItem(t *testing.T, id string) map[string]any {
	t.Helper()
	s := blockdef.Schema{ID: id, Name: id, Category: "Agents", Color: "#fff",
		Kind: blockdef.KindSetter, Config: &blockdef.SetterConfig{Options: []blockdef.Option{{Label: "red", Value: "RED"}}}}
	item, err := blockdef.EncodeSchema(s)
	if err != nil {
		t.Fatal(err)
	}
	return item
}

func TestAppendDefinition_YAMLKeepsComments(t *testing.T) {
	in := []byte("# my blocks\nblocks:\n  - id: a\n    name: a\n    category: Agents\n    color: \"#fff\"\n    kind: BuiltIn\n    config: {}\n")
	out, err := appendDefinition("blocks.yml", in, newItem(t, "b"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "# my blocks") {
		t.Errorf("comment lost:\n%s", out)
	}
	v, err := blockdefyaml.Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(v.([]any)); n != 2 {
		t.Fatalf("got %d items", n)
	}
}

func TestAppendDefinition_JSON(t *testing.T) {
	out, err := appendDefinition("blocks.json", nil, newItem(t, "a"))
	if err != nil {
		t.Fatal(err)
	}
	out, err = appendDefinition("blocks.json", out, newItem(t, "b"))
	if err != nil {
		t.Fatal(err)
	}
	v, err := blockdef.ParseJSON(out)
	if err != nil {
		t.Fatal(err)
	}
	items := v.([]any)
	if len(items) != 2 || items[1].(map[string]any)["id"] != "b" {
		t.Fatalf("got %v", items)
	}
}

func TestAppendDefinition_RejectsDuplicate(t *testing.T) {
	for _, path := range []string{"blocks.yml", "blocks.json"} {
		out, err := appendDefinition(path, nil, newItem(t, "a"))
		if err != nil {
			t.Fatal(err)
		}
		_, err = appendDefinition(path, out, newItem(t, "a"))
		if !errors.Is(err, blockdef.ErrDuplicateID) {
			t.Errorf("%s: got %v", path, err)
		}
	}
}

func TestAppendDefinition_JSONNotArray(t *testing.T) {
	_, err := appendDefinition("blocks.json", []byte(`{"blocks": []}`), newItem(t, "a"))
	if err == nil {
		t.Fatal("expected error")
	}
}
