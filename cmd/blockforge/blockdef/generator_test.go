package blockdef

import (
	"testing"
)

func emit(t *testing.T, s Schema, inst Instance) Emission {
	t.Helper()
	gen := Synthesize(s)
	if gen == nil {
		t.Fatalf("no generator for %s", s.Kind)
	}
	return gen(inst)
}

func TestSetter(t *testing.T) {
	s := Schema{ID: "color", Name: "color", Kind: KindSetter, Config: &SetterConfig{}}
	got := emit(t, s, fields("value", "RED"))
	if got.Code != "set_color(agent, \"RED\");\n" || got.Expression {
		t.Fatalf("unexpected emission %+v", got)
	}

	s.Name = "Heart Rate"
	got = emit(t, s, fields("value", 72.0))
	if got.Code != "set_heart_rate(agent, \"72\");\n" {
		t.Fatalf("got %q", got.Code)
	}

	got = emit(t, s, fields())
	if got.Code != "set_heart_rate(agent, \"\");\n" {
		t.Fatalf("missing value: got %q", got.Code)
	}
}

func TestCreator(t *testing.T) {
	cfg := &CreatorConfig{Options: []Option{{Label: "Water", Value: "WATER"}}, CanHaveChildren: true}
	s := Schema{ID: "molecules", Name: "molecules", Kind: KindCreator, Config: cfg}

	t.Run("no children", func(t *testing.T) {
		got := emit(t, s, fields("count", 50.0, "type", "WATER"))
		if got.Code != "create_water(50, );\n" {
			t.Fatalf("got %q", got.Code)
		}
	})

	t.Run("with children", func(t *testing.T) {
		inst := fields("count", 3.0, "type", "Sea Salt")
		inst.statements = map[string]string{SlotDo: "set_color(agent, \"RED\");\n"}
		got := emit(t, s, inst)
		want := "create_sea_salt(3, (agent) => {\n  set_color(agent, \"RED\");\n});\n"
		if got.Code != want {
			t.Fatalf("want %q, got %q", want, got.Code)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		got := emit(t, s, fields())
		if got.Code != "create_water(0, );\n" {
			t.Fatalf("got %q", got.Code)
		}
		withDefault := *cfg
		withDefault.Default = floatPtr(10)
		got = emit(t, Schema{Kind: KindCreator, Config: &withDefault}, fields())
		if got.Code != "create_water(10, );\n" {
			t.Fatalf("got %q", got.Code)
		}
	})
}

func TestCreator_CollapsedUsesCachedChildren(t *testing.T) {
	s := Schema{ID: "m", Name: "m", Kind: KindCreator, Config: &CreatorConfig{
		Options: []Option{{Label: "Water", Value: "WATER"}}, CanHaveChildren: true,
	}}
	gen := Synthesize(s)

	inst := fields("count", 1.0, "type", "WATER")
	inst.statements = map[string]string{SlotDo: "grow();\n"}
	first := gen(inst).Code

	inst.statements = nil
	inst.collapsed = true
	if got := gen(inst).Code; got != first {
		t.Fatalf("collapsed block should reuse cached children: want %q, got %q", first, got)
	}

	inst.collapsed = false
	if got := gen(inst).Code; got != "create_water(1, );\n" {
		t.Fatalf("expanded block without children: got %q", got)
	}

	inst.collapsed = true
	if got := gen(inst).Code; got != "create_water(1, );\n" {
		t.Fatalf("cache must be dropped once children are removed: got %q", got)
	}
}

func TestAction_Fallback(t *testing.T) {
	s := Schema{ID: "jump", Name: "Jump", Kind: KindAction, Config: &ActionConfig{
		Parameters: []Parameter{{Name: "who", Kind: "select", LabelText: "to", LabelPosition: LabelSuffix}},
	}}
	if got := emit(t, s, fields("who", "Alice")).Code; got != "jump Alice to\n" {
		t.Fatalf("got %q", got)
	}

	s.Config = &ActionConfig{Parameters: []Parameter{
		{Name: "dist", Kind: "number", LabelText: "by"},
		{Name: "dir", Kind: "select", LabelText: "towards", LabelPosition: LabelPrefix},
		{Name: "unit", Kind: "select"},
	}}
	if got := emit(t, s, fields("dist", 0.0, "dir", "north", "unit", "")).Code; got != "jump by towards north\n" {
		t.Fatalf("falsy values must be omitted: got %q", got)
	}
}

func TestAction_Template(t *testing.T) {
	s := Schema{ID: "move", Name: "Move Forward", Kind: KindAction, Config: &ActionConfig{
		Template:   "${ACTION}(agent, ${steps}, \"${dir}\");",
		Parameters: []Parameter{{Name: "steps", Kind: "number"}, {Name: "dir", Kind: "select"}},
	}}
	got := emit(t, s, fields("steps", 4.0, "dir", "left"))
	if got.Code != "move_forward(agent, 4, \"left\");\n" {
		t.Fatalf("got %q", got.Code)
	}

	s.Config.(*ActionConfig).Template = "${ACTION}();\n"
	if got := emit(t, s, fields()).Code; got != "move_forward();\n" {
		t.Fatalf("trailing newline must not be doubled: got %q", got)
	}
}

func TestAction_Children(t *testing.T) {
	s := Schema{ID: "every", Name: "every tick", Kind: KindAction, Config: &ActionConfig{
		Template:        "on_tick(() => {\n${CHILDREN}});",
		CanHaveChildren: true,
	}}
	inst := fields()
	inst.statements = map[string]string{SlotDo: "grow();\n"}
	if got := emit(t, s, inst).Code; got != "on_tick(() => {\n  grow();\n});\n" {
		t.Fatalf("got %q", got)
	}

	s.Config = &ActionConfig{CanHaveChildren: true, Parameters: []Parameter{{Name: "n", Kind: "number", LabelText: "times", LabelPosition: LabelSuffix}}}
	inst.fields["n"] = 2.0
	if got := emit(t, s, inst).Code; got != "every_tick 2 times {\n  grow();\n}\n" {
		t.Fatalf("got %q", got)
	}
}

func TestAsk(t *testing.T) {
	s := Schema{ID: "ask", Name: "ask", Kind: KindAsk, Config: &AskConfig{
		TargetEntityName: "molecules", IncludeAllOption: true,
		Options: []Option{{Label: "Water", Value: "WATER"}},
	}}

	inst := fields("target", "all")
	inst.statements = map[string]string{SlotDo: "jump();\n"}
	if got := emit(t, s, inst).Code; got != "get_all_agents().forEach((agent) => {\n  jump();\n});\n" {
		t.Fatalf("got %q", got)
	}

	inst.fields["target"] = "WATER"
	if got := emit(t, s, inst).Code; got != "get_agents(\"WATER\").forEach((agent) => {\n  jump();\n});\n" {
		t.Fatalf("got %q", got)
	}

	// Unlike Creator, an empty body still produces the loop.
	if got := emit(t, s, fields("target", "WATER")).Code; got != "get_agents(\"WATER\").forEach((agent) => {\n});\n" {
		t.Fatalf("got %q", got)
	}

	if got := emit(t, s, fields()).Code; got != "get_all_agents().forEach((agent) => {\n});\n" {
		t.Fatalf("missing target: got %q", got)
	}
}

func TestCondition(t *testing.T) {
	s := Schema{ID: "touching", Name: "is touching", Kind: KindCondition, Config: &ConditionConfig{
		Options: []Option{{Label: "wall", Value: "wall"}},
	}}
	got := emit(t, s, fields("condition", "touching_wall(agent)"))
	if !got.Expression || got.Code != "touching_wall(agent)" || got.Precedence != PrecedenceNone {
		t.Fatalf("unexpected bare emission %+v", got)
	}

	s.Config = &ConditionConfig{
		Options:    []Option{{Label: "wall", Value: "wall"}},
		Template:   "is_touching(agent, \"${CONDITION}\", ${range})",
		Parameters: []Parameter{{Name: "range", Kind: "number"}},
	}
	got = emit(t, s, fields("condition", "wall", "range", 3.0))
	if !got.Expression || got.Code != "is_touching(agent, \"wall\", 3)" || got.Precedence != PrecedenceAtomic {
		t.Fatalf("unexpected templated emission %+v", got)
	}
}

func TestGlobalValue(t *testing.T) {
	s := Schema{ID: "speed", Name: "Speed", Kind: KindGlobalValue, Config: &GlobalValueConfig{GlobalName: "speed"}}
	got := emit(t, s, fields("value", "ignored"))
	if !got.Expression || got.Code != "get_global(\"speed\")" || got.Precedence != PrecedenceAtomic {
		t.Fatalf("unexpected emission %+v", got)
	}
}

func TestSynthesize_BuiltInHasNoGenerator(t *testing.T) {
	if gen := Synthesize(Schema{ID: "math_number", Kind: KindBuiltIn, Config: &BuiltInConfig{}}); gen != nil {
		t.Fatal("expected no generator for a built-in block")
	}
}

func TestSynthesize_UnknownKindEmitsNothing(t *testing.T) {
	gen := Synthesize(Schema{ID: "x", Kind: Kind("Loop")})
	if gen == nil {
		t.Fatal("expected a generator")
	}
	if got := gen(fields("value", "x")); got.Code != "" {
		t.Fatalf("got %q", got.Code)
	}
}

func TestSynthesize_NilInstanceDoesNotPanic(t *testing.T) {
	schemas := []Schema{
		{Name: "a", Kind: KindSetter, Config: &SetterConfig{}},
		{Name: "b", Kind: KindCreator, Config: &CreatorConfig{}},
		{Name: "c", Kind: KindAction, Config: &ActionConfig{Parameters: []Parameter{{Name: "p"}}}},
		{Name: "d", Kind: KindAsk, Config: &AskConfig{}},
		{Name: "e", Kind: KindCondition, Config: &ConditionConfig{Template: "${CONDITION}"}},
		{Name: "f", Kind: KindGlobalValue, Config: &GlobalValueConfig{}},
	}
	for _, s := range schemas {
		Synthesize(s)(nil)
	}
}
