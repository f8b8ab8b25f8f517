package blockdef

import (
	"fmt"
	"strings"
)

// Precedence is the binding strength of an emitted expression. Lower binds
// tighter; PrecedenceNone accepts any expression without parentheses.
type Precedence int

const (
	PrecedenceAtomic     Precedence = 0
	PrecedenceMember     Precedence = 2
	PrecedenceCall       Precedence = 2
	PrecedenceLogicalNot Precedence = 4
	PrecedenceRelational Precedence = 8
	PrecedenceEquality   Precedence = 9
	PrecedenceLogicalAnd Precedence = 13
	PrecedenceLogicalOr  Precedence = 14
	PrecedenceNone       Precedence = 99
)

// Emission is the output of one generator call: either statement text or an
// expression with its precedence.
type Emission struct {
	Code       string
	Expression bool
	Precedence Precedence
}

// Statement wraps statement code.
func Statement(code string) Emission {
	return Emission{Code: code}
}

// Expression wraps expression code with its precedence.
func Expression(code string, p Precedence) Emission {
	return Emission{Code: code, Expression: true, Precedence: p}
}

// Instance is the live view of one block in the editor's block tree.
// Child code is rendered by the caller before the generator asks for it.
type Instance interface {
	// ID identifies the block instance for the lifetime of the tree.
	ID() string
	// Field returns the current value of a field, or nil.
	Field(name string) any
	// Connected reports whether a block is attached to the slot.
	Connected(slot string) bool
	// StatementCode returns the rendered statement chain attached to slot.
	StatementCode(slot string) string
	// ValueCode returns the rendered expression attached to slot, wrapped
	// in parentheses when it binds looser than outer.
	ValueCode(slot string, outer Precedence) string
	// Collapsed reports whether the block is collapsed in the editor, in
	// which case its children may be hidden from the tree.
	Collapsed() bool
}

// Generator synthesizes code for one block instance.
type Generator func(inst Instance) Emission

// Synthesize builds the generator for s. BuiltIn blocks get no generator
// (nil); a kind this package does not know yields a generator that emits
// nothing.
func Synthesize(s Schema) Generator {
	var gen Generator
	switch c := s.Config.(type) {
	case *SetterConfig:
		gen = setterGenerator(s)
	case *CreatorConfig:
		gen = creatorGenerator(c)
	case *ActionConfig:
		gen = actionGenerator(s, c)
	case *AskConfig:
		gen = askGenerator(c)
	case *ConditionConfig:
		gen = conditionGenerator(c)
	case *GlobalValueConfig:
		gen = globalValueGenerator(c)
	case *BuiltInConfig:
		return nil
	default:
		gen = func(Instance) Emission { return Emission{} }
	}
	return guard(gen)
}

// guard keeps a generator total: a nil instance is treated as a block with
// no fields and no children.
func guard(gen Generator) Generator {
	return func(inst Instance) Emission {
		if inst == nil {
			inst = emptyInstance{}
		}
		return gen(inst)
	}
}

func setterGenerator(s Schema) Generator {
	fn := "set_" + Slug(s.Name)
	return func(inst Instance) Emission {
		value := fieldString(inst.Field(FieldValue))
		return Statement(fmt.Sprintf("%s(agent, \"%s\");\n", fn, value))
	}
}

func creatorGenerator(c *CreatorConfig) Generator {
	cache := newChildCache()
	return func(inst Instance) Emission {
		count := fieldString(inst.Field(FieldCount))
		if count == "" {
			count = defaultCount(c)
		}
		typ := fieldString(inst.Field(FieldType))
		if typ == "" && len(c.Options) > 0 {
			typ = c.Options[0].Value
		}

		callback := ""
		if body := cache.resolve(inst, SlotDo); body != "" {
			callback = "(agent) => {\n" + indent(body) + "}"
		}
		return Statement(fmt.Sprintf("create_%s(%s, %s);\n", Slug(typ), count, callback))
	}
}

func defaultCount(c *CreatorConfig) string {
	if c.Default != nil {
		return fieldString(*c.Default)
	}
	return "0"
}

func actionGenerator(s Schema, c *ActionConfig) Generator {
	action := Slug(s.Name)
	cache := newChildCache()
	return func(inst Instance) Emission {
		var body string
		if c.CanHaveChildren {
			body = cache.resolve(inst, SlotDo)
		}

		if c.Template != "" {
			code := Substitute(c.Template, c.Parameters, inst.Field)
			code = strings.ReplaceAll(code, Placeholder(PlaceholderAction), action)
			if c.CanHaveChildren {
				code = strings.ReplaceAll(code, Placeholder(PlaceholderChildren), indent(body))
			}
			if !strings.HasSuffix(code, "\n") {
				code += "\n"
			}
			return Statement(code)
		}

		parts := []string{action}
		for _, p := range c.Parameters {
			if p.Position() == LabelPrefix && p.LabelText != "" {
				parts = append(parts, p.LabelText)
			}
			if v := inst.Field(p.Name); !isFalsy(v) {
				parts = append(parts, fieldString(v))
			}
			if p.Position() == LabelSuffix && p.LabelText != "" {
				parts = append(parts, p.LabelText)
			}
		}
		code := strings.Join(parts, " ")
		if body != "" {
			code += " {\n" + indent(body) + "}"
		}
		return Statement(code + "\n")
	}
}

func askGenerator(c *AskConfig) Generator {
	cache := newChildCache()
	return func(inst Instance) Emission {
		target := fieldString(inst.Field(FieldTarget))
		if target == "" {
			switch {
			case c.IncludeAllOption:
				target = TargetAll
			case len(c.Options) > 0:
				target = c.Options[0].Value
			}
		}

		collection := "get_all_agents()"
		if target != TargetAll {
			collection = fmt.Sprintf("get_agents(\"%s\")", target)
		}
		body := cache.resolve(inst, SlotDo)
		return Statement(collection + ".forEach((agent) => {\n" + indent(body) + "});\n")
	}
}

func conditionGenerator(c *ConditionConfig) Generator {
	return func(inst Instance) Emission {
		value := fieldString(inst.Field(FieldCondition))
		if c.Template == "" {
			return Expression(value, PrecedenceNone)
		}
		code := Substitute(c.Template, c.Parameters, inst.Field)
		code = strings.ReplaceAll(code, Placeholder(PlaceholderCondition), value)
		return Expression(code, PrecedenceAtomic)
	}
}

func globalValueGenerator(c *GlobalValueConfig) Generator {
	code := fmt.Sprintf("get_global(\"%s\")", c.GlobalName)
	return func(Instance) Emission {
		return Expression(code, PrecedenceAtomic)
	}
}

// childCache remembers the last rendered child code per block instance so
// that a collapsed block whose children are hidden still emits them.
//
// A generator is only ever called from the goroutine that walks the block
// tree, so the map needs no lock.
type childCache struct {
	code map[string]string
}

func newChildCache() *childCache {
	return &childCache{code: map[string]string{}}
}

func (c *childCache) resolve(inst Instance, slot string) string {
	id := inst.ID()
	if inst.Connected(slot) {
		code := inst.StatementCode(slot)
		c.code[id] = code
		return code
	}
	if inst.Collapsed() {
		return c.code[id]
	}
	delete(c.code, id)
	return ""
}

type emptyInstance struct{}

func (emptyInstance) ID() string                          { return "" }
func (emptyInstance) Field(string) any                    { return nil }
func (emptyInstance) Connected(string) bool               { return false }
func (emptyInstance) StatementCode(string) string         { return "" }
func (emptyInstance) ValueCode(string, Precedence) string { return "" }
func (emptyInstance) Collapsed() bool                     { return false }
