package blockdef

import (
	"fmt"
	"strings"
)

// CheckConfig enforces the kind-specific requirements of a structurally
// valid schema. The authoring layer runs it before a definition is saved;
// the Registry assumes it has passed.
func CheckConfig(s Schema) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("phase=config path=%s: %w: %s", s.ID, ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	switch c := s.Config.(type) {
	case *SetterConfig:
		if c.UseNumberInput && len(c.Options) > 0 {
			return fail("setter cannot combine options and useNumberInput")
		}
		if !c.UseNumberInput {
			if err := checkOptions(c.Options); err != nil {
				return fail("%v", err)
			}
		}

	case *CreatorConfig:
		if err := checkOptions(c.Options); err != nil {
			return fail("%v", err)
		}
		if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
			return fail("min %v is greater than max %v", *c.Min, *c.Max)
		}
		if c.Default != nil {
			if c.Min != nil && *c.Default < *c.Min {
				return fail("default %v is below min %v", *c.Default, *c.Min)
			}
			if c.Max != nil && *c.Default > *c.Max {
				return fail("default %v is above max %v", *c.Default, *c.Max)
			}
		}
		if len(c.DefaultChildren) > 0 && !c.CanHaveChildren {
			return fail("defaultChildren requires canHaveChildren")
		}

	case *ActionConfig:
		if c.Template == "" && len(c.Parameters) == 0 {
			return fail("action needs a template or at least one parameter")
		}
		if err := checkParameters(c.Parameters); err != nil {
			return fail("%v", err)
		}
		if err := checkPlaceholders(c.Template, c.Parameters, PlaceholderAction, PlaceholderChildren); err != nil {
			return fail("%v", err)
		}
		if len(c.DefaultChildren) > 0 && !c.CanHaveChildren {
			return fail("defaultChildren requires canHaveChildren")
		}

	case *AskConfig:
		if strings.TrimSpace(c.TargetEntityName) == "" {
			return fail("ask needs a targetEntityName")
		}

	case *ConditionConfig:
		if err := checkOptions(c.Options); err != nil {
			return fail("%v", err)
		}
		switch c.LabelPosition {
		case "", LabelPrefix, LabelSuffix:
		default:
			return fail("labelPosition must be prefix or suffix (got %q)", c.LabelPosition)
		}
		if err := checkParameters(c.Parameters); err != nil {
			return fail("%v", err)
		}
		if err := checkPlaceholders(c.Template, c.Parameters, PlaceholderCondition); err != nil {
			return fail("%v", err)
		}

	case *GlobalValueConfig:
		if strings.TrimSpace(c.GlobalName) == "" {
			return fail("globalName must not be empty")
		}
		switch c.ValueType {
		case "", "number", "string":
		default:
			return fail("valueType must be number or string (got %q)", c.ValueType)
		}

	case *BuiltInConfig:
		// Nothing to check: the host editor owns the block.

	default:
		return fail("unsupported kind %q", s.Kind)
	}
	return nil
}

// CheckAll runs CheckConfig over every schema, then CheckNesting.
func CheckAll(schemas []Schema) error {
	for _, s := range schemas {
		if err := CheckConfig(s); err != nil {
			return err
		}
	}
	return CheckNesting(schemas)
}

func checkOptions(opts []Option) error {
	if len(opts) == 0 {
		return fmt.Errorf("at least one option is required")
	}
	for i, o := range opts {
		if o.Label == "" || o.Value == "" {
			return fmt.Errorf("option %d needs a label and a value", i+1)
		}
	}
	return nil
}

func checkParameters(params []Parameter) error {
	seen := map[string]struct{}{}
	for i, p := range params {
		if p.Name == "" {
			return fmt.Errorf("parameter %d is missing a name", i+1)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("duplicate parameter name: %s", p.Name)
		}
		seen[p.Name] = struct{}{}

		switch p.Kind {
		case "select":
			if err := checkOptions(p.Options); err != nil {
				return fmt.Errorf("parameter %s: %v", p.Name, err)
			}
		case "number":
		default:
			return fmt.Errorf("parameter %s: kind must be select or number (got %q)", p.Name, p.Kind)
		}

		switch p.LabelPosition {
		case "", LabelPrefix, LabelSuffix:
		default:
			return fmt.Errorf("parameter %s: labelPosition must be prefix or suffix (got %q)", p.Name, p.LabelPosition)
		}
	}
	return nil
}

// checkPlaceholders rejects template placeholders that neither name a
// parameter nor one of the given keywords.
func checkPlaceholders(tmpl string, params []Parameter, keywords ...string) error {
	known := map[string]struct{}{}
	for _, k := range keywords {
		known[k] = struct{}{}
	}
	for _, p := range params {
		known[p.Name] = struct{}{}
	}
	for _, name := range Placeholders(tmpl) {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("template references unknown placeholder %s", Placeholder(name))
		}
	}
	return nil
}

// ResolveAskOptions returns a copy of schemas in which every Ask block's
// options mirror those of the Creator it targets. The Creator is matched by
// id first, then by name without regard to case. Ask blocks without a match
// keep their own options.
func ResolveAskOptions(schemas []Schema) []Schema {
	creators := map[string]*CreatorConfig{}
	byName := map[string]*CreatorConfig{}
	for _, s := range schemas {
		if c, ok := s.Config.(*CreatorConfig); ok {
			creators[s.ID] = c
			if _, taken := byName[strings.ToLower(s.Name)]; !taken {
				byName[strings.ToLower(s.Name)] = c
			}
		}
	}

	out := make([]Schema, len(schemas))
	copy(out, schemas)
	for i, s := range out {
		ask, ok := s.Config.(*AskConfig)
		if !ok {
			continue
		}
		creator, ok := creators[ask.TargetEntityName]
		if !ok {
			creator, ok = byName[strings.ToLower(ask.TargetEntityName)]
		}
		if !ok {
			continue
		}
		resolved := *ask
		resolved.Options = append([]Option(nil), creator.Options...)
		out[i].Config = &resolved
	}
	return out
}
