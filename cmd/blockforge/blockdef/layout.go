package blockdef

// FieldKind identifies one element of a block's visual row.
type FieldKind int

const (
	FieldLabel FieldKind = iota
	FieldDropdown
	FieldNumber
	FieldValueSlot
	FieldStatementSlot
	FieldText
)

func (k FieldKind) String() string {
	switch k {
	case FieldLabel:
		return "label"
	case FieldDropdown:
		return "dropdown"
	case FieldNumber:
		return "number"
	case FieldValueSlot:
		return "value"
	case FieldStatementSlot:
		return "statement"
	case FieldText:
		return "text"
	default:
		return "unknown"
	}
}

// Field is one element of a Layout. Which members are meaningful depends
// on Kind: Text for labels, Options for dropdowns, Default/Min/Max for
// number fields and Check for value slots.
type Field struct {
	Kind    FieldKind
	Name    string
	Text    string
	Options []Option
	Default *float64
	Min     *float64
	Max     *float64
	Check   string
}

// Shape is the connection shape of a block.
type Shape int

const (
	ShapeStatement Shape = iota
	ShapeExpression
)

// Layout describes how the editor draws a block.
type Layout struct {
	Color  string
	Shape  Shape
	Output string // type check of an expression block; empty accepts anything
	Fields []Field
}

func label(text string) Field { return Field{Kind: FieldLabel, Text: text} }

func dropdown(name string, options []Option) Field {
	return Field{Kind: FieldDropdown, Name: name, Options: options}
}

func statementSlot(name string) Field { return Field{Kind: FieldStatementSlot, Name: name} }

// BuildLayout derives the field layout for s. The second result is false
// for BuiltIn blocks, whose shape belongs to the host editor.
func BuildLayout(s Schema) (Layout, bool) {
	l := Layout{Color: s.Color}
	switch c := s.Config.(type) {
	case *SetterConfig:
		l.Fields = append(l.Fields, label("set "+s.Name+" to"))
		if c.UseNumberInput {
			l.Fields = append(l.Fields, Field{Kind: FieldNumber, Name: FieldValue})
		} else {
			l.Fields = append(l.Fields, dropdown(FieldValue, c.Options))
		}

	case *CreatorConfig:
		l.Fields = append(l.Fields,
			label("create"),
			Field{Kind: FieldNumber, Name: FieldCount, Default: c.Default, Min: c.Min, Max: c.Max},
			dropdown(FieldType, c.Options),
		)
		if c.CanHaveChildren {
			l.Fields = append(l.Fields, label("and then"), statementSlot(SlotDo))
		}

	case *ActionConfig:
		l.Fields = append(l.Fields, label(s.Name))
		l.Fields = append(l.Fields, parameterFields(c.Parameters)...)
		if c.CanHaveChildren {
			l.Fields = append(l.Fields, statementSlot(SlotDo))
		}

	case *AskConfig:
		l.Fields = append(l.Fields,
			label("ask"),
			dropdown(FieldTarget, askOptions(c)),
			label("to"),
			statementSlot(SlotDo),
		)

	case *ConditionConfig:
		l.Shape = ShapeExpression
		l.Output = "Boolean"
		if c.LabelPosition == LabelSuffix {
			l.Fields = append(l.Fields, dropdown(FieldCondition, c.Options), label(s.Name))
		} else {
			l.Fields = append(l.Fields, label(s.Name), dropdown(FieldCondition, c.Options))
		}
		l.Fields = append(l.Fields, parameterFields(c.Parameters)...)

	case *GlobalValueConfig:
		l.Shape = ShapeExpression
		l.Output = "Number"
		if c.ValueType == "string" {
			l.Output = "String"
		}
		l.Fields = append(l.Fields, label(s.Name))

	case *BuiltInConfig:
		return Layout{}, false

	default:
		l.Fields = append(l.Fields, label(s.Name))
	}
	return l, true
}

func parameterFields(params []Parameter) []Field {
	var out []Field
	for _, p := range params {
		if p.Position() == LabelPrefix && p.LabelText != "" {
			out = append(out, label(p.LabelText))
		}
		if p.Kind == "number" {
			out = append(out, Field{Kind: FieldNumber, Name: p.Name, Default: p.DefaultValue})
		} else {
			out = append(out, dropdown(p.Name, p.Options))
		}
		if p.Position() == LabelSuffix && p.LabelText != "" {
			out = append(out, label(p.LabelText))
		}
	}
	return out
}

// askOptions prepends the "all" choice when the block offers it.
func askOptions(c *AskConfig) []Option {
	if !c.IncludeAllOption {
		return c.Options
	}
	all := Option{Label: "all " + c.TargetEntityName, Value: TargetAll}
	return append([]Option{all}, c.Options...)
}
