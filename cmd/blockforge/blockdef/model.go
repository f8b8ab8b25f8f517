package blockdef

// Kind is the closed set of authorable block kinds.
type Kind string

const (
	KindSetter      Kind = "Setter"
	KindCreator     Kind = "Creator"
	KindAction      Kind = "Action"
	KindAsk         Kind = "Ask"
	KindCondition   Kind = "Condition"
	KindGlobalValue Kind = "GlobalValue"
	KindBuiltIn     Kind = "BuiltIn"
)

// Kinds lists every valid kind in declaration order.
var Kinds = []Kind{
	KindSetter,
	KindCreator,
	KindAction,
	KindAsk,
	KindCondition,
	KindGlobalValue,
	KindBuiltIn,
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// LabelPosition places a static label before or after the field it describes.
type LabelPosition string

const (
	LabelPrefix LabelPosition = "prefix"
	LabelSuffix LabelPosition = "suffix"
)

// Names of the fields and slots that generators read.
const (
	FieldValue     = "value"
	FieldCount     = "count"
	FieldType      = "type"
	FieldTarget    = "target"
	FieldCondition = "condition"

	SlotDo = "DO"

	// TargetAll is the Ask target that iterates every actor.
	TargetAll = "all"
)

// Schema is one authored block definition.
type Schema struct {
	ID       string
	Name     string
	Category string
	Color    string
	Kind     Kind
	Config   Config
}

// Config is the sealed, kind-specific part of a Schema.
// Only the *Config types in this package implement it.
type Config interface {
	configKind() Kind
}

// Option is a label/value pair shown in a dropdown.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Parameter is one named field of an Action (or templated Condition) block.
type Parameter struct {
	Name          string        `json:"name"`
	Kind          string        `json:"kind"` // "select" or "number"
	LabelText     string        `json:"labelText,omitempty"`
	LabelPosition LabelPosition `json:"labelPosition,omitempty"`
	Options       []Option      `json:"options,omitempty"`
	DefaultValue  *float64      `json:"defaultValue,omitempty"`
}

// Position returns the label position, defaulting to prefix.
func (p Parameter) Position() LabelPosition {
	if p.LabelPosition == LabelSuffix {
		return LabelSuffix
	}
	return LabelPrefix
}

// NestedRef is a node of a static default-children tree.
type NestedRef struct {
	BlockID  string      `json:"blockId"`
	Children []NestedRef `json:"children,omitempty"`
}

type SetterConfig struct {
	Options        []Option `json:"options,omitempty"`
	UseNumberInput bool     `json:"useNumberInput,omitempty"`
}

type CreatorConfig struct {
	Options         []Option    `json:"options"`
	Min             *float64    `json:"min,omitempty"`
	Max             *float64    `json:"max,omitempty"`
	Default         *float64    `json:"default,omitempty"`
	CanHaveChildren bool        `json:"canHaveChildren,omitempty"`
	DefaultChildren []NestedRef `json:"defaultChildren,omitempty"`
}

type ActionConfig struct {
	Parameters      []Parameter `json:"parameters,omitempty"`
	Template        string      `json:"template,omitempty"`
	CanHaveChildren bool        `json:"canHaveChildren,omitempty"`
	DefaultChildren []NestedRef `json:"defaultChildren,omitempty"`
}

// AskConfig targets the actors created by a Creator block.
// Options are derived from that Creator at registration time.
type AskConfig struct {
	TargetEntityName string      `json:"targetEntityName"`
	IncludeAllOption bool        `json:"includeAllOption,omitempty"`
	Options          []Option    `json:"options,omitempty"`
	DefaultChildren  []NestedRef `json:"defaultChildren,omitempty"`
}

type ConditionConfig struct {
	Options       []Option      `json:"options"`
	LabelPosition LabelPosition `json:"labelPosition,omitempty"`
	Template      string        `json:"template,omitempty"`
	Parameters    []Parameter   `json:"parameters,omitempty"`
}

type GlobalValueConfig struct {
	GlobalName string `json:"globalName"`
	ValueType  string `json:"valueType,omitempty"` // "number" or "string"
}

// BuiltInConfig assigns a host-provided block to a category.
// Toolbox holds extra toolbox-entry keys (shadow inputs, preset fields).
type BuiltInConfig struct {
	Toolbox map[string]any `json:"toolbox,omitempty"`
}

func (*SetterConfig) configKind() Kind      { return KindSetter }
func (*CreatorConfig) configKind() Kind     { return KindCreator }
func (*ActionConfig) configKind() Kind      { return KindAction }
func (*AskConfig) configKind() Kind         { return KindAsk }
func (*ConditionConfig) configKind() Kind   { return KindCondition }
func (*GlobalValueConfig) configKind() Kind { return KindGlobalValue }
func (*BuiltInConfig) configKind() Kind     { return KindBuiltIn }

// DefaultChildren returns the schema's seeded child tree, if its kind has one.
func (s Schema) DefaultChildren() []NestedRef {
	switch c := s.Config.(type) {
	case *CreatorConfig:
		return c.DefaultChildren
	case *ActionConfig:
		return c.DefaultChildren
	case *AskConfig:
		return c.DefaultChildren
	}
	return nil
}

// HasStatementSlot reports whether instances of the schema accept child statements.
func (s Schema) HasStatementSlot() bool {
	switch c := s.Config.(type) {
	case *CreatorConfig:
		return c.CanHaveChildren
	case *ActionConfig:
		return c.CanHaveChildren
	case *AskConfig:
		return true
	}
	return false
}
