package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"blockforge/cmd/blockforge/blockdef"
	"blockforge/cmd/blockforge/blockdefyaml"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Author a new block definition with a form",
	Long: "Ask for a block's id, name, category, colour and kind, then for the\n" +
		"settings its kind needs. The definition is checked and appended to the\n" +
		"target file (--to, default <config>/blocks/blocks.yml). JSON targets are\n" +
		"rewritten; YAML targets keep their comments.",
	RunE: func(cmd *cobra.Command, args []string) error {
		to, _ := cmd.Flags().GetString("to")
		if to == "" {
			dir, err := resolveConfigDir()
			if err != nil {
				return err
			}
			to = filepath.Join(dir, "blocks", "blocks.yml")
		}

		var a newAnswers
		if err := askBasics(&a); err != nil {
			return err
		}
		if err := askKindSettings(&a); err != nil {
			return err
		}

		s, err := a.schema()
		if err != nil {
			return err
		}
		if err := blockdef.CheckConfig(s); err != nil {
			return err
		}
		item, err := blockdef.EncodeSchema(s)
		if err != nil {
			return err
		}

		existing, err := os.ReadFile(to)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("definition file %s: %w", to, err)
		}
		out, err := appendDefinition(to, existing, item)
		if err != nil {
			return fmt.Errorf("definition file %s: %w", to, err)
		}
		if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", filepath.Dir(to), err)
		}
		if err := os.WriteFile(to, out, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", to, err)
		}
		fmt.Fprintln(os.Stderr, styleOK.Render("added "+s.ID+" to "+to))
		return nil
	},
}

func init() {
	newCmd.Flags().String("to", "", "definition file to append to (default: <config>/blocks/blocks.yml)")
}

// newAnswers collects the form input for one block.
type newAnswers struct {
	ID, Name, Category, Color string
	Kind                      string

	Options         string // "Label=VALUE, Label=VALUE"
	UseNumberInput  bool
	CanHaveChildren bool
	Template        string
	Target          string
	IncludeAll      bool
	GlobalName      string
	ValueType       string
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
		return nil
	}
}

func askBasics(a *newAnswers) error {
	kinds := make([]string, 0, len(blockdef.Kinds))
	for _, k := range blockdef.Kinds {
		kinds = append(kinds, string(k))
	}
	a.Color = "#5b80a5"
	return runForm(huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Id").Description("unique block id").Value(&a.ID).Validate(notBlank("id")),
		huh.NewInput().Title("Name").Value(&a.Name).Validate(notBlank("name")),
		huh.NewInput().Title("Category").Description("toolbox category name").Value(&a.Category).Validate(notBlank("category")),
		huh.NewInput().Title("Colour").Value(&a.Color).Validate(notBlank("colour")),
		huh.NewSelect[string]().Title("Kind").Options(huh.NewOptions(kinds...)...).Value(&a.Kind),
	)))
}

func askKindSettings(a *newAnswers) error {
	optionsInput := huh.NewInput().
		Title("Options").
		Description("comma separated label=VALUE pairs").
		Value(&a.Options).
		Validate(func(s string) error {
			_, err := parseOptions(s)
			return err
		})

	var fields []huh.Field
	switch blockdef.Kind(a.Kind) {
	case blockdef.KindSetter:
		fields = append(fields,
			huh.NewConfirm().Title("Use a number input instead of options?").Value(&a.UseNumberInput))
	case blockdef.KindCreator:
		fields = append(fields, optionsInput,
			huh.NewConfirm().Title("Can it hold child blocks?").Value(&a.CanHaveChildren))
	case blockdef.KindAction:
		fields = append(fields,
			huh.NewInput().Title("Template").Description("e.g. ${ACTION}(agent);").Value(&a.Template).Validate(notBlank("template")),
			huh.NewConfirm().Title("Can it hold child blocks?").Value(&a.CanHaveChildren))
	case blockdef.KindAsk:
		fields = append(fields,
			huh.NewInput().Title("Target").Description("id or name of the Creator block").Value(&a.Target).Validate(notBlank("target")),
			huh.NewConfirm().Title("Offer an \"all\" option?").Value(&a.IncludeAll))
	case blockdef.KindCondition:
		fields = append(fields, optionsInput,
			huh.NewInput().Title("Template").Description("optional, e.g. is_touching(agent, \"${CONDITION}\")").Value(&a.Template))
	case blockdef.KindGlobalValue:
		a.ValueType = "number"
		fields = append(fields,
			huh.NewInput().Title("Global name").Value(&a.GlobalName).Validate(notBlank("global name")),
			huh.NewSelect[string]().Title("Value type").Options(huh.NewOptions("number", "string")...).Value(&a.ValueType))
	default:
		return nil
	}
	if err := runForm(huh.NewForm(huh.NewGroup(fields...))); err != nil {
		return err
	}

	// A setter without a number input still needs options.
	if blockdef.Kind(a.Kind) == blockdef.KindSetter && !a.UseNumberInput {
		return runForm(huh.NewForm(huh.NewGroup(optionsInput)))
	}
	return nil
}

func runForm(f *huh.Form) error {
	err := f.Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return fmt.Errorf("aborted")
	}
	return err
}

// parseOptions reads "Label=VALUE, Label=VALUE". A bare entry is used as
// both label and value.
func parseOptions(s string) ([]blockdef.Option, error) {
	var out []blockdef.Option
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		label, value, ok := strings.Cut(part, "=")
		label, value = strings.TrimSpace(label), strings.TrimSpace(value)
		if !ok {
			value = label
		}
		if label == "" || value == "" {
			return nil, fmt.Errorf("option %q needs a label and a value", part)
		}
		out = append(out, blockdef.Option{Label: label, Value: value})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("at least one option is required")
	}
	return out, nil
}

// schema turns the answers into a typed schema.
func (a newAnswers) schema() (blockdef.Schema, error) {
	s := blockdef.Schema{
		ID:       strings.TrimSpace(a.ID),
		Name:     strings.TrimSpace(a.Name),
		Category: strings.TrimSpace(a.Category),
		Color:    strings.TrimSpace(a.Color),
		Kind:     blockdef.Kind(a.Kind),
	}

	options := func() ([]blockdef.Option, error) {
		if strings.TrimSpace(a.Options) == "" {
			return nil, nil
		}
		return parseOptions(a.Options)
	}

	switch s.Kind {
	case blockdef.KindSetter:
		opts, err := options()
		if err != nil {
			return s, err
		}
		s.Config = &blockdef.SetterConfig{Options: opts, UseNumberInput: a.UseNumberInput}
	case blockdef.KindCreator:
		opts, err := options()
		if err != nil {
			return s, err
		}
		s.Config = &blockdef.CreatorConfig{Options: opts, CanHaveChildren: a.CanHaveChildren}
	case blockdef.KindAction:
		s.Config = &blockdef.ActionConfig{Template: a.Template, CanHaveChildren: a.CanHaveChildren}
	case blockdef.KindAsk:
		s.Config = &blockdef.AskConfig{TargetEntityName: strings.TrimSpace(a.Target), IncludeAllOption: a.IncludeAll}
	case blockdef.KindCondition:
		opts, err := options()
		if err != nil {
			return s, err
		}
		s.Config = &blockdef.ConditionConfig{Options: opts, Template: a.Template}
	case blockdef.KindGlobalValue:
		s.Config = &blockdef.GlobalValueConfig{GlobalName: strings.TrimSpace(a.GlobalName), ValueType: a.ValueType}
	case blockdef.KindBuiltIn:
		s.Config = &blockdef.BuiltInConfig{}
	default:
		return s, fmt.Errorf("%w %q", blockdef.ErrUnknownKind, a.Kind)
	}
	return s, nil
}

// appendDefinition adds item to the definition list in data, validating
// the result so that a duplicate id is refused before anything is written.
func appendDefinition(path string, data []byte, item map[string]any) ([]byte, error) {
	var out []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		out, err = appendJSON(data, item)
	} else {
		out, err = blockdefyaml.Append(data, item)
	}
	if err != nil {
		return nil, err
	}

	v, err := parseDefinitions(path, out)
	if err != nil {
		return nil, err
	}
	if err := blockdef.ValidateSchemas(v); err != nil {
		return nil, err
	}
	return out, nil
}

func appendJSON(data []byte, item map[string]any) ([]byte, error) {
	list := []any{}
	if len(bytes.TrimSpace(data)) > 0 {
		v, err := blockdef.ParseJSON(data)
		if err != nil {
			return nil, err
		}
		items, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("block definitions must be an array")
		}
		list = items
	}
	list = append(list, item)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
