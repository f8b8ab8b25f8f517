package main

import (
	"fmt"
	"strings"

	"blockforge/cmd/blockforge/blockdef"
)

// renderLayout draws a block's fields on one line; statement slots open an
// indented body below it.
func renderLayout(l blockdef.Layout) string {
	var parts []string
	var slots []string
	for _, f := range l.Fields {
		switch f.Kind {
		case blockdef.FieldLabel:
			parts = append(parts, f.Text)
		case blockdef.FieldDropdown:
			shown := "?"
			if len(f.Options) > 0 {
				shown = f.Options[0].Label
			}
			parts = append(parts, "["+shown+" ▾]")
		case blockdef.FieldNumber:
			parts = append(parts, "("+numberText(f)+")")
		case blockdef.FieldText:
			parts = append(parts, `"…"`)
		case blockdef.FieldValueSlot:
			parts = append(parts, "<"+f.Name+">")
		case blockdef.FieldStatementSlot:
			slots = append(slots, f.Name)
		}
	}

	line := strings.Join(parts, " ")
	if l.Shape == blockdef.ShapeExpression {
		line = "◖ " + line + " ◗"
		if l.Output != "" {
			line += " → " + l.Output
		}
	}
	for _, s := range slots {
		line += "\n  { " + s + " }"
	}
	return line
}

func numberText(f blockdef.Field) string {
	switch {
	case f.Default != nil:
		return fmt.Sprint(*f.Default)
	case f.Min != nil:
		return fmt.Sprint(*f.Min)
	}
	return "0"
}

// sampleFields picks a plausible value for every field of l: the first
// option of dropdowns and the default of number fields.
func sampleFields(l blockdef.Layout) map[string]any {
	fields := map[string]any{}
	for _, f := range l.Fields {
		switch f.Kind {
		case blockdef.FieldDropdown:
			if len(f.Options) > 0 {
				fields[f.Name] = f.Options[0].Value
			}
		case blockdef.FieldNumber:
			switch {
			case f.Default != nil:
				fields[f.Name] = *f.Default
			case f.Min != nil:
				fields[f.Name] = *f.Min
			default:
				fields[f.Name] = 0.0
			}
		case blockdef.FieldText:
			fields[f.Name] = "abc"
		}
	}
	return fields
}

// emitBlock renders a single block with the given fields and no children.
func emitBlock(src blockdef.GeneratorSource, id string, fields map[string]any) (string, []string) {
	prog := &blockdef.Program{Blocks: []*blockdef.ProgramBlock{{Type: id, ID: "sample", Fields: fields}}}
	return blockdef.EmitProgram(src, prog)
}

// describe summarizes a registered block: its metadata, how the editor
// draws it and the code a sample instance produces.
func describe(p *project, s blockdef.Schema) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", swatch(s.Color), styleHeader.Render(s.Name))
	fmt.Fprintf(&b, "%s %s\n", styleDim.Render("id:      "), s.ID)
	fmt.Fprintf(&b, "%s %s\n", styleDim.Render("kind:    "), s.Kind)
	fmt.Fprintf(&b, "%s %s\n", styleDim.Render("category:"), s.Category)

	l, ok := p.editor.Shape(s.ID)
	if !ok {
		b.WriteString("\n" + styleWarn.Render("not provided by the editor") + "\n")
		return b.String()
	}
	b.WriteString("\n" + renderLayout(l) + "\n")

	code, _ := emitBlock(p.editor, s.ID, sampleFields(l))
	if code != "" {
		b.WriteString("\n" + styleCode.Render(strings.TrimRight(code, "\n")) + "\n")
	}
	return b.String()
}
