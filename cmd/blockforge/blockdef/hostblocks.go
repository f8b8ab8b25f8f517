package blockdef

import (
	"fmt"
	"strings"
)

type hostBlock struct {
	id     string
	layout Layout
	gen    Generator
}

// hostBlocks are the blocks every editor ships with. BuiltIn schemas place
// them into categories.
func hostBlocks() []hostBlock {
	return []hostBlock{
		{
			id: "math_number",
			layout: Layout{Shape: ShapeExpression, Output: "Number", Fields: []Field{
				{Kind: FieldNumber, Name: "NUM"},
			}},
			gen: func(inst Instance) Emission {
				n := fieldString(inst.Field("NUM"))
				if n == "" {
					n = "0"
				}
				p := PrecedenceAtomic
				if strings.HasPrefix(n, "-") {
					p = PrecedenceLogicalNot
				}
				return Expression(n, p)
			},
		},
		{
			id: "text",
			layout: Layout{Shape: ShapeExpression, Output: "String", Fields: []Field{
				{Kind: FieldText, Name: "TEXT"},
			}},
			gen: func(inst Instance) Emission {
				return Expression(fmt.Sprintf("%q", fieldString(inst.Field("TEXT"))), PrecedenceAtomic)
			},
		},
		{
			id: "logic_boolean",
			layout: Layout{Shape: ShapeExpression, Output: "Boolean", Fields: []Field{
				dropdown("BOOL", []Option{{Label: "true", Value: "TRUE"}, {Label: "false", Value: "FALSE"}}),
			}},
			gen: func(inst Instance) Emission {
				if strings.EqualFold(fieldString(inst.Field("BOOL")), "FALSE") {
					return Expression("false", PrecedenceAtomic)
				}
				return Expression("true", PrecedenceAtomic)
			},
		},
		{
			id: "logic_negate",
			layout: Layout{Shape: ShapeExpression, Output: "Boolean", Fields: []Field{
				label("not"), {Kind: FieldValueSlot, Name: "BOOL", Check: "Boolean"},
			}},
			gen: func(inst Instance) Emission {
				arg := inst.ValueCode("BOOL", PrecedenceLogicalNot)
				if arg == "" {
					arg = "true"
				}
				return Expression("!"+arg, PrecedenceLogicalNot)
			},
		},
		{
			id: "controls_if",
			layout: Layout{Fields: []Field{
				label("if"), {Kind: FieldValueSlot, Name: "IF0", Check: "Boolean"},
				label("do"), statementSlot("DO0"),
				label("else"), statementSlot("ELSE"),
			}},
			gen: func(inst Instance) Emission {
				cond := inst.ValueCode("IF0", PrecedenceNone)
				if cond == "" {
					cond = "false"
				}
				code := "if (" + cond + ") {\n" + indent(inst.StatementCode("DO0")) + "}"
				if inst.Connected("ELSE") {
					code += " else {\n" + indent(inst.StatementCode("ELSE")) + "}"
				}
				return Statement(code + "\n")
			},
		},
		{
			id: "controls_repeat_ext",
			layout: Layout{Fields: []Field{
				label("repeat"), {Kind: FieldValueSlot, Name: "TIMES", Check: "Number"},
				label("times"), statementSlot(SlotDo),
			}},
			gen: func(inst Instance) Emission {
				times := inst.ValueCode("TIMES", PrecedenceRelational)
				if times == "" {
					times = "0"
				}
				return Statement("for (let count = 0; count < " + times + "; count++) {\n" +
					indent(inst.StatementCode(SlotDo)) + "}\n")
			},
		},
	}
}
