package blockdef

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Program is a serialized block tree: a list of top-level stacks.
type Program struct {
	Blocks []*ProgramBlock `json:"blocks"`
}

// ProgramBlock is one block of a serialized tree. Next continues the
// statement stack the block belongs to.
type ProgramBlock struct {
	Type      string                  `json:"type"`
	ID        string                  `json:"id,omitempty"`
	Fields    map[string]any          `json:"fields,omitempty"`
	Inputs    map[string]ProgramInput `json:"inputs,omitempty"`
	Next      *ProgramInput           `json:"next,omitempty"`
	Collapsed bool                    `json:"collapsed,omitempty"`
}

// ProgramInput holds the block attached to a slot.
type ProgramInput struct {
	Block *ProgramBlock `json:"block,omitempty"`
}

// ParseProgram decodes a serialized block tree. The editor's wrapped form
// {"blocks": {"blocks": [...]}} is accepted as well. Blocks without an id
// are given one.
func ParseProgram(data []byte) (*Program, error) {
	var envelope struct {
		Blocks json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("phase=parse path=<program>: %w", err)
	}

	var p Program
	body := bytes.TrimSpace(envelope.Blocks)
	switch {
	case len(body) == 0 || string(body) == "null":
	case body[0] == '{':
		if err := decodeNumbers(body, &p); err != nil {
			return nil, fmt.Errorf("phase=parse path=<program>: %w", err)
		}
	default:
		if err := decodeNumbers(data, &p); err != nil {
			return nil, fmt.Errorf("phase=parse path=<program>: %w", err)
		}
	}

	n := 0
	for _, b := range p.Blocks {
		assignIDs(b, &n)
	}
	return &p, nil
}

func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

func assignIDs(b *ProgramBlock, n *int) {
	for b != nil {
		*n++
		if b.ID == "" {
			b.ID = fmt.Sprintf("b%d", *n)
		}
		for _, in := range b.Inputs {
			assignIDs(in.Block, n)
		}
		if b.Next == nil {
			return
		}
		b = b.Next.Block
	}
}

// GeneratorSource looks up the generator for a block type.
type GeneratorSource interface {
	Generator(id string) (Generator, bool)
}

// EmitProgram renders every top-level stack of p, in order, and returns the
// concatenated code with the diagnostics collected on the way. Blocks with
// no generator emit nothing.
func EmitProgram(src GeneratorSource, p *Program) (string, []string) {
	e := &emitter{src: src}
	if p == nil {
		return "", nil
	}
	var b strings.Builder
	for _, top := range p.Blocks {
		b.WriteString(e.statements(top))
	}
	return b.String(), e.diags
}

type emitter struct {
	src   GeneratorSource
	diags []string
}

func (e *emitter) emit(b *ProgramBlock) Emission {
	gen, ok := e.src.Generator(b.Type)
	if !ok || gen == nil {
		e.diags = append(e.diags, fmt.Sprintf("block %s: no generator for type %q", b.ID, b.Type))
		return Emission{}
	}
	return gen(&programInstance{block: b, emitter: e})
}

// statements renders a statement stack starting at b.
func (e *emitter) statements(b *ProgramBlock) string {
	var out strings.Builder
	for b != nil {
		em := e.emit(b)
		if em.Expression {
			if em.Code != "" {
				out.WriteString(em.Code + ";\n")
			}
		} else {
			out.WriteString(em.Code)
		}
		if b.Next == nil {
			break
		}
		b = b.Next.Block
	}
	return out.String()
}

// expression renders b as a value for a consumer requiring outer.
func (e *emitter) expression(b *ProgramBlock, outer Precedence) string {
	em := e.emit(b)
	if !em.Expression {
		if em.Code != "" {
			e.diags = append(e.diags, fmt.Sprintf("block %s: statement block %q used as a value", b.ID, b.Type))
		}
		return ""
	}
	if em.Code == "" || outer == PrecedenceNone || em.Precedence == PrecedenceAtomic {
		return em.Code
	}
	if em.Precedence >= outer {
		return "(" + em.Code + ")"
	}
	return em.Code
}

type programInstance struct {
	block   *ProgramBlock
	emitter *emitter
}

func (p *programInstance) ID() string { return p.block.ID }

func (p *programInstance) Field(name string) any {
	return p.block.Fields[name]
}

func (p *programInstance) Connected(slot string) bool {
	in, ok := p.block.Inputs[slot]
	return ok && in.Block != nil
}

func (p *programInstance) StatementCode(slot string) string {
	if !p.Connected(slot) {
		return ""
	}
	return p.emitter.statements(p.block.Inputs[slot].Block)
}

func (p *programInstance) ValueCode(slot string, outer Precedence) string {
	if !p.Connected(slot) {
		return ""
	}
	return p.emitter.expression(p.block.Inputs[slot].Block, outer)
}

func (p *programInstance) Collapsed() bool { return p.block.Collapsed }
