package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"blockforge/cmd/blockforge/blockdef"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

const tryHelp = `field=value   set a field (numbers are parsed when possible)
unset field   remove a field
reset         go back to the sample values
fields        print the current field values
help          print this help
quit          leave`

var tryCmd = &cobra.Command{
	Use:               "try <id>",
	Short:             "Edit a block's fields interactively and watch its code",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeBlockIDs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := load(flagFiles)
		if err != nil {
			return err
		}
		s, ok := p.registry.Get(args[0])
		if !ok {
			return notFoundError(args[0], p.schemas)
		}
		l, ok := p.editor.Shape(s.ID)
		if !ok {
			return fmt.Errorf("%q is not provided by the editor", s.ID)
		}

		rl, err := readline.NewEx(&readline.Config{
			Prompt:          styleHeader.Render(s.ID) + "> ",
			HistoryFile:     filepath.Join(p.configDir, "try_history"),
			AutoComplete:    tryCompleter(l),
			InterruptPrompt: "^C",
			EOFPrompt:       "quit",
		})
		if err != nil {
			return err
		}
		defer rl.Close()

		w := rl.Stdout()
		session := newTrySession(p.editor, s.ID, sampleFields(l))
		fmt.Fprintln(w, renderLayout(l))
		fmt.Fprint(w, session.render())

		for {
			line, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) {
				if line == "" {
					return nil
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}

			out, done, err := session.apply(line)
			if err != nil {
				fmt.Fprintln(w, styleErr.Render(err.Error()))
				continue
			}
			if done {
				return nil
			}
			fmt.Fprint(w, out)
		}
	},
}

// trySession holds the field values being edited for one block.
type trySession struct {
	src    blockdef.GeneratorSource
	id     string
	sample map[string]any
	fields map[string]any
}

func newTrySession(src blockdef.GeneratorSource, id string, sample map[string]any) *trySession {
	s := &trySession{src: src, id: id, sample: sample}
	s.reset()
	return s
}

func (s *trySession) reset() {
	s.fields = make(map[string]any, len(s.sample))
	for k, v := range s.sample {
		s.fields[k] = v
	}
}

// apply runs one input line. It returns the text to print and whether the
// session is over.
func (s *trySession) apply(line string) (string, bool, error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return s.render(), false, nil
	case line == "quit" || line == "exit":
		return "", true, nil
	case line == "help":
		return tryHelp + "\n", false, nil
	case line == "reset":
		s.reset()
		return s.render(), false, nil
	case line == "fields":
		return s.fieldList(), false, nil
	case strings.HasPrefix(line, "unset "):
		delete(s.fields, strings.TrimSpace(strings.TrimPrefix(line, "unset ")))
		return s.render(), false, nil
	}

	name, value, ok := strings.Cut(line, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", false, fmt.Errorf("expected field=value, got %q (try help)", line)
	}
	s.fields[name] = parseValue(strings.TrimSpace(value))
	return s.render(), false, nil
}

func (s *trySession) render() string {
	code, diags := emitBlock(s.src, s.id, s.fields)
	var b strings.Builder
	b.WriteString(code)
	if code != "" && !strings.HasSuffix(code, "\n") {
		b.WriteString("\n")
	}
	for _, d := range diags {
		b.WriteString(styleWarn.Render(d) + "\n")
	}
	return b.String()
}

func (s *trySession) fieldList() string {
	names := make([]string, 0, len(s.fields))
	for k := range s.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, k := range names {
		fmt.Fprintf(&b, "%s=%v\n", k, s.fields[k])
	}
	return b.String()
}

// parseValue turns numeric input into a number, the way an editor number
// field would store it.
func parseValue(v string) any {
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}

// tryCompleter completes commands and the names of the block's fields.
func tryCompleter(l blockdef.Layout) *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("help"),
		readline.PcItem("reset"),
		readline.PcItem("fields"),
		readline.PcItem("quit"),
	}
	var unset []readline.PrefixCompleterInterface
	for _, f := range l.Fields {
		if f.Name == "" || f.Kind == blockdef.FieldStatementSlot || f.Kind == blockdef.FieldValueSlot {
			continue
		}
		items = append(items, readline.PcItem(f.Name+"="))
		unset = append(unset, readline.PcItem(f.Name))
	}
	items = append(items, readline.PcItem("unset", unset...))
	return readline.NewPrefixCompleter(items...)
}
