package blockdef

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Placeholder keywords substituted after parameters.
const (
	PlaceholderAction    = "ACTION"
	PlaceholderCondition = "CONDITION"
	PlaceholderChildren  = "CHILDREN"
)

// placeholderRe matches a template placeholder: ${NAME}
var placeholderRe = regexp.MustCompile(`\$\{([^}]*)\}`)

// FieldGetter returns the live value of a field, or nil when the field is
// absent.
type FieldGetter func(name string) any

// Placeholder returns the template token for name.
func Placeholder(name string) string {
	return "${" + name + "}"
}

// Substitute replaces ${NAME} for every parameter, in parameter order, with
// the string form of get(NAME). Absent or nil values become the empty string.
// Placeholders that match no parameter are left as they are.
func Substitute(tmpl string, params []Parameter, get FieldGetter) string {
	// Fast path: nothing to replace.
	if !strings.Contains(tmpl, "${") {
		return tmpl
	}
	for _, p := range params {
		var v any
		if get != nil {
			v = get(p.Name)
		}
		tmpl = strings.ReplaceAll(tmpl, Placeholder(p.Name), fieldString(v))
	}
	return tmpl
}

// Placeholders returns the distinct placeholder names in tmpl, in order of
// first appearance.
func Placeholders(tmpl string) []string {
	var names []string
	seen := map[string]struct{}{}
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return names
}

// fieldString renders a live field value the way it appears in emitted code.
func fieldString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case []byte:
		return string(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// isFalsy reports whether a live value counts as "not set": nil, empty
// string, false or zero.
func isFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case json.Number:
		f, err := x.Float64()
		return err == nil && f == 0
	case float64:
		return x == 0
	case float32:
		return x == 0
	case int:
		return x == 0
	case int64:
		return x == 0
	}
	return false
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Slug lower-cases s and replaces every whitespace run with an underscore.
func Slug(s string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(s), "_")
}

// indent prefixes every non-empty line of code with two spaces.
func indent(code string) string {
	if code == "" {
		return ""
	}
	lines := strings.SplitAfter(code, "\n")
	var b strings.Builder
	for _, l := range lines {
		if l == "" {
			continue
		}
		if l != "\n" {
			b.WriteString("  ")
		}
		b.WriteString(l)
	}
	out := b.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}
