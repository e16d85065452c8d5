package renderer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Render parses a template and evaluates it against data in one call.
func Render(src string, data map[string]any) (string, error) {
	nodes, err := Parse(src)
	if err != nil {
		return "", err
	}
	return Eval(nodes, data), nil
}

// Eval renders a parsed template against a data context. Evaluation never
// fails: a referenced key that cannot be resolved renders as `[key]` so
// authoring gaps stay visible in the output instead of dropping silently.
func Eval(nodes []Node, data map[string]any) string {
	var sb strings.Builder
	scope := &scope{values: data}
	evalNodes(&sb, nodes, scope)
	return sb.String()
}

// scope is a chained lookup context; each blocks push a child scope whose
// misses fall through to the parent.
type scope struct {
	values map[string]any
	parent *scope
}

func (s *scope) lookup(path []string) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := lookupPath(cur.values, path); ok {
			return v, true
		}
	}
	return nil, false
}

func lookupPath(values map[string]any, path []string) (any, bool) {
	var cur any = values
	for _, seg := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// placeholder renders the bracketed form of an unresolved reference.
func placeholder(path []string) string {
	return "[" + strings.Join(path, ".") + "]"
}

func evalNodes(sb *strings.Builder, nodes []Node, sc *scope) {
	for _, n := range nodes {
		switch node := n.(type) {
		case Literal:
			sb.WriteString(node.Text)
		case VariableRef:
			if v, ok := sc.lookup(node.Path); ok {
				sb.WriteString(stringify(v))
			} else {
				sb.WriteString(placeholder(node.Path))
			}
		case HelperCall:
			sb.WriteString(evalHelper(node, sc))
		case Conditional:
			if evalCondition(node, sc) {
				evalNodes(sb, node.Then, sc)
			} else {
				evalNodes(sb, node.Else, sc)
			}
		case EachBlock:
			evalEach(sb, node, sc)
		}
	}
}

func evalCondition(c Conditional, sc *scope) bool {
	if c.Equality != nil {
		left, lok := resolveArg(c.Equality[0], sc)
		right, rok := resolveArg(c.Equality[1], sc)
		if !lok || !rok {
			return false
		}
		return stringify(left) == stringify(right)
	}
	v, ok := resolveArg(c.Subject, sc)
	return ok && truthy(v)
}

func evalEach(sb *strings.Builder, e EachBlock, sc *scope) {
	v, ok := resolveArg(e.Subject, sc)
	if !ok {
		return
	}
	for _, item := range asList(v) {
		child := map[string]any{"this": item}
		if m, ok := item.(map[string]any); ok {
			for k, iv := range m {
				child[k] = iv
			}
		}
		evalNodes(sb, e.Body, &scope{values: child, parent: sc})
	}
}

// resolveArg resolves a helper argument. Literals always resolve; paths
// resolve through the scope chain.
func resolveArg(a Arg, sc *scope) (any, bool) {
	switch a.Kind {
	case ArgString:
		return a.Str, true
	case ArgNumber:
		return a.Number, true
	default:
		return sc.lookup(a.Path)
	}
}

func evalHelper(h HelperCall, sc *scope) string {
	switch h.Helper {
	case HelperBr:
		return "\n\n"

	case HelperBrIf:
		if v, ok := resolveArg(h.Args[0], sc); ok && truthy(v) {
			return "\n\n"
		}
		return ""

	case HelperDefault:
		if v, ok := resolveArg(h.Args[0], sc); ok && stringify(v) != "" {
			return stringify(v)
		}
		if len(h.Args) > 1 {
			if v, ok := resolveArg(h.Args[1], sc); ok {
				return stringify(v)
			}
		}
		return missingArg(h.Args[0])

	case HelperUppercase, HelperLowercase:
		v, ok := resolveArg(h.Args[0], sc)
		if !ok {
			return missingArg(h.Args[0])
		}
		if h.Helper == HelperUppercase {
			return strings.ToUpper(stringify(v))
		}
		return strings.ToLower(stringify(v))

	case HelperTruncate:
		v, ok := resolveArg(h.Args[0], sc)
		if !ok {
			return missingArg(h.Args[0])
		}
		limit := 0
		if len(h.Args) > 1 && h.Args[1].Kind == ArgNumber {
			limit = int(h.Args[1].Number)
		}
		suffix := "..."
		if len(h.Args) > 2 && h.Args[2].Kind == ArgString {
			suffix = h.Args[2].Str
		}
		return truncateRunes(stringify(v), limit, suffix)

	case HelperList, HelperNumberedList:
		v, ok := resolveArg(h.Args[0], sc)
		if !ok {
			return missingArg(h.Args[0])
		}
		items := asList(v)
		lines := make([]string, 0, len(items))
		for i, item := range items {
			if h.Helper == HelperList {
				lines = append(lines, "- "+stringify(item))
			} else {
				lines = append(lines, fmt.Sprintf("%d. %s", i+1, stringify(item)))
			}
		}
		return strings.Join(lines, "\n")

	case HelperFormatDate:
		v, ok := resolveArg(h.Args[0], sc)
		if !ok {
			return missingArg(h.Args[0])
		}
		layout := "iso"
		if len(h.Args) > 1 {
			if lv, ok := resolveArg(h.Args[1], sc); ok {
				layout = stringify(lv)
			}
		}
		return formatDate(stringify(v), layout)

	case HelperJSON:
		v, ok := resolveArg(h.Args[0], sc)
		if !ok {
			return missingArg(h.Args[0])
		}
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return stringify(v)
		}
		return string(out)
	}
	return ""
}

// missingArg renders the placeholder for an unresolved helper argument.
// Literal arguments always resolve, so only paths reach this.
func missingArg(a Arg) string {
	if a.Kind == ArgPath {
		return placeholder(a.Path)
	}
	return ""
}

func truncateRunes(s string, limit int, suffix string) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	cut := limit - len([]rune(suffix))
	if cut < 0 {
		cut = 0
	}
	return string(runes[:cut]) + suffix
}

// formatDate parses an ISO-style date and reformats it. Layout "iso" gives
// YYYY-MM-DD, "locale" the Korean long form. Unparseable input is returned
// unchanged rather than failing the render.
func formatDate(value, layout string) string {
	var t time.Time
	var err error
	for _, in := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err = time.Parse(in, value); err == nil {
			break
		}
	}
	if err != nil {
		return value
	}
	switch layout {
	case "", "iso":
		return t.Format("2006-01-02")
	case "locale":
		return fmt.Sprintf("%d년 %d월 %d일", t.Year(), int(t.Month()), t.Day())
	default:
		return t.Format(layout)
	}
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case []any:
		return len(val) > 0
	case []string:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}

func asList(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	case string:
		// Multi-line strings split into one item per non-empty line,
		// so textarea input lists naturally.
		if !strings.Contains(val, "\n") {
			return []any{val}
		}
		var out []any
		for _, line := range strings.Split(val, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
		return out
	default:
		return []any{val}
	}
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []string:
		return strings.Join(val, ", ")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", val)
	}
}
