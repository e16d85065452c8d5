package renderer

import (
	"fmt"
	"strconv"
	"strings"
)

// SyntaxError describes a malformed template. It is fatal: the compiler
// surfaces it to the caller instead of producing partial output.
type SyntaxError struct {
	Offset  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template syntax error at offset %d: %s", e.Offset, e.Message)
}

// Parse turns a template string into an AST. Plain text between tags is
// preserved byte for byte.
func Parse(src string) ([]Node, error) {
	p := &parser{src: src}
	nodes, err := p.parseNodes("")
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		// parseNodes only stops early on a close tag
		return nil, &SyntaxError{Offset: p.pos, Message: "unexpected closing tag"}
	}
	return nodes, nil
}

type parser struct {
	src string
	pos int
}

// parseNodes consumes nodes until EOF or until a `{{/close}}` tag matching
// the given block name. The close tag itself is consumed.
func (p *parser) parseNodes(close string) ([]Node, error) {
	var nodes []Node
	for p.pos < len(p.src) {
		open := strings.Index(p.src[p.pos:], "{{")
		if open < 0 {
			nodes = append(nodes, Literal{Text: p.src[p.pos:]})
			p.pos = len(p.src)
			break
		}
		if open > 0 {
			nodes = append(nodes, Literal{Text: p.src[p.pos : p.pos+open]})
			p.pos += open
		}

		tagStart := p.pos
		end := strings.Index(p.src[p.pos:], "}}")
		if end < 0 {
			return nil, &SyntaxError{Offset: tagStart, Message: "unclosed '{{'"}
		}
		tag := strings.TrimSpace(p.src[p.pos+2 : p.pos+end])
		p.pos += end + 2

		switch {
		case tag == "":
			return nil, &SyntaxError{Offset: tagStart, Message: "empty expression"}

		case strings.HasPrefix(tag, "/"):
			name := strings.TrimSpace(tag[1:])
			if close == "" {
				return nil, &SyntaxError{Offset: tagStart, Message: fmt.Sprintf("unexpected {{/%s}} outside a block", name)}
			}
			if name != close {
				return nil, &SyntaxError{Offset: tagStart, Message: fmt.Sprintf("expected {{/%s}}, found {{/%s}}", close, name)}
			}
			return nodes, nil

		case tag == "else":
			if close == "" {
				return nil, &SyntaxError{Offset: tagStart, Message: "{{else}} outside a conditional block"}
			}
			// Rewind so the enclosing block parser sees the else.
			p.pos = tagStart
			return nodes, errElse

		case strings.HasPrefix(tag, "#"):
			block, err := p.parseBlock(tagStart, tag[1:])
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, block)

		default:
			expr, err := parseExpression(tagStart, tag)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, expr)
		}
	}
	if close != "" {
		return nil, &SyntaxError{Offset: len(p.src), Message: fmt.Sprintf("block {{#%s}} is never closed", close)}
	}
	return nodes, nil
}

// errElse is an internal signal: parseNodes stopped at an {{else}} tag.
var errElse = &SyntaxError{Message: "else"}

// parseBlock parses `{{#name args}} ... [{{else}} ...] {{/name}}`.
func (p *parser) parseBlock(tagStart int, head string) (Node, error) {
	parts := splitArgs(head)
	name := parts[0]
	args, err := parseArgs(tagStart, parts[1:])
	if err != nil {
		return nil, err
	}

	body, berr := p.parseNodes(name)
	var elseBody []Node
	if berr == errElse {
		// Consume the {{else}} tag and parse the alternative branch.
		end := strings.Index(p.src[p.pos:], "}}")
		p.pos += end + 2
		elseBody, berr = p.parseNodes(name)
		if berr == errElse {
			return nil, &SyntaxError{Offset: p.pos, Message: "duplicate {{else}} in block"}
		}
	}
	if berr != nil {
		return nil, berr
	}

	switch name {
	case "if":
		if len(args) != 1 {
			return nil, &SyntaxError{Offset: tagStart, Message: "if expects exactly one argument"}
		}
		return Conditional{Subject: args[0], Then: body, Else: elseBody}, nil
	case "if_eq":
		if len(args) != 2 {
			return nil, &SyntaxError{Offset: tagStart, Message: "if_eq expects exactly two arguments"}
		}
		return Conditional{Equality: args, Then: body, Else: elseBody}, nil
	case "each":
		if len(args) != 1 {
			return nil, &SyntaxError{Offset: tagStart, Message: "each expects exactly one argument"}
		}
		if elseBody != nil {
			return nil, &SyntaxError{Offset: tagStart, Message: "each does not take an {{else}} branch"}
		}
		return EachBlock{Subject: args[0], Body: body}, nil
	default:
		return nil, &SyntaxError{Offset: tagStart, Message: fmt.Sprintf("unknown block helper %q", name)}
	}
}

// parseExpression parses the inside of a non-block tag: either a bare
// variable path or a helper call.
func parseExpression(tagStart int, tag string) (Node, error) {
	parts := splitArgs(tag)
	if len(parts) == 1 {
		if h, ok := helperNames[parts[0]]; ok {
			if h != HelperBr {
				return nil, &SyntaxError{Offset: tagStart, Message: fmt.Sprintf("helper %q requires arguments", parts[0])}
			}
			return HelperCall{Helper: h}, nil
		}
		arg, err := parseArg(tagStart, parts[0])
		if err != nil {
			return nil, err
		}
		if arg.Kind != ArgPath {
			return nil, &SyntaxError{Offset: tagStart, Message: "literal cannot be interpolated on its own"}
		}
		return VariableRef{Path: arg.Path}, nil
	}

	h, ok := helperNames[parts[0]]
	if !ok {
		return nil, &SyntaxError{Offset: tagStart, Message: fmt.Sprintf("unknown helper %q", parts[0])}
	}
	args, err := parseArgs(tagStart, parts[1:])
	if err != nil {
		return nil, err
	}
	return HelperCall{Helper: h, Args: args}, nil
}

func parseArgs(tagStart int, raw []string) ([]Arg, error) {
	var args []Arg
	for _, r := range raw {
		a, err := parseArg(tagStart, r)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return args, nil
}

func parseArg(tagStart int, raw string) (Arg, error) {
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') {
		if raw[len(raw)-1] != raw[0] {
			return Arg{}, &SyntaxError{Offset: tagStart, Message: fmt.Sprintf("unterminated string literal %s", raw)}
		}
		return Arg{Kind: ArgString, Str: raw[1 : len(raw)-1]}, nil
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return Arg{Kind: ArgNumber, Number: n}, nil
	}
	if !validPath(raw) {
		return Arg{}, &SyntaxError{Offset: tagStart, Message: fmt.Sprintf("invalid expression %q", raw)}
	}
	return Arg{Kind: ArgPath, Path: strings.Split(raw, ".")}, nil
}

// splitArgs splits a tag body on spaces, keeping quoted strings intact.
func splitArgs(tag string) []string {
	var parts []string
	var cur strings.Builder
	var quote byte
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			cur.WriteByte(c)
		case c == ' ' || c == '\t':
			if cur.Len() > 0 {
				parts = append(parts, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

func validPath(raw string) bool {
	if raw == "" {
		return false
	}
	for _, seg := range strings.Split(raw, ".") {
		if seg == "" {
			return false
		}
		for _, r := range seg {
			if !(r == '_' || r == '-' ||
				(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9')) {
				return false
			}
		}
	}
	return true
}
