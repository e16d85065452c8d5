package renderer

import "fmt"

// Node is one element of a parsed template.
type Node interface {
	node()
}

// Literal is a run of plain template text.
type Literal struct {
	Text string
}

// VariableRef is a `{{key}}` or `{{a.b.c}}` interpolation.
type VariableRef struct {
	Path []string
}

// HelperCall is an inline helper expression such as `{{uppercase key}}`.
type HelperCall struct {
	Helper Helper
	Args   []Arg
}

// Conditional is an `{{#if key}}` or `{{#if_eq a b}}` block with an
// optional else branch.
type Conditional struct {
	// Equality holds the two operands of if_eq; nil for a truthy if.
	Equality []Arg
	Subject  Arg
	Then     []Node
	Else     []Node
}

// EachBlock renders its body once per element of a list value. Inside the
// body `this` refers to the current element.
type EachBlock struct {
	Subject Arg
	Body    []Node
}

func (Literal) node()     {}
func (VariableRef) node() {}
func (HelperCall) node()  {}
func (Conditional) node() {}
func (EachBlock) node()   {}

// Helper enumerates the closed set of supported helpers. The set is fixed
// by the template language; unknown names are a parse error.
type Helper int

const (
	HelperUppercase Helper = iota
	HelperLowercase
	HelperTruncate
	HelperList
	HelperNumberedList
	HelperDefault
	HelperFormatDate
	HelperJSON
	HelperBr
	HelperBrIf
)

var helperNames = map[string]Helper{
	"uppercase":     HelperUppercase,
	"lowercase":     HelperLowercase,
	"truncate":      HelperTruncate,
	"list":          HelperList,
	"numbered_list": HelperNumberedList,
	"default":       HelperDefault,
	"format_date":   HelperFormatDate,
	"json":          HelperJSON,
	"br":            HelperBr,
	"br_if":         HelperBrIf,
}

// String returns the template-language name of the helper.
func (h Helper) String() string {
	for name, v := range helperNames {
		if v == h {
			return name
		}
	}
	return fmt.Sprintf("helper(%d)", int(h))
}

// ArgKind distinguishes how a helper argument is resolved.
type ArgKind int

const (
	ArgPath ArgKind = iota // looked up in the data context
	ArgString
	ArgNumber
)

// Arg is one helper or block argument: a dotted path, a quoted string
// literal, or a numeric literal.
type Arg struct {
	Kind   ArgKind
	Path   []string
	Str    string
	Number float64
}
