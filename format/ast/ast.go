// Package ast provides an abstract syntax tree for format templates.
//
// A template is a sequence of nodes: [Literal] text, [Field] tokens
// delimited by "%" that render a Timestamp (optionally translated by
// [Directive]s first), and [Arg] slots delimited by braces that render
// extra arguments. The [parser] constructs these nodes as it parses a
// template.
//
// [parser]: https://pkg.go.dev/github.com/theory/dtformat/format/parser
package ast

import (
	"strconv"
	"strings"

	"github.com/theory/dtformat/format/calendar"
	"github.com/theory/dtformat/format/field"
)

// Node represents a single node in the AST.
type Node interface {
	// String returns the template representation of the node.
	String() string
}

// Template is a parsed format template.
type Template struct {
	nodes []Node
}

// NewTemplate creates a new Template from nodes.
func NewTemplate(nodes []Node) *Template {
	return &Template{nodes: nodes}
}

// Nodes returns the nodes of the template.
func (t *Template) Nodes() []Node {
	if t == nil {
		return nil
	}
	return t.nodes
}

// Fields returns the Field nodes of the template.
func (t *Template) Fields() []*Field {
	var fields []*Field
	for _, n := range t.Nodes() {
		if f, ok := n.(*Field); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// Args returns the number of arguments required to render the template:
// one more than the largest argument index.
func (t *Template) Args() int {
	count := 0
	for _, n := range t.Nodes() {
		if a, ok := n.(*Arg); ok && a.index >= count {
			count = a.index + 1
		}
	}
	return count
}

// String returns the template representation of t. Parsing the result
// produces an equivalent Template.
func (t *Template) String() string {
	buf := new(strings.Builder)
	for _, n := range t.Nodes() {
		buf.WriteString(n.String())
	}
	return buf.String()
}

// Literal is literal text in a template.
type Literal string

// NewLiteral creates a new Literal.
func NewLiteral(text string) *Literal {
	l := Literal(text)
	return &l
}

// Text returns the literal text.
func (n *Literal) Text() string { return string(*n) }

// String returns the text with braces escaped.
func (n *Literal) String() string {
	return braceEscaper.Replace(string(*n))
}

//nolint:gochecknoglobals
var braceEscaper = strings.NewReplacer("{", "{{", "}", "}}")

// Sign is the sign of a Directive.
type Sign int

//revive:disable:exported
const (
	Plus  Sign = iota // P
	Minus             // M
)

// String returns "P" or "M".
func (s Sign) String() string {
	if s == Minus {
		return "M"
	}
	return "P"
}

// SignFor returns the Sign for a directive sign character: "P", "p", and
// "+" are Plus; "M" and "m" are Minus.
func SignFor(c byte) (Sign, bool) {
	switch c {
	case 'P', 'p', '+':
		return Plus, true
	case 'M', 'm':
		return Minus, true
	default:
		return 0, false
	}
}

// unitCodes maps directive unit characters to units. Codes are
// case-sensitive except for years.
//
//nolint:gochecknoglobals
var unitCodes = map[byte]calendar.Unit{
	'D': calendar.Day,
	'B': calendar.BusinessDay,
	'W': calendar.Week,
	'm': calendar.Month,
	'Y': calendar.Year,
	'y': calendar.Year,
	'H': calendar.Hour,
	'M': calendar.Minute,
	'S': calendar.Second,
	'Z': calendar.Microsecond,
}

// UnitFor returns the calendar.Unit for a directive unit character.
func UnitFor(c byte) (calendar.Unit, bool) {
	u, ok := unitCodes[c]
	return u, ok
}

// UnitCode returns the canonical directive character for unit.
func UnitCode(unit calendar.Unit) byte {
	switch unit {
	case calendar.Microsecond:
		return 'Z'
	case calendar.Second:
		return 'S'
	case calendar.Minute:
		return 'M'
	case calendar.Hour:
		return 'H'
	case calendar.Day:
		return 'D'
	case calendar.BusinessDay:
		return 'B'
	case calendar.Week:
		return 'W'
	case calendar.Month:
		return 'm'
	case calendar.Year:
		return 'Y'
	default:
		return '?'
	}
}

// Directive translates a Timestamp by a signed number of units before a
// field renders it.
type Directive struct {
	sign      Sign
	magnitude uint64
	unit      calendar.Unit
}

// NewDirective creates a new Directive.
func NewDirective(sign Sign, magnitude uint64, unit calendar.Unit) *Directive {
	return &Directive{sign: sign, magnitude: magnitude, unit: unit}
}

// Sign returns the sign of the directive.
func (d *Directive) Sign() Sign { return d.sign }

// Magnitude returns the unsigned magnitude of the directive.
func (d *Directive) Magnitude() uint64 { return d.magnitude }

// Unit returns the unit of the directive.
func (d *Directive) Unit() calendar.Unit { return d.unit }

// Amount returns the signed amount of the directive. The parser guarantees
// the magnitude fits in an int64.
func (d *Directive) Amount() int64 {
	if d.sign == Minus {
		return -int64(d.magnitude)
	}
	return int64(d.magnitude)
}

// String returns the canonical directive encoding, such as "M1D".
func (d *Directive) String() string {
	return d.sign.String() + strconv.FormatUint(d.magnitude, 10) + string(UnitCode(d.unit))
}

// Field renders a Timestamp with a field rule after applying its
// directives in order.
type Field struct {
	rule       field.Rule
	directives []*Directive
}

// NewField creates a new Field.
func NewField(rule field.Rule, directives ...*Directive) *Field {
	return &Field{rule: rule, directives: directives}
}

// Rule returns the field rule.
func (n *Field) Rule() field.Rule { return n.rule }

// Name returns the canonical field name.
func (n *Field) Name() string { return n.rule.Name() }

// Directives returns the directives to apply before rendering.
func (n *Field) Directives() []*Directive { return n.directives }

// String returns the token representation of the field, such as
// "%YYYYMMDD-M1D%".
func (n *Field) String() string {
	buf := new(strings.Builder)
	buf.WriteByte('%')
	buf.WriteString(n.rule.Name())
	for _, d := range n.directives {
		buf.WriteByte('-')
		buf.WriteString(d.String())
	}
	buf.WriteByte('%')
	return buf.String()
}

// Arg renders an extra argument by index.
type Arg struct {
	index    int
	explicit bool
}

// NewArg creates a new Arg for index. If explicit is false, the index was
// assigned automatically from an empty "{}" slot.
func NewArg(index int, explicit bool) *Arg {
	return &Arg{index: index, explicit: explicit}
}

// Index returns the zero-based argument index.
func (n *Arg) Index() int { return n.index }

// Explicit returns true if the index was written in the template.
func (n *Arg) Explicit() bool { return n.explicit }

// String returns "{}" or "{N}".
func (n *Arg) String() string {
	if !n.explicit {
		return "{}"
	}
	return "{" + strconv.Itoa(n.index) + "}"
}
