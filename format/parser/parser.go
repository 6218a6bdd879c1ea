// Package parser parses format templates into an [ast.Template].
//
// Templates contain literal text, field tokens delimited by "%", and
// argument slots delimited by braces:
//
//   - "%NAME%" renders field NAME, matched case-insensitively.
//   - "%NAME-DIRECTIVE[-DIRECTIVE...]%" translates the Timestamp by each
//     directive in turn before rendering NAME. A directive is a sign ("P",
//     "p", or "+" for plus, "M" or "m" for minus), an unsigned integer, and
//     a unit character.
//   - "{}" renders the next extra argument, and "{N}" renders the argument
//     at index N. "{{" and "}}" render literal braces.
//
// A "%" that does not start a token is literal text. So is a token naming
// an unknown field without directives, so text such as "50%" and "%s"
// passes through unchanged.
package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theory/dtformat/format/ast"
	"github.com/theory/dtformat/format/field"
	"github.com/theory/dtformat/format/types"
)

// Parse parses template. Returns an error wrapping [types.ErrField] if a
// token with directives names an unknown field, or [types.ErrTranslation]
// if a directive is malformed.
func Parse(template string) (*ast.Template, error) {
	p := &parser{src: template}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return ast.NewTemplate(p.nodes), nil
}

// parser is a single-use recursive descent template parser.
type parser struct {
	src   string
	pos   int
	lit   strings.Builder
	nodes []ast.Node
	auto  int
}

// parse parses the entire template.
func (p *parser) parse() error {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case marker:
			if err := p.parseToken(); err != nil {
				return err
			}
		case openArg:
			p.parseArg()
		case closeArg:
			p.lit.WriteByte(closeArg)
			p.pos++
			if p.peek(closeArg) {
				p.pos++
			}
		default:
			next := strings.IndexAny(p.src[p.pos:], "%{}")
			if next < 0 {
				next = len(p.src) - p.pos
			}
			p.lit.WriteString(p.src[p.pos : p.pos+next])
			p.pos += next
		}
	}
	p.flush()
	return nil
}

// peek returns true if the byte at the current position is c.
func (p *parser) peek(c byte) bool {
	return p.pos < len(p.src) && p.src[p.pos] == c
}

// flush appends any pending literal text to the nodes.
func (p *parser) flush() {
	if p.lit.Len() > 0 {
		p.nodes = append(p.nodes, ast.NewLiteral(p.lit.String()))
		p.lit.Reset()
	}
}

// emit appends node to the nodes after any pending literal text.
func (p *parser) emit(node ast.Node) {
	p.flush()
	p.nodes = append(p.nodes, node)
}

// parseToken parses a token starting at a marker. If the text up to the
// next marker is not a token, the marker and text are literal and parsing
// resumes at the next marker.
func (p *parser) parseToken() error {
	start := p.pos + 1
	end := strings.IndexByte(p.src[start:], marker)
	if end < 0 {
		// No closing marker.
		p.lit.WriteString(p.src[p.pos:])
		p.pos = len(p.src)
		return nil
	}

	body := p.src[start : start+end]
	name, segs, ok := splitToken(body)
	if ok {
		rule, found := field.Lookup(name)
		switch {
		case found:
			dirs, err := parseDirectives(body, segs)
			if err != nil {
				return err
			}
			p.emit(ast.NewField(rule, dirs...))
			p.pos = start + end + 1
			return nil
		case len(segs) > 0:
			return fmt.Errorf("%w: unknown field %q in token %q", types.ErrField, name, "%"+body+"%")
		}
	}

	// Not a field; resume at the next marker.
	p.lit.WriteByte(marker)
	p.lit.WriteString(body)
	p.pos = start + end
	return nil
}

// parseDirectives parses the directive segments of token.
func parseDirectives(body string, segs []string) ([]*ast.Directive, error) {
	if len(segs) == 0 {
		return nil, nil
	}
	dirs := make([]*ast.Directive, len(segs))
	for i, seg := range segs {
		d, err := parseDirective(body, seg)
		if err != nil {
			return nil, err
		}
		dirs[i] = d
	}
	return dirs, nil
}

// minDirectiveLen is the length of the shortest directive: sign, one digit,
// and unit.
const minDirectiveLen = 3

// parseDirective parses a single directive segment from the token body.
func parseDirective(body, seg string) (*ast.Directive, error) {
	token := "%" + body + "%"
	if seg == "" {
		return nil, fmt.Errorf("%w: empty directive in token %q", types.ErrTranslation, token)
	}

	sign, ok := ast.SignFor(seg[0])
	if !ok {
		return nil, fmt.Errorf(
			"%w: invalid sign %q in directive %q, must be P, p, +, M, or m",
			types.ErrTranslation, seg[:1], seg,
		)
	}

	if len(seg) < minDirectiveLen {
		return nil, fmt.Errorf(
			"%w: directive %q in token %q must be a sign, digits, and unit",
			types.ErrTranslation, seg, token,
		)
	}

	unit, ok := ast.UnitFor(seg[len(seg)-1])
	if !ok {
		return nil, fmt.Errorf(
			"%w: unknown unit %q in directive %q, must be one of D, B, W, m, Y, y, H, M, S, or Z",
			types.ErrTranslation, seg[len(seg)-1:], seg,
		)
	}

	digits := seg[1 : len(seg)-1]
	if !isDigits(digits) {
		return nil, fmt.Errorf(
			"%w: invalid magnitude %q in directive %q",
			types.ErrTranslation, digits, seg,
		)
	}

	mag, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || mag > math.MaxInt64 {
		return nil, fmt.Errorf(
			"%w: magnitude %v in directive %q out of range",
			types.ErrTranslation, digits, seg,
		)
	}

	return ast.NewDirective(sign, mag, unit), nil
}

// parseArg parses an argument slot starting at an open brace. Anything
// other than "{{", "{}", or "{N}" leaves the brace as literal text.
func (p *parser) parseArg() {
	rest := p.src[p.pos+1:]
	switch {
	case strings.HasPrefix(rest, "{"):
		p.lit.WriteByte(openArg)
		p.pos += 2
	case strings.HasPrefix(rest, "}"):
		p.emit(ast.NewArg(p.auto, false))
		p.auto++
		p.pos += 2
	default:
		if end := strings.IndexByte(rest, closeArg); end > 0 {
			if idx, err := strconv.Atoi(rest[:end]); err == nil && isDigits(rest[:end]) {
				p.emit(ast.NewArg(idx, true))
				p.pos += end + 2
				return
			}
		}
		p.lit.WriteByte(openArg)
		p.pos++
	}
}

// isDigits returns true if str consists only of ASCII digits.
func isDigits(str string) bool {
	for i := range len(str) {
		if str[i] < '0' || str[i] > '9' {
			return false
		}
	}
	return true
}
