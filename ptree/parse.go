package ptree

import (
	"fmt"
	"strings"
	"unicode"
)

// Operator symbols of the textual tree form.
const (
	symSequence = "->"
	symXor      = "X"
	symParallel = "+"
	symLoop     = "*"
	symOr       = "O" // recognised only to report it as unsupported
	symTau      = "tau"
)

// SyntaxError reports a malformed textual tree. It wraps ErrSyntax.
type SyntaxError struct {
	Pos int    // byte offset into the input
	Msg string // what was expected or found
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("ptree: syntax error at offset %d: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// Parse reads a process tree in the textual form
//
//	->( 'a', X( 'b', tau ), *( 'c', tau ), +( 'd', 'e' ) )
//
// where "->" is sequence, "X" exclusive choice, "+" parallel, "*" redo loop,
// 'label' an activity and tau a silent step. Whitespace between tokens is
// ignored. Labels are taken verbatim up to the next single quote.
//
// The result is compiled with Compile, so node ids follow preorder.
//
// Errors: *SyntaxError (matching ErrSyntax) for malformed input,
// ErrUnsupportedOperator for the "O" (or) operator, and any Compile error
// (for example ErrMalformedLoop for a loop without exactly two children).
func Parse(s string) (*Tree, error) {
	p := parser{src: s}
	e, err := p.node()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected trailing input %q", p.rest(20))
	}

	return Compile(e)
}

// MustParse is like Parse but panics on error. Intended for tests and fixtures.
func MustParse(s string) *Tree {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return t
}

type parser struct {
	src string
	pos int
}

func (p *parser) node() (*Expr, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, p.errorf("unexpected end of input")
	}

	if p.src[p.pos] == '\'' {
		label, err := p.quoted()
		if err != nil {
			return nil, err
		}

		return Activity(label), nil
	}
	if p.accept(symTau) {
		return Tau(), nil
	}

	var kind Kind
	switch {
	case p.accept(symSequence):
		kind = KindSequence
	case p.accept(symXor):
		kind = KindXor
	case p.accept(symParallel):
		kind = KindParallel
	case p.accept(symLoop):
		kind = KindLoop
	case p.accept(symOr):
		return nil, fmt.Errorf("offset %d: %w: %q", p.pos-len(symOr), ErrUnsupportedOperator, symOr)
	default:
		return nil, p.errorf("unexpected token %q", p.rest(10))
	}

	p.skipSpace()
	if !p.accept("(") {
		return nil, p.errorf("expected '(' after operator")
	}

	var children []*Expr
	for {
		p.skipSpace()
		if p.accept(")") {
			break
		}
		if len(children) > 0 {
			if !p.accept(",") {
				return nil, p.errorf("expected ',' or ')' after child")
			}
		}
		child, err := p.node()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	return Op(kind, children...), nil
}

func (p *parser) quoted() (string, error) {
	start := p.pos
	p.pos++ // opening quote
	end := strings.IndexByte(p.src[p.pos:], '\'')
	if end < 0 {
		p.pos = start

		return "", p.errorf("unterminated label")
	}
	label := p.src[p.pos : p.pos+end]
	p.pos += end + 1

	return label, nil
}

func (p *parser) accept(tok string) bool {
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)

		return true
	}

	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *parser) rest(limit int) string {
	r := p.src[p.pos:]
	if len(r) > limit {
		r = r[:limit] + "..."
	}

	return r
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}
