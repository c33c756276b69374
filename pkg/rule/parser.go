// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package rule

import (
	"strconv"
	"strings"

	"github.com/apex/log"
)

// precedence of the binary operators, higher binds tighter. Unary ! and -
// sit above all of them.
var precedence = map[tokenKind]int{
	tokOr:      1,
	tokAnd:     2,
	tokEq:      3,
	tokNeq:     3,
	tokLt:      4,
	tokLe:      4,
	tokGt:      4,
	tokGe:      4,
	tokPlus:    5,
	tokMinus:   5,
	tokStar:    6,
	tokSlash:   6,
	tokPercent: 6,
}

var binaryOps = map[tokenKind]Op{
	tokOr:      OpOr,
	tokAnd:     OpAnd,
	tokEq:      OpEq,
	tokNeq:     OpNeq,
	tokLt:      OpLt,
	tokLe:      OpLe,
	tokGt:      OpGt,
	tokGe:      OpGe,
	tokPlus:    OpAdd,
	tokMinus:   OpSub,
	tokStar:    OpMul,
	tokSlash:   OpDiv,
	tokPercent: OpMod,
}

var keywords = map[string]bool{
	"true":      true,
	"false":     true,
	"exists":    true,
	"forall":    true,
	"self":      true,
	"parent":    true,
	"children":  true,
	"siblings":  true,
	"adjacents": true,
}

// IsKeyword reports whether word is reserved by the grammar and therefore
// unusable as a variable name.
func IsKeyword(word string) bool { return keywords[word] }

type parser struct {
	toks []token
	pos  int
	// vars is the stack of variables bound by the enclosing quantifiers and
	// comprehensions.
	vars []string
	// inAngle is set while parsing the body of var<...>, where a bare '>'
	// closes the body instead of comparing.
	inAngle bool
}

// Parse parses and type checks rule text. The result is always a boolean
// expression. Errors are *SyntaxError, *TypeError or *UndefinedVariableError.
func Parse(src string) (Node, error) {
	if strings.TrimSpace(src) == "" {
		return nil, syntaxErrorf(0, "empty rule")
	}

	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		if t.kind == tokRParen {
			return nil, syntaxErrorf(t.pos, "unmatched ')'")
		}
		return nil, syntaxErrorf(t.pos, "unexpected %s", t)
	}

	root, err := asBoolean(n, "rule")
	if err != nil {
		return nil, err
	}
	log.Debugf("rule parsed: src=%q ast=%s", src, root)
	return root, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// expect consumes a token of kind k or fails with msg.
func (p *parser) expect(k tokenKind, msg string) (token, error) {
	t := p.peek()
	if t.kind != k {
		if t.kind == tokEOF {
			return t, syntaxErrorf(t.pos, "%s, found end of rule", msg)
		}
		return t, syntaxErrorf(t.pos, "%s, found %s", msg, t)
	}
	return p.next(), nil
}

func (p *parser) expr() (Node, error) {
	return p.binary(1)
}

// binary is a precedence climber over the table above. All binary operators
// are left associative.
func (p *parser) binary(minPrec int) (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}

	for {
		t := p.peek()
		prec, ok := precedence[t.kind]
		if !ok || prec < minPrec {
			return left, nil
		}
		if t.kind == tokGt && p.inAngle {
			return left, nil
		}
		p.next()

		right, err := p.binary(prec + 1)
		if err != nil {
			return nil, err
		}
		if left, err = combine(t, left, right); err != nil {
			return nil, err
		}
	}
}

func (p *parser) unary() (Node, error) {
	t := p.peek()
	switch t.kind {
	case tokNot:
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		b, err := asBoolean(x, "!")
		if err != nil {
			return nil, err
		}
		return &Not{Span: Span{t.pos}, X: b}, nil
	case tokMinus:
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		n, err := asNumeric(x, "-")
		if err != nil {
			return nil, err
		}
		return &Neg{Span: Span{t.pos}, X: n}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Node, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.next()
		return &NumLit{Span: Span{t.pos}, Value: t.num}, nil
	case tokTrue, tokFalse:
		p.next()
		return &BoolLit{Span: Span{t.pos}, Value: t.kind == tokTrue}, nil
	case tokTag:
		p.next()
		return &TagRef{Span: Span{t.pos}, Name: t.text}, nil
	case tokNumTag:
		p.next()
		return &NumTagRef{Span: Span{t.pos}, Name: t.text}, nil
	case tokHashL, tokDollarL:
		p.next()
		c, err := p.comprehension(t.pos)
		if err != nil {
			return nil, err
		}
		if t.kind == tokHashL {
			return &NonEmpty{Span: Span{t.pos}, List: c}, nil
		}
		return &Count{Span: Span{t.pos}, List: c}, nil
	case tokLBrack:
		p.next()
		return p.comprehension(t.pos)
	case tokLParen:
		p.next()
		saved := p.inAngle
		p.inAngle = false
		x, err := p.expr()
		p.inAngle = saved
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "unmatched '(' at "+itoa(t.pos)); err != nil {
			return nil, err
		}
		return x, nil
	case tokIdent:
		return p.identifier()
	case tokEOF:
		return nil, syntaxErrorf(t.pos, "expected operand, found end of rule")
	}
	return nil, syntaxErrorf(t.pos, "expected operand, found %s", t)
}

// identifier handles quantifiers, keyword lists and variables.
func (p *parser) identifier() (Node, error) {
	t := p.next()

	switch t.text {
	case "exists", "forall":
		return p.quantifier(t)
	}
	if src, ok := sourceByName(t.text); ok {
		return &List{Span: Span{t.pos}, Source: src}, nil
	}

	if !p.bound(t.text) {
		return nil, &UndefinedVariableError{Pos: t.pos, Name: t.text}
	}
	if p.peek().kind != tokLt {
		return &VarRef{Span: Span{t.pos}, Name: t.text}, nil
	}

	p.next()
	saved := p.inAngle
	p.inAngle = true
	x, err := p.expr()
	p.inAngle = saved
	if err != nil {
		return nil, err
	}
	if x.Kind() == KindElement {
		return nil, &TypeError{Pos: x.Pos(), Op: t.text + "<>", Want: KindBoolean, Got: KindElement}
	}
	if _, err := p.expect(tokGt, "unmatched '<' at "+itoa(t.pos)); err != nil {
		return nil, err
	}
	return &Scoped{Span: Span{t.pos}, Var: t.text, X: x}, nil
}

// list parses a list in source position: a keyword, a comprehension or a
// scoped list var<list>.
func (p *parser) list() (ListNode, error) {
	t := p.peek()
	switch t.kind {
	case tokLBrack:
		p.next()
		return p.comprehension(t.pos)
	case tokIdent:
		if src, ok := sourceByName(t.text); ok {
			p.next()
			return &List{Span: Span{t.pos}, Source: src}, nil
		}
		if p.bound(t.text) && p.toks[p.pos+1].kind == tokLt {
			p.next()
			p.next()
			inner, err := p.list()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokGt, "unmatched '<' at "+itoa(t.pos)); err != nil {
				return nil, err
			}
			return &Scoped{Span: Span{t.pos}, Var: t.text, X: inner}, nil
		}
		if !IsKeyword(t.text) && !p.bound(t.text) {
			return nil, &UndefinedVariableError{Pos: t.pos, Name: t.text}
		}
	}
	if t.kind == tokEOF {
		return nil, syntaxErrorf(t.pos, "expected list, found end of rule")
	}
	return nil, syntaxErrorf(t.pos, "expected list, found %s", t)
}

// comprehension parses the rest of [var:source|body] after the '['.
func (p *parser) comprehension(pos int) (*Comprehension, error) {
	name, src, body, err := p.binder(pos)
	if err != nil {
		return nil, err
	}
	return &Comprehension{Span: Span{pos}, Var: name, Source: src, Body: body}, nil
}

// quantifier parses the rest of exists[...] or forall[...] after the keyword.
func (p *parser) quantifier(kw token) (*Quantifier, error) {
	if _, err := p.expect(tokLBrack, "expected '[' after "+kw.text); err != nil {
		return nil, err
	}
	name, src, body, err := p.binder(kw.pos)
	if err != nil {
		return nil, err
	}

	q := Exists
	if kw.text == "forall" {
		q = Forall
	}
	return &Quantifier{Span: Span{kw.pos}, Quant: q, Var: name, Source: src, Body: body}, nil
}

// binder parses var:source|body] shared by quantifiers and comprehensions.
// The variable is visible in body only.
func (p *parser) binder(open int) (string, ListNode, Node, error) {
	v := p.peek()
	if v.kind != tokIdent || IsKeyword(v.text) {
		return "", nil, nil, syntaxErrorf(v.pos, "expected variable name, found %s", v)
	}
	p.next()

	if _, err := p.expect(tokColon, "expected ':' after "+v.text); err != nil {
		return "", nil, nil, err
	}
	src, err := p.list()
	if err != nil {
		return "", nil, nil, err
	}
	if _, err := p.expect(tokPipe, "expected '|' after list"); err != nil {
		return "", nil, nil, err
	}

	p.vars = append(p.vars, v.text)
	saved := p.inAngle
	p.inAngle = false
	body, err := p.expr()
	p.inAngle = saved
	p.vars = p.vars[:len(p.vars)-1]
	if err != nil {
		return "", nil, nil, err
	}

	body, err = asBoolean(body, "|")
	if err != nil {
		return "", nil, nil, err
	}
	if _, err := p.expect(tokRBrack, "unmatched '[' at "+itoa(open)); err != nil {
		return "", nil, nil, err
	}
	return v.text, src, body, nil
}

func (p *parser) bound(name string) bool {
	for i := len(p.vars) - 1; i >= 0; i-- {
		if p.vars[i] == name {
			return true
		}
	}
	return false
}

// combine builds the node for a binary operator and checks operand kinds.
func combine(t token, left, right Node) (Node, error) {
	op := binaryOps[t.kind]
	at := Span{left.Pos()}

	switch t.kind {
	case tokAnd, tokOr:
		l, err := asBoolean(left, string(op))
		if err != nil {
			return nil, err
		}
		r, err := asBoolean(right, string(op))
		if err != nil {
			return nil, err
		}
		if chain, ok := l.(*Logical); ok && chain.Op == op {
			chain.Operands = append(chain.Operands, r)
			return chain, nil
		}
		return &Logical{Span: at, Op: op, Operands: []Node{l, r}}, nil

	case tokEq, tokNeq:
		return equality(t, op, left, right)

	case tokLt, tokLe, tokGt, tokGe:
		l, r, err := numericPair(op, left, right)
		if err != nil {
			return nil, err
		}
		return &Compare{Span: at, Op: op, Left: l, Right: r}, nil
	}

	l, r, err := numericPair(op, left, right)
	if err != nil {
		return nil, err
	}
	return &Arith{Span: at, Op: op, Left: l, Right: r}, nil
}

// equality resolves the overloaded = and != by operand kind: identity for
// element references, otherwise boolean or numeric comparison. A list facing
// a boolean becomes a non-empty test, facing a number a count; two lists
// compare counts.
func equality(t token, op Op, left, right Node) (Node, error) {
	at := Span{left.Pos()}
	lk, rk := left.Kind(), right.Kind()

	if lk == KindElement || rk == KindElement || (isElementList(left) && isElementList(right)) {
		if !isElementRef(left) {
			return nil, &TypeError{Pos: left.Pos(), Op: string(op), Want: KindElement, Got: lk}
		}
		if !isElementRef(right) {
			return nil, &TypeError{Pos: right.Pos(), Op: string(op), Want: KindElement, Got: rk}
		}
		return &Identity{Span: at, Op: op, Left: left, Right: right}, nil
	}

	var err error
	switch {
	case lk == KindList && rk == KindList:
		return numericCompare(at, op, left, right)
	case lk == KindList:
		left, err = coerce(left, rk, string(op))
	case rk == KindList:
		right, err = coerce(right, lk, string(op))
	}
	if err != nil {
		return nil, err
	}

	if left.Kind() != right.Kind() {
		return nil, &TypeError{Pos: t.pos, Op: string(op), Want: left.Kind(), Got: right.Kind()}
	}
	return &Compare{Span: at, Op: op, Left: left, Right: right}, nil
}

func numericCompare(at Span, op Op, left, right Node) (Node, error) {
	l, r, err := numericPair(op, left, right)
	if err != nil {
		return nil, err
	}
	return &Compare{Span: at, Op: op, Left: l, Right: r}, nil
}

func numericPair(op Op, left, right Node) (Node, Node, error) {
	l, err := asNumeric(left, string(op))
	if err != nil {
		return nil, nil, err
	}
	r, err := asNumeric(right, string(op))
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func coerce(n Node, want Kind, op string) (Node, error) {
	if want == KindNumeric {
		return asNumeric(n, op)
	}
	return asBoolean(n, op)
}

// asBoolean returns n as a boolean expression, wrapping lists in a non-empty
// test.
func asBoolean(n Node, op string) (Node, error) {
	switch n.Kind() {
	case KindBoolean:
		return n, nil
	case KindList:
		if l, ok := n.(ListNode); ok {
			return &NonEmpty{Span: Span{n.Pos()}, List: l}, nil
		}
	}
	return nil, &TypeError{Pos: n.Pos(), Op: op, Want: KindBoolean, Got: n.Kind()}
}

// asNumeric returns n as a numeric expression, wrapping lists in a count.
func asNumeric(n Node, op string) (Node, error) {
	switch n.Kind() {
	case KindNumeric:
		return n, nil
	case KindList:
		if l, ok := n.(ListNode); ok {
			return &Count{Span: Span{n.Pos()}, List: l}, nil
		}
	}
	return nil, &TypeError{Pos: n.Pos(), Op: op, Want: KindNumeric, Got: n.Kind()}
}

// isElementList reports whether n is self or parent, the lists that hold at
// most one element and can stand in for an element reference.
func isElementList(n Node) bool {
	l, ok := n.(*List)
	return ok && (l.Source == SourceSelf || l.Source == SourceParent)
}

func isElementRef(n Node) bool {
	_, ok := n.(*VarRef)
	return ok || isElementList(n)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
