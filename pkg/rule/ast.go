// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package rule

import (
	"strconv"
	"strings"
)

// Kind is the result kind of an expression.
type Kind int

const (
	KindInvalid Kind = iota
	KindBoolean
	KindNumeric
	// KindList is a set of elements. The parser coerces it to a count or a
	// non-empty test once the surrounding operator fixes the wanted kind.
	KindList
	// KindElement is a single element reference, only valid as an operand
	// of an identity comparison.
	KindElement
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindNumeric:
		return "numeric"
	case KindList:
		return "list"
	case KindElement:
		return "element"
	}
	return "invalid"
}

// Op is a binary operator as written in rule text.
type Op string

const (
	OpAnd Op = "&&"
	OpOr  Op = "||"
	OpEq  Op = "="
	OpNeq Op = "!="
	OpLt  Op = "<"
	OpLe  Op = "<="
	OpGt  Op = ">"
	OpGe  Op = ">="
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
	OpDiv Op = "/"
	OpMod Op = "%"
)

// Source names a graph-relative list.
type Source int

const (
	SourceSelf Source = iota
	SourceParent
	SourceChildren
	SourceSiblings
	SourceAdjacents
)

var sourceNames = []string{"self", "parent", "children", "siblings", "adjacents"}

func (s Source) String() string {
	if int(s) < len(sourceNames) {
		return sourceNames[s]
	}
	return "invalid"
}

func sourceByName(name string) (Source, bool) {
	for i, n := range sourceNames {
		if n == name {
			return Source(i), true
		}
	}
	return 0, false
}

// Quant is a quantifier keyword.
type Quant int

const (
	Exists Quant = iota
	Forall
)

func (q Quant) String() string {
	if q == Forall {
		return "forall"
	}
	return "exists"
}

// Node is a rule AST node. The set of implementations is closed; evaluators
// switch over the concrete types below.
type Node interface {
	Kind() Kind
	Pos() int
	String() string
	node()
}

// ListNode is a Node producing a list of elements: *List, *Comprehension, or
// a *Scoped wrapping a list.
type ListNode interface {
	Node
	listNode()
}

// Span records where a node starts in the rule text.
type Span struct {
	Offset int
}

// Pos returns the byte offset of the node.
func (s Span) Pos() int { return s.Offset }

// TagRef is #name: true when the tag is present.
type TagRef struct {
	Span
	Name string
}

// NumTagRef is $name: the tag's numeric value.
type NumTagRef struct {
	Span
	Name string
}

// BoolLit is true or false.
type BoolLit struct {
	Span
	Value bool
}

// NumLit is a non-negative numeric literal.
type NumLit struct {
	Span
	Value float64
}

// Not is logical negation.
type Not struct {
	Span
	X Node
}

// Neg is arithmetic negation.
type Neg struct {
	Span
	X Node
}

// Logical is a chain of && or || operands folded left to right.
type Logical struct {
	Span
	Op       Op
	Operands []Node
}

// Compare is = and != over two booleans or two numbers, and the ordering
// operators over two numbers.
type Compare struct {
	Span
	Op          Op
	Left, Right Node
}

// Identity is = or != between two element references.
type Identity struct {
	Span
	Op          Op
	Left, Right Node
}

// Arith is + - * / % over two numbers.
type Arith struct {
	Span
	Op          Op
	Left, Right Node
}

// List is one of the graph-relative keyword lists.
type List struct {
	Span
	Source Source
}

// Comprehension is [var:source|body]: the members of source for which body
// holds with var bound to the member.
type Comprehension struct {
	Span
	Var    string
	Source ListNode
	Body   Node
}

// Quantifier is exists[var:source|body] or forall[var:source|body].
type Quantifier struct {
	Span
	Quant  Quant
	Var    string
	Source ListNode
	Body   Node
}

// VarRef is a bound variable.
type VarRef struct {
	Span
	Name string
}

// Scoped is var<x>: x evaluated with var's element as the current element.
type Scoped struct {
	Span
	Var string
	X   Node
}

// Count is the number of elements in a list.
type Count struct {
	Span
	List ListNode
}

// NonEmpty holds when a list has at least one element.
type NonEmpty struct {
	Span
	List ListNode
}

func (*TagRef) Kind() Kind        { return KindBoolean }
func (*NumTagRef) Kind() Kind     { return KindNumeric }
func (*BoolLit) Kind() Kind       { return KindBoolean }
func (*NumLit) Kind() Kind        { return KindNumeric }
func (*Not) Kind() Kind           { return KindBoolean }
func (*Neg) Kind() Kind           { return KindNumeric }
func (*Logical) Kind() Kind       { return KindBoolean }
func (*Compare) Kind() Kind       { return KindBoolean }
func (*Identity) Kind() Kind      { return KindBoolean }
func (*Arith) Kind() Kind         { return KindNumeric }
func (*List) Kind() Kind          { return KindList }
func (*Comprehension) Kind() Kind { return KindList }
func (*Quantifier) Kind() Kind    { return KindBoolean }
func (*VarRef) Kind() Kind        { return KindElement }
func (s *Scoped) Kind() Kind      { return s.X.Kind() }
func (*Count) Kind() Kind         { return KindNumeric }
func (*NonEmpty) Kind() Kind      { return KindBoolean }

func (*TagRef) node()        {}
func (*NumTagRef) node()     {}
func (*BoolLit) node()       {}
func (*NumLit) node()        {}
func (*Not) node()           {}
func (*Neg) node()           {}
func (*Logical) node()       {}
func (*Compare) node()       {}
func (*Identity) node()      {}
func (*Arith) node()         {}
func (*List) node()          {}
func (*Comprehension) node() {}
func (*Quantifier) node()    {}
func (*VarRef) node()        {}
func (*Scoped) node()        {}
func (*Count) node()         {}
func (*NonEmpty) node()      {}

func (*List) listNode()          {}
func (*Comprehension) listNode() {}
func (*Scoped) listNode()        {}

// String methods print a fully parenthesized form that parses back to an
// equivalent tree.

func (n *TagRef) String() string    { return "#" + n.Name }
func (n *NumTagRef) String() string { return "$" + n.Name }
func (n *BoolLit) String() string   { return strconv.FormatBool(n.Value) }
func (n *NumLit) String() string    { return FormatNumber(n.Value) }
func (n *Not) String() string       { return "!" + n.X.String() }
func (n *Neg) String() string       { return "-" + n.X.String() }
func (n *List) String() string      { return n.Source.String() }
func (n *VarRef) String() string    { return n.Name }
func (n *Scoped) String() string    { return n.Var + "<" + n.X.String() + ">" }

func (n *Logical) String() string {
	parts := make([]string, len(n.Operands))
	for i, o := range n.Operands {
		parts[i] = o.String()
	}
	return "(" + strings.Join(parts, " "+string(n.Op)+" ") + ")"
}

func (n *Compare) String() string  { return binaryString(n.Op, n.Left, n.Right) }
func (n *Identity) String() string { return binaryString(n.Op, n.Left, n.Right) }
func (n *Arith) String() string    { return binaryString(n.Op, n.Left, n.Right) }

func (n *Comprehension) String() string {
	return "[" + n.Var + ":" + n.Source.String() + "|" + n.Body.String() + "]"
}

func (n *Quantifier) String() string {
	return n.Quant.String() + "[" + n.Var + ":" + n.Source.String() + "|" + n.Body.String() + "]"
}

// Count and NonEmpty of a keyword list print the bare keyword; the parser
// restores the coercion from context.
func (n *Count) String() string {
	if _, ok := n.List.(*Comprehension); ok {
		return "$" + n.List.String()
	}
	return n.List.String()
}

func (n *NonEmpty) String() string {
	if _, ok := n.List.(*Comprehension); ok {
		return "#" + n.List.String()
	}
	return n.List.String()
}

func binaryString(op Op, l, r Node) string {
	return "(" + l.String() + " " + string(op) + " " + r.String() + ")"
}

// FormatNumber prints v the way the lexer reads numbers back: no exponent and
// no trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
