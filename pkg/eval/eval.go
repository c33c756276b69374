// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package eval walks a rule AST against a diagram element.
//
// Tag references resolve against the current element, the one most recently
// bound by a quantifier or comprehension, and fall back to the reserved tag
// registry and then to false or 0. Arithmetic follows IEEE-754: division by
// zero yields ±Inf and modulo by zero NaN, neither is an error.
//
// forall over an empty list is true and exists over an empty list is false.
//
// An Evaluator holds no per-call state and may be shared; every call builds
// its own Scope.
package eval

import (
	"fmt"
	"math"

	"github.com/tfctl/semfilter/pkg/graph"
	"github.com/tfctl/semfilter/pkg/reserved"
	"github.com/tfctl/semfilter/pkg/rule"
)

// Evaluator evaluates rule ASTs.
type Evaluator struct {
	reserved *reserved.Registry
}

// New returns an Evaluator using reg for reserved tags, or the default
// registry when reg is nil.
func New(reg *reserved.Registry) *Evaluator {
	if reg == nil {
		reg = reserved.Default()
	}
	return &Evaluator{reserved: reg}
}

// Bool evaluates a boolean rule with el as the current element.
func (e *Evaluator) Bool(n rule.Node, el graph.Element) (bool, error) {
	return e.boolean(n, NewScope(el))
}

// Number evaluates a numeric expression with el as the current element.
func (e *Evaluator) Number(n rule.Node, el graph.Element) (float64, error) {
	return e.number(n, NewScope(el))
}

func (e *Evaluator) boolean(n rule.Node, s *Scope) (bool, error) {
	switch n := n.(type) {
	case *rule.BoolLit:
		return n.Value, nil

	case *rule.TagRef:
		cur := s.Current()
		if tags, ok := cur.Tags(); ok && tags.Has(n.Name) {
			return true, nil
		}
		v, _ := e.reserved.Boolean(n.Name, cur)
		return v, nil

	case *rule.Not:
		v, err := e.boolean(n.X, s)
		return !v, err

	case *rule.Logical:
		return e.logical(n, s)

	case *rule.Compare:
		return e.compare(n, s)

	case *rule.Identity:
		l, err := e.element(n.Left, s)
		if err != nil {
			return false, err
		}
		r, err := e.element(n.Right, s)
		if err != nil {
			return false, err
		}
		same := l != nil && r != nil && l == r
		if n.Op == rule.OpNeq {
			return !same, nil
		}
		return same, nil

	case *rule.Quantifier:
		return e.quantifier(n, s)

	case *rule.NonEmpty:
		items, err := e.list(n.List, s)
		return len(items) > 0, err

	case *rule.Scoped:
		var v bool
		err := e.scoped(n, s, func() (err error) {
			v, err = e.boolean(n.X, s)
			return err
		})
		return v, err
	}

	return false, fmt.Errorf("eval: %T is not a boolean expression", n)
}

func (e *Evaluator) number(n rule.Node, s *Scope) (float64, error) {
	switch n := n.(type) {
	case *rule.NumLit:
		return n.Value, nil

	case *rule.NumTagRef:
		cur := s.Current()
		if tags, ok := cur.Tags(); ok {
			if v, found := tags.Num(n.Name); found {
				return v, nil
			}
		}
		v, _ := e.reserved.Numeric(n.Name, cur)
		return v, nil

	case *rule.Neg:
		v, err := e.number(n.X, s)
		return -v, err

	case *rule.Arith:
		l, err := e.number(n.Left, s)
		if err != nil {
			return 0, err
		}
		r, err := e.number(n.Right, s)
		if err != nil {
			return 0, err
		}
		return arith(n.Op, l, r)

	case *rule.Count:
		items, err := e.list(n.List, s)
		return float64(len(items)), err

	case *rule.Scoped:
		var v float64
		err := e.scoped(n, s, func() (err error) {
			v, err = e.number(n.X, s)
			return err
		})
		return v, err
	}

	return 0, fmt.Errorf("eval: %T is not a numeric expression", n)
}

func arith(op rule.Op, l, r float64) (float64, error) {
	switch op {
	case rule.OpAdd:
		return l + r, nil
	case rule.OpSub:
		return l - r, nil
	case rule.OpMul:
		return l * r, nil
	case rule.OpDiv:
		return l / r, nil
	case rule.OpMod:
		return math.Mod(l, r), nil
	}
	return 0, fmt.Errorf("eval: unknown arithmetic operator %q", op)
}

// logical folds every operand with &&= or ||=. All operands are evaluated so
// that an error anywhere in the chain surfaces regardless of order.
func (e *Evaluator) logical(n *rule.Logical, s *Scope) (bool, error) {
	if len(n.Operands) == 0 {
		return false, fmt.Errorf("eval: empty %s chain", n.Op)
	}

	acc := n.Op == rule.OpAnd
	for _, o := range n.Operands {
		v, err := e.boolean(o, s)
		if err != nil {
			return false, err
		}
		switch n.Op {
		case rule.OpAnd:
			acc = acc && v
		case rule.OpOr:
			acc = acc || v
		default:
			return false, fmt.Errorf("eval: unknown logical operator %q", n.Op)
		}
	}
	return acc, nil
}

func (e *Evaluator) compare(n *rule.Compare, s *Scope) (bool, error) {
	if n.Left.Kind() == rule.KindBoolean {
		l, err := e.boolean(n.Left, s)
		if err != nil {
			return false, err
		}
		r, err := e.boolean(n.Right, s)
		if err != nil {
			return false, err
		}
		switch n.Op {
		case rule.OpEq:
			return l == r, nil
		case rule.OpNeq:
			return l != r, nil
		}
		return false, fmt.Errorf("eval: %q does not compare booleans", n.Op)
	}

	l, err := e.number(n.Left, s)
	if err != nil {
		return false, err
	}
	r, err := e.number(n.Right, s)
	if err != nil {
		return false, err
	}

	switch n.Op {
	case rule.OpEq:
		return l == r, nil
	case rule.OpNeq:
		return l != r, nil
	case rule.OpLt:
		return l < r, nil
	case rule.OpLe:
		return l <= r, nil
	case rule.OpGt:
		return l > r, nil
	case rule.OpGe:
		return l >= r, nil
	}
	return false, fmt.Errorf("eval: unknown comparison %q", n.Op)
}

func (e *Evaluator) quantifier(n *rule.Quantifier, s *Scope) (bool, error) {
	items, err := e.list(n.Source, s)
	if err != nil {
		return false, err
	}

	want := n.Quant == rule.Exists
	for _, item := range items {
		v, err := e.bind(n.Var, item, n.Body, s)
		if err != nil {
			return false, err
		}
		if v == want {
			return want, nil
		}
	}
	return !want, nil
}

// bind evaluates body with name bound to el.
func (e *Evaluator) bind(name string, el graph.Element, body rule.Node, s *Scope) (bool, error) {
	defer s.Restore(s.Push(name, el))
	return e.boolean(body, s)
}

// scoped runs fn with the element bound to n.Var as the current element.
func (e *Evaluator) scoped(n *rule.Scoped, s *Scope, fn func() error) error {
	el, ok := s.Lookup(n.Var)
	if !ok {
		return &rule.UndefinedVariableError{Pos: -1, Name: n.Var}
	}
	defer s.Restore(s.Push(n.Var, el))
	return fn()
}

func (e *Evaluator) list(n rule.ListNode, s *Scope) ([]graph.Element, error) {
	switch n := n.(type) {
	case *rule.List:
		return sourceList(n.Source, s.Current())

	case *rule.Comprehension:
		items, err := e.list(n.Source, s)
		if err != nil {
			return nil, err
		}
		kept := make([]graph.Element, 0, len(items))
		for _, item := range items {
			v, err := e.bind(n.Var, item, n.Body, s)
			if err != nil {
				return nil, err
			}
			if v {
				kept = append(kept, item)
			}
		}
		return kept, nil

	case *rule.Scoped:
		inner, ok := n.X.(rule.ListNode)
		if !ok {
			return nil, fmt.Errorf("eval: %s is not a list", n)
		}
		var items []graph.Element
		err := e.scoped(n, s, func() (err error) {
			items, err = e.list(inner, s)
			return err
		})
		return items, err
	}

	return nil, fmt.Errorf("eval: %T is not a list expression", n)
}

func sourceList(src rule.Source, cur graph.Element) ([]graph.Element, error) {
	switch src {
	case rule.SourceSelf:
		return []graph.Element{cur}, nil
	case rule.SourceParent:
		if p := cur.Parent(); p != nil {
			return []graph.Element{p}, nil
		}
		return nil, nil
	case rule.SourceChildren:
		return graph.TaggedChildren(cur), nil
	case rule.SourceSiblings:
		return graph.Siblings(cur), nil
	case rule.SourceAdjacents:
		return graph.Adjacents(cur), nil
	}
	return nil, fmt.Errorf("eval: unknown list %v", src)
}

// element resolves an identity operand: a variable, self or parent. A
// missing parent resolves to nil.
func (e *Evaluator) element(n rule.Node, s *Scope) (graph.Element, error) {
	switch n := n.(type) {
	case *rule.VarRef:
		el, ok := s.Lookup(n.Name)
		if !ok {
			return nil, &rule.UndefinedVariableError{Pos: -1, Name: n.Name}
		}
		return el, nil
	case *rule.List:
		switch n.Source {
		case rule.SourceSelf:
			return s.Current(), nil
		case rule.SourceParent:
			return s.Current().Parent(), nil
		}
	}
	return nil, fmt.Errorf("eval: %s is not an element reference", n)
}
