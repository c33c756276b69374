// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package legacy

import (
	"fmt"
	"math"

	"github.com/apex/log"

	"github.com/tfctl/semfilter/pkg/rule"
)

// UnknownConnectiveError reports a connective name the converter does not
// know.
type UnknownConnectiveError struct {
	Name string
}

func (e *UnknownConnectiveError) Error() string {
	return fmt.Sprintf("unknown legacy connective %q", e.Name)
}

// InvalidTagError reports a tag leaf whose name cannot be written as rule
// text, such as "x-1", which would read as a subtraction.
type InvalidTagError struct {
	Tag string
}

func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("legacy tag %q is not a valid rule tag name", e.Tag)
}

// Option configures Convert.
type Option func(*converter)

// Permissive makes unknown connectives convert to the literal true, logging
// a warning, instead of failing. This is how older clients behaved; it can
// hide unsupported rules and should be reserved for migrating existing data.
func Permissive() Option {
	return func(c *converter) { c.permissive = true }
}

type converter struct {
	permissive bool
}

// slotKind is the kind an operand position expects. Only tag leaves print
// differently per kind.
type slotKind int

const (
	boolean slotKind = iota
	numeric
)

// Convert renders r as rule text.
func Convert(r *Rule, opts ...Option) (string, error) {
	if r == nil {
		return "", fmt.Errorf("nil legacy rule")
	}

	c := &converter{}
	for _, opt := range opts {
		opt(c)
	}

	text, err := c.convert(r, boolean)
	if err != nil {
		return "", err
	}
	log.Debugf("legacy rule converted: text=%s", text)
	return text, nil
}

func (c *converter) convert(r *Rule, ctx slotKind) (string, error) {
	if r.IsLeaf() {
		if !rule.IsTagName(r.Tag) {
			return "", &InvalidTagError{Tag: r.Tag}
		}
		if ctx == numeric {
			return "$" + r.Tag, nil
		}
		return "#" + r.Tag, nil
	}

	switch r.Name {
	case True:
		return "true", nil
	case False:
		return "false", nil

	case And:
		return c.binary(r, "&&", boolean)
	case Or:
		return c.binary(r, "||", boolean)
	case LogicEqual:
		return c.binary(r, "=", boolean)
	case Not:
		x, err := c.operand(r, r.Operand, "operand", boolean)
		if err != nil {
			return "", err
		}
		return "(!" + x + ")", nil
	case IfThen:
		cond, then, err := c.pair(r, boolean)
		if err != nil {
			return "", err
		}
		return "(!" + cond + "||" + then + ")", nil
	case IfThenElse:
		return c.ifThenElse(r)

	case LessThan:
		return c.binary(r, "<", numeric)
	case GreaterThan:
		return c.binary(r, ">", numeric)
	case LessEquals:
		return c.binary(r, "<=", numeric)
	case GreaterEquals:
		return c.binary(r, ">=", numeric)
	case NumericEqual:
		return c.binary(r, "=", numeric)
	case NumericNotEqual:
		return c.binary(r, "!=", numeric)

	case NumericAddition:
		return c.binary(r, "+", numeric)
	case NumericSubtraction:
		return c.binary(r, "-", numeric)
	case NumericMultiplication:
		return c.binary(r, "*", numeric)
	case NumericDivision:
		return c.binary(r, "/", numeric)
	case Const:
		if r.Num == nil {
			return "", fmt.Errorf("legacy %s has no num", r.Name)
		}
		if math.IsInf(*r.Num, 0) || math.IsNaN(*r.Num) {
			return "", fmt.Errorf("legacy %s num %v cannot be written as rule text", r.Name, *r.Num)
		}
		return "(" + rule.FormatNumber(*r.Num) + ")", nil
	case Identity:
		x, err := c.operand(r, r.Operand, "operand", numeric)
		if err != nil {
			return "", err
		}
		return "(" + x + ")", nil
	}

	if c.permissive {
		log.Warnf("unknown legacy connective %q converted to true", r.Name)
		return "true", nil
	}
	return "", &UnknownConnectiveError{Name: r.Name}
}

func (c *converter) binary(r *Rule, op string, ctx slotKind) (string, error) {
	l, rt, err := c.pair(r, ctx)
	if err != nil {
		return "", err
	}
	return "(" + l + op + rt + ")", nil
}

func (c *converter) pair(r *Rule, ctx slotKind) (string, string, error) {
	l, err := c.operand(r, r.LeftOperand, "leftOperand", ctx)
	if err != nil {
		return "", "", err
	}
	rt, err := c.operand(r, r.RightOperand, "rightOperand", ctx)
	if err != nil {
		return "", "", err
	}
	return l, rt, nil
}

// ifThenElse renders "first ? second : third" as
// ((first&&second)||(!first&&third)).
func (c *converter) ifThenElse(r *Rule) (string, error) {
	first, err := c.operand(r, r.FirstOperand, "firstOperand", boolean)
	if err != nil {
		return "", err
	}
	second, err := c.operand(r, r.SecondOperand, "secondOperand", boolean)
	if err != nil {
		return "", err
	}
	third, err := c.operand(r, r.ThirdOperand, "thirdOperand", boolean)
	if err != nil {
		return "", err
	}
	return "((" + first + "&&" + second + ")||(!" + first + "&&" + third + "))", nil
}

func (c *converter) operand(parent, o *Rule, slot string, ctx slotKind) (string, error) {
	if o == nil {
		return "", fmt.Errorf("legacy %s is missing %s", parent.Name, slot)
	}
	return c.convert(o, ctx)
}
