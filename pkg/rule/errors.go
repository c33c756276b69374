// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package rule

import "fmt"

// SyntaxError reports malformed rule text. Pos is a byte offset into the
// rule.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", e.Pos, e.Msg)
}

// TypeError reports an operator applied to operands of the wrong kind.
type TypeError struct {
	Pos  int
	Op   string
	Want Kind
	Got  Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error at %d: %s wants %s operands, got %s", e.Pos, e.Op, e.Want, e.Got)
}

// UndefinedVariableError reports a reference to a variable outside of the
// quantifier or comprehension that binds it. The parser reports it with the
// reference position; the evaluator reports it with Pos -1 when handed an
// AST that was not produced by Parse.
type UndefinedVariableError struct {
	Pos  int
	Name string
}

func (e *UndefinedVariableError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("undefined variable %q", e.Name)
	}
	return fmt.Sprintf("undefined variable %q at %d", e.Name, e.Pos)
}

func syntaxErrorf(pos int, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
