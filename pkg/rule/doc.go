// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package rule parses semantic filter rules into a typed AST.
//
// A rule is a boolean expression over the tags of a diagram element and of
// the elements around it:
//
//   - #name            : true when the element carries tag name
//   - $name            : the numeric value of tag name, 0 when absent
//   - true, false, 3.5 : literals
//   - ! - * / % + -    : negation and arithmetic
//   - < <= > >= = !=   : comparison; = and != also compare booleans and,
//     between variables, self and parent, element identity
//   - && ||            : conjunction and disjunction
//
// Graph-relative lists are self, parent, children, siblings and adjacents.
// They are used by quantifiers and comprehensions which bind a variable to
// each member in turn:
//
//   - exists[x:children|#leaf]   : some child is tagged leaf
//   - forall[x:adjacents|$w > 2] : every neighbour weighs more than 2
//   - $[x:children|#isNode] = 3  : exactly three children are nodes
//   - #[x:siblings|#hub]         : some sibling is a hub
//   - exists[x:children|x<exists[y:siblings|#t]>] : x<...> evaluates the
//     inner expression with x as the current element
//
// Inside a binder, self and parent refer to the bound element, not to the
// element the rule started on. exists[x:adjacents|x = self] therefore holds
// for any element with a neighbour. To find self-loops, bind the starting
// element first:
//
//   - exists[me:self|exists[x:adjacents|x = me]]
//
// A bare list used where a number is expected counts its members; where a
// boolean is expected it tests for at least one member.
//
// Precedence, tightest first: unary ! and -, then * / %, then + -, then
// < <= > >=, then = !=, then &&, then ||. Parentheses override it.
//
// Parse reports malformed text as *SyntaxError, operands of the wrong kind as
// *TypeError and variables used outside their binder as
// *UndefinedVariableError. Every error is raised at parse time.
package rule
