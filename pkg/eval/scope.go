// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package eval

import (
	"github.com/tfctl/semfilter/pkg/graph"
)

type binding struct {
	name string
	el   graph.Element
}

// Scope is the stack of variable bindings active during one evaluation. The
// element the evaluation started on is the unnamed zeroth binding. A Scope
// belongs to a single call and must not be shared between goroutines.
type Scope struct {
	bindings []binding
}

// NewScope returns a scope whose current element is el.
func NewScope(el graph.Element) *Scope {
	s := &Scope{bindings: make([]binding, 1, 8)}
	s.bindings[0] = binding{el: el}
	return s
}

// Push binds name to el and returns a mark for Restore. Callers release the
// binding with defer s.Restore(mark) so a failing body cannot leave it
// behind.
func (s *Scope) Push(name string, el graph.Element) int {
	mark := len(s.bindings)
	s.bindings = append(s.bindings, binding{name: name, el: el})
	return mark
}

// Restore drops every binding pushed since mark was taken.
func (s *Scope) Restore(mark int) {
	for i := mark; i < len(s.bindings); i++ {
		s.bindings[i] = binding{}
	}
	s.bindings = s.bindings[:mark]
}

// Lookup resolves name to the innermost binding with that name.
func (s *Scope) Lookup(name string) (graph.Element, bool) {
	for i := len(s.bindings) - 1; i > 0; i-- {
		if s.bindings[i].name == name {
			return s.bindings[i].el, true
		}
	}
	return nil, false
}

// Current is the element most recently bound, or the starting element when
// nothing is bound.
func (s *Scope) Current() graph.Element {
	return s.bindings[len(s.bindings)-1].el
}

// Depth is the number of bindings, the starting element included.
func (s *Scope) Depth() int { return len(s.bindings) }
