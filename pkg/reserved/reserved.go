// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package reserved computes tags that are never stored on an element but
// derived from its kind or its place in the diagram. They act as fallbacks:
// an explicit tag of the same name always wins.
//
// Boolean reserved tags:
//
//   - isNode, isEdge, isPort, isLabel : the element's kind
//
// Structural reserved tags, readable as #name (count > 0) and $name (count):
//
//   - children  : tagged children
//   - adjacents : distinct tagged sources of incoming and targets of outgoing edges
//   - incoming  : incoming edges
//   - outgoing  : outgoing edges
package reserved

import (
	"sort"

	"github.com/tfctl/semfilter/pkg/graph"
)

// BoolFunc computes a boolean reserved tag.
type BoolFunc func(graph.Element) bool

// NumFunc computes a numeric reserved tag.
type NumFunc func(graph.Element) float64

// Registry maps reserved tag names to the functions that compute them. A
// Registry is immutable once built and safe for concurrent use.
type Registry struct {
	booleans map[string]BoolFunc
	numerics map[string]NumFunc
}

// Option customizes a Registry built with New.
type Option func(*Registry)

// WithBoolean adds or replaces a boolean reserved tag.
func WithBoolean(name string, fn BoolFunc) Option {
	return func(r *Registry) { r.booleans[name] = fn }
}

// WithNumeric adds or replaces a numeric reserved tag.
func WithNumeric(name string, fn NumFunc) Option {
	return func(r *Registry) { r.numerics[name] = fn }
}

// Without removes name from both tables.
func Without(name string) Option {
	return func(r *Registry) {
		delete(r.booleans, name)
		delete(r.numerics, name)
	}
}

var defaultRegistry = New()

// Default returns the shared registry holding the standard reserved tags.
func Default() *Registry { return defaultRegistry }

// New builds a registry with the standard reserved tags and then applies
// opts.
func New(opts ...Option) *Registry {
	r := &Registry{
		booleans: map[string]BoolFunc{
			"isNode":  isKind(graph.KindNode),
			"isEdge":  isKind(graph.KindEdge),
			"isPort":  isKind(graph.KindPort),
			"isLabel": isKind(graph.KindLabel),
		},
		numerics: map[string]NumFunc{},
	}

	structural := map[string]NumFunc{
		"children":  countOf(graph.TaggedChildren),
		"adjacents": countOf(graph.Adjacents),
		"incoming":  countOf(graph.Element.Incoming),
		"outgoing":  countOf(graph.Element.Outgoing),
	}
	for name, fn := range structural {
		r.numerics[name] = fn
		r.booleans[name] = positive(fn)
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Boolean evaluates the boolean reserved tag name on el. The second result is
// false when name is not reserved.
func (r *Registry) Boolean(name string, el graph.Element) (bool, bool) {
	fn, ok := r.booleans[name]
	if !ok {
		return false, false
	}
	return fn(el), true
}

// Numeric evaluates the numeric reserved tag name on el. The second result is
// false when name is not reserved.
func (r *Registry) Numeric(name string, el graph.Element) (float64, bool) {
	fn, ok := r.numerics[name]
	if !ok {
		return 0, false
	}
	return fn(el), true
}

// Names lists every reserved tag name, sorted.
func (r *Registry) Names() []string {
	seen := map[string]struct{}{}
	for n := range r.booleans {
		seen[n] = struct{}{}
	}
	for n := range r.numerics {
		seen[n] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func isKind(k graph.Kind) BoolFunc {
	return func(el graph.Element) bool { return el.Kind() == k }
}

func countOf(list func(graph.Element) []graph.Element) NumFunc {
	return func(el graph.Element) float64 { return float64(len(list(el))) }
}

func positive(fn NumFunc) BoolFunc {
	return func(el graph.Element) bool { return fn(el) > 0 }
}
