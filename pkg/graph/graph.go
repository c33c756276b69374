// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package graph

import (
	"strconv"
	"strings"
)

// TagsProperty is the property key under which an element's tags are stored.
const TagsProperty = "de.cau.cs.kieler.klighd.semanticFilter.tags"

// Kind is the kind of a diagram element.
type Kind int

const (
	KindUnknown Kind = iota
	KindGraph
	KindNode
	KindEdge
	KindPort
	KindLabel
)

var kindNames = map[Kind]string{
	KindUnknown: "unknown",
	KindGraph:   "graph",
	KindNode:    "node",
	KindEdge:    "edge",
	KindPort:    "port",
	KindLabel:   "label",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// KindFromType maps a model type such as "node:default" or "edge" to a Kind.
// Only the segment before the first ':' is significant.
func KindFromType(typ string) Kind {
	base, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(typ)), ":")
	for k, name := range kindNames {
		if k != KindUnknown && name == base {
			return k
		}
	}
	return KindUnknown
}

// Element is a read-only diagram element. Implementations must return an
// untyped nil from Parent, Source and Target when the reference is absent.
type Element interface {
	ID() string
	Kind() Kind
	Parent() Element
	Children() []Element
	// Source and Target are only set on edges.
	Source() Element
	Target() Element
	// Incoming and Outgoing return the edges whose target, respectively
	// source, is this element.
	Incoming() []Element
	Outgoing() []Element
	// Tags returns the element's tag collection and false when the element
	// carries none at all.
	Tags() (Tags, bool)
}

// Tag is a named marker with an optional numeric value.
type Tag struct {
	Name string   `json:"tag" yaml:"tag"`
	Num  *float64 `json:"num,omitempty" yaml:"num,omitempty"`
}

// NewTag returns a tag without a numeric value.
func NewTag(name string) Tag {
	return Tag{Name: name}
}

// NewNumTag returns a tag carrying num.
func NewNumTag(name string, num float64) Tag {
	return Tag{Name: name, Num: &num}
}

// Value is the tag's numeric value, 0 when it has none.
func (t Tag) Value() float64 {
	if t.Num == nil {
		return 0
	}
	return *t.Num
}

// Tags is an unordered tag collection.
type Tags []Tag

// Has reports whether a tag called name is present.
func (ts Tags) Has(name string) bool {
	for _, t := range ts {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Num returns the numeric value of the first tag called name.
func (ts Tags) Num(name string) (float64, bool) {
	for _, t := range ts {
		if t.Name == name {
			return t.Value(), true
		}
	}
	return 0, false
}

// String renders the collection as "name,name=num" in collection order.
func (ts Tags) String() string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.Name
		if t.Num != nil {
			parts[i] += "=" + strconv.FormatFloat(*t.Num, 'f', -1, 64)
		}
	}
	return strings.Join(parts, ",")
}

// Tagged reports whether el carries a tag collection.
func Tagged(el Element) bool {
	if el == nil {
		return false
	}
	_, ok := el.Tags()
	return ok
}

// TaggedChildren returns the children of el that carry tags.
func TaggedChildren(el Element) []Element {
	return keepTagged(el.Children(), nil)
}

// Siblings returns the tagged children of el's parent, el itself excluded.
func Siblings(el Element) []Element {
	parent := el.Parent()
	if parent == nil {
		return nil
	}
	return keepTagged(parent.Children(), el)
}

// Adjacents returns the sources of el's incoming edges followed by the
// targets of its outgoing edges. Untagged elements are skipped and every
// element appears once.
func Adjacents(el Element) []Element {
	var out []Element
	seen := func(c Element) bool {
		for _, o := range out {
			if o == c {
				return true
			}
		}
		return false
	}

	for _, e := range el.Incoming() {
		if src := e.Source(); Tagged(src) && !seen(src) {
			out = append(out, src)
		}
	}
	for _, e := range el.Outgoing() {
		if tgt := e.Target(); Tagged(tgt) && !seen(tgt) {
			out = append(out, tgt)
		}
	}

	return out
}

// keepTagged filters candidates down to tagged elements other than skip.
func keepTagged(candidates []Element, skip Element) []Element {
	out := make([]Element, 0, len(candidates))
	for _, c := range candidates {
		if c == skip || !Tagged(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}
