// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package graph

import (
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Model is a loaded diagram: the root element plus an id index.
type Model struct {
	Root  *Node
	index map[string]*Node
	order []*Node
}

// Get returns the element with the given id.
func (m *Model) Get(id string) (*Node, bool) {
	n, ok := m.index[id]
	return n, ok
}

// Len is the number of elements in the model, root included.
func (m *Model) Len() int { return len(m.order) }

// Walk calls fn for every element, parents before children, in model order.
// It stops at the first error fn returns.
func (m *Model) Walk(fn func(Element) error) error {
	for _, n := range m.order {
		if err := fn(n); err != nil {
			return err
		}
	}
	return nil
}

// NewModel indexes an already built tree. Edges must have been connected by
// the caller.
func NewModel(root *Node) (*Model, error) {
	b := newBuilder()
	if err := b.index(root); err != nil {
		return nil, err
	}
	return &Model{Root: root, index: b.byID, order: b.order}, nil
}

// LoadJSON builds a Model from a sprotty-style JSON document.
func LoadJSON(data []byte) (*Model, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON model")
	}

	b := newBuilder()
	root, err := b.fromJSON(gjson.ParseBytes(data), "$")
	if err != nil {
		return nil, err
	}
	return b.finish(root)
}

// yamlElement mirrors the JSON element shape for YAML documents.
type yamlElement struct {
	ID         string               `yaml:"id"`
	Type       string               `yaml:"type"`
	SourceID   string               `yaml:"sourceId"`
	TargetID   string               `yaml:"targetId"`
	Properties map[string]yaml.Node `yaml:"properties"`
	Children   []yamlElement        `yaml:"children"`
}

// LoadYAML builds a Model from a YAML document with the same shape as the
// JSON form.
func LoadYAML(data []byte) (*Model, error) {
	var doc yamlElement
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML model: %w", err)
	}

	b := newBuilder()
	root, err := b.fromYAML(doc, "$")
	if err != nil {
		return nil, err
	}
	return b.finish(root)
}

// pendingEdge is an edge whose ends are resolved once every id is known.
type pendingEdge struct {
	edge     *Node
	sourceID string
	targetID string
}

type builder struct {
	byID  map[string]*Node
	order []*Node
	edges []pendingEdge
}

func newBuilder() *builder {
	return &builder{byID: map[string]*Node{}}
}

func (b *builder) add(id, typ, path string) (*Node, error) {
	n := NewNode(id, typ)
	if err := b.register(n, path); err != nil {
		return nil, err
	}
	return n, nil
}

func (b *builder) register(n *Node, path string) error {
	if n.id == "" {
		return fmt.Errorf("%s: element has no id", path)
	}
	if _, dup := b.byID[n.id]; dup {
		return fmt.Errorf("%s: duplicate element id %q", path, n.id)
	}

	b.byID[n.id] = n
	b.order = append(b.order, n)
	return nil
}

func (b *builder) link(n *Node, sourceID, targetID, path string) error {
	switch {
	case sourceID == "" && targetID == "":
		return nil
	case sourceID == "" || targetID == "":
		return fmt.Errorf("%s: edge %q needs both sourceId and targetId", path, n.id)
	}
	b.edges = append(b.edges, pendingEdge{edge: n, sourceID: sourceID, targetID: targetID})
	return nil
}

func (b *builder) fromJSON(r gjson.Result, path string) (*Node, error) {
	if !r.IsObject() {
		return nil, fmt.Errorf("%s: element is not an object", path)
	}

	n, err := b.add(r.Get("id").String(), r.Get("type").String(), path)
	if err != nil {
		return nil, err
	}

	if raw, ok := r.Get("properties").Map()[TagsProperty]; ok {
		tags, err := jsonTags(raw, path)
		if err != nil {
			return nil, err
		}
		n.SetTags(tags...)
	}

	if err := b.link(n, r.Get("sourceId").String(), r.Get("targetId").String(), path); err != nil {
		return nil, err
	}

	for i, c := range r.Get("children").Array() {
		child, err := b.fromJSON(c, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}

	return n, nil
}

// jsonTags decodes the [{tag, num?}] array stored under TagsProperty.
func jsonTags(raw gjson.Result, path string) (Tags, error) {
	if !raw.IsArray() {
		return nil, fmt.Errorf("%s: %s is not an array", path, TagsProperty)
	}

	tags := make(Tags, 0, len(raw.Array()))
	for i, t := range raw.Array() {
		name := t.Get("tag")
		if name.Type != gjson.String || name.String() == "" {
			return nil, fmt.Errorf("%s: tag %d has no name", path, i)
		}

		num := t.Get("num")
		switch num.Type {
		case gjson.Null:
			tags = append(tags, NewTag(name.String()))
		case gjson.Number:
			tags = append(tags, NewNumTag(name.String(), num.Float()))
		default:
			return nil, fmt.Errorf("%s: tag %q has a non-numeric num", path, name.String())
		}
	}
	return tags, nil
}

func (b *builder) fromYAML(e yamlElement, path string) (*Node, error) {
	n, err := b.add(e.ID, e.Type, path)
	if err != nil {
		return nil, err
	}

	if raw, ok := e.Properties[TagsProperty]; ok {
		var tags Tags
		if err := raw.Decode(&tags); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", path, TagsProperty, err)
		}
		for i, t := range tags {
			if t.Name == "" {
				return nil, fmt.Errorf("%s: tag %d has no name", path, i)
			}
		}
		n.SetTags(tags...)
	}

	if err := b.link(n, e.SourceID, e.TargetID, path); err != nil {
		return nil, err
	}

	for i, c := range e.Children {
		child, err := b.fromYAML(c, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}

	return n, nil
}

// finish resolves edge ends and returns the model.
func (b *builder) finish(root *Node) (*Model, error) {
	for _, pe := range b.edges {
		src, ok := b.byID[pe.sourceID]
		if !ok {
			return nil, fmt.Errorf("edge %q: unknown source %q", pe.edge.id, pe.sourceID)
		}
		tgt, ok := b.byID[pe.targetID]
		if !ok {
			return nil, fmt.Errorf("edge %q: unknown target %q", pe.edge.id, pe.targetID)
		}
		pe.edge.Connect(src, tgt)
	}

	log.Debugf("model loaded: elements=%d edges=%d", len(b.order), len(b.edges))
	return &Model{Root: root, index: b.byID, order: b.order}, nil
}

// index walks a tree that was built by hand.
func (b *builder) index(n *Node) error {
	if err := b.register(n, n.id); err != nil {
		return err
	}

	for _, c := range n.children {
		if err := b.index(c.(*Node)); err != nil {
			return err
		}
	}
	return nil
}
