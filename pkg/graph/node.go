// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package graph

// Node is the in-memory Element used by Model. The builder methods (AddChild,
// SetTags, Connect) are meant for constructing a diagram; once filtering
// starts the tree must not change.
type Node struct {
	id     string
	typ    string
	kind   Kind
	tags   Tags
	tagged bool

	parent   *Node
	children []Element

	source   *Node
	target   *Node
	incoming []Element
	outgoing []Element
}

var _ Element = (*Node)(nil)

// NewNode returns an untagged node of the given model type, for example
// "node", "edge:default" or "label".
func NewNode(id string, typ string) *Node {
	return &Node{id: id, typ: typ, kind: KindFromType(typ)}
}

// ID returns the element id.
func (n *Node) ID() string { return n.id }

// Type returns the model type the node was created with.
func (n *Node) Type() string { return n.typ }

// Kind returns the element kind derived from Type.
func (n *Node) Kind() Kind { return n.kind }

// Parent returns the containing element or nil at the root.
func (n *Node) Parent() Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Children returns the contained elements in model order.
func (n *Node) Children() []Element { return n.children }

// Source returns the source of an edge, nil for anything else.
func (n *Node) Source() Element {
	if n.source == nil {
		return nil
	}
	return n.source
}

// Target returns the target of an edge, nil for anything else.
func (n *Node) Target() Element {
	if n.target == nil {
		return nil
	}
	return n.target
}

// Incoming returns the edges that end at n.
func (n *Node) Incoming() []Element { return n.incoming }

// Outgoing returns the edges that start at n.
func (n *Node) Outgoing() []Element { return n.outgoing }

// Tags returns the tag collection, which may be empty but present.
func (n *Node) Tags() (Tags, bool) { return n.tags, n.tagged }

// SetTags attaches a tag collection. Calling it with no tags still marks the
// node as tagged.
func (n *Node) SetTags(tags ...Tag) *Node {
	n.tags = append(Tags{}, tags...)
	n.tagged = true
	return n
}

// AddChild appends children and sets their parent to n.
func (n *Node) AddChild(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Connect makes n an edge from source to target and registers it with both
// ends.
func (n *Node) Connect(source, target *Node) *Node {
	n.source = source
	n.target = target
	source.outgoing = append(source.outgoing, n)
	target.incoming = append(target.incoming, n)
	return n
}
