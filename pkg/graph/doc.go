// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package graph is the read-only view of a rendered diagram that semantic
// filters evaluate against.
//
// An Element is one node, edge, port or label of a hierarchical diagram. It
// exposes its parent, its ordered children, the edges incident to it and, for
// edges, the source and target elements. Elements carry tags out-of-band in a
// property bag keyed by TagsProperty; each tag is a name plus an optional
// numeric value. An element without that property is structural and is
// skipped by every graph-relative list (children, siblings, adjacents).
//
// The package also provides Node, an in-memory Element, and Model, which
// loads a sprotty-style JSON or YAML diagram into a tree of Nodes:
//
//	{
//	  "id": "root", "type": "graph",
//	  "children": [
//	    {"id": "n1", "type": "node:default",
//	     "properties": {"de.cau.cs.kieler.klighd.semanticFilter.tags": [{"tag": "hub", "num": 3}]}},
//	    {"id": "e1", "type": "edge", "sourceId": "n1", "targetId": "n1"}
//	  ]
//	}
//
// Filtering never mutates an Element.
package graph
