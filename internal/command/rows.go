// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"github.com/tfctl/semfilter/pkg/graph"
)

// elementRow is the row emitted for every tagged element by eval.
type elementRow struct {
	ID       string                 `json:"id" attr:"id,element id"`
	Kind     string                 `json:"kind" attr:"kind,graph node edge port label or unknown"`
	Type     string                 `json:"type" attr:"type,model type"`
	Parent   string                 `json:"parent,omitempty" attr:"parent,id of the containing element"`
	Depth    int                    `json:"depth" attr:"depth,nesting depth below the root"`
	Children []string               `json:"children,omitempty" attr:"children,ids of the contained elements"`
	Source   string                 `json:"source,omitempty" attr:"source,edge source id"`
	Target   string                 `json:"target,omitempty" attr:"target,edge target id"`
	Tags     string                 `json:"tags" attr:"tags,tags as name or name=num"`
	Tag      map[string]interface{} `json:"tag,omitempty" attr:"tag.NAME,tag value or true when it has no number"`
	Match    bool                   `json:"match" attr:"match,element passed every rule"`
}

type typed interface {
	Type() string
}

func newElementRow(el graph.Element) elementRow {
	row := elementRow{
		ID:   el.ID(),
		Kind: el.Kind().String(),
	}
	if t, ok := el.(typed); ok {
		row.Type = t.Type()
	}

	if p := el.Parent(); p != nil {
		row.Parent = p.ID()
	}
	for p := el.Parent(); p != nil; p = p.Parent() {
		row.Depth++
	}
	for _, c := range el.Children() {
		row.Children = append(row.Children, c.ID())
	}
	if s := el.Source(); s != nil {
		row.Source = s.ID()
	}
	if t := el.Target(); t != nil {
		row.Target = t.ID()
	}

	tags, _ := el.Tags()
	row.Tags = tags.String()
	for _, t := range tags {
		if row.Tag == nil {
			row.Tag = map[string]interface{}{}
		}
		if _, dup := row.Tag[t.Name]; dup {
			continue
		}
		if t.Num != nil {
			row.Tag[t.Name] = *t.Num
		} else {
			row.Tag[t.Name] = true
		}
	}

	return row
}

// ruleRow is the row emitted by check, convert and rules.
type ruleRow struct {
	Name      string `json:"name,omitempty" attr:"name,rule name"`
	Rule      string `json:"rule" attr:"rule,rule text as given or converted"`
	Canonical string `json:"canonical,omitempty" attr:"canonical,fully parenthesized form"`
	Kind      string `json:"kind,omitempty" attr:"kind,expression kind"`
	Default   bool   `json:"default" attr:"default,enabled unless toggled"`
	Legacy    bool   `json:"legacy" attr:"legacy,stored as a legacy rule tree"`
	Error     string `json:"error,omitempty" attr:"error,parse or conversion error"`
}
