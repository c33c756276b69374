// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChopPrefix(t *testing.T) {
	tests := []struct {
		name string
		ids  []interface{}
		want []interface{}
	}{
		{"empty dataset", []interface{}{}, []interface{}{}},
		{"single value", []interface{}{"g.net.a.p1"}, []interface{}{"..a.p1"}},
		{
			"two shared segments",
			[]interface{}{"g.net.a.p1", "g.net.b.p1", "g.net.c.label"},
			[]interface{}{"..a.p1", "..b.p1", "..c.label"},
		},
		{
			"one shared segment only",
			[]interface{}{"g.net.a.p1", "g.lan.b.p1"},
			[]interface{}{"g.net.a.p1", "g.lan.b.p1"},
		},
		{
			"too few segments would remain",
			[]interface{}{"g.net.a.p1", "g.net.b"},
			[]interface{}{"g.net.a.p1", "g.net.b"},
		},
		{
			"missing and non-string values are skipped",
			[]interface{}{"g.net.a.p1", nil, 3.0, "g.net.b.p2"},
			[]interface{}{"..a.p1", nil, 3.0, "..b.p2"},
		},
		{
			"identical values",
			[]interface{}{"g.net", "g.net"},
			[]interface{}{"g.net", "g.net"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataset := make([]map[string]interface{}, len(tt.ids))
			for i, id := range tt.ids {
				dataset[i] = map[string]interface{}{"id": id, "kind": "node"}
			}

			chopPrefix(dataset, "id")

			for i, row := range dataset {
				assert.Equal(t, tt.want[i], row["id"])
				assert.Equal(t, "node", row["kind"])
			}
		})
	}
}

func TestChopPrefixPerKey(t *testing.T) {
	dataset := []map[string]interface{}{
		{"id": "g.net.a.p1", "parent": "g.net.a"},
		{"id": "g.net.b.p1", "parent": "g.net.b"},
	}

	chopPrefix(dataset, "id", "parent")

	assert.Equal(t, "..a.p1", dataset[0]["id"])
	assert.Equal(t, "g.net.a", dataset[0]["parent"])
	assert.Equal(t, "..b.p1", dataset[1]["id"])
}
