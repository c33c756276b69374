// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/semfilter/internal/attrs"
)

const rowsDoc = `{"data":[
	{"id": "svc", "kind": "node", "depth": 1, "tags": "active,score=9", "tag": {"score": 9}},
	{"id": "db", "kind": "node", "depth": 1, "tags": "active,score=12", "tag": {"score": 12}},
	{"id": "svc.label", "kind": "label", "depth": 2, "tags": "active"},
	{"id": "svc-db", "kind": "edge", "depth": 1, "tags": "link"}
]}`

var rowAttrs = attrs.AttrList{
	{Key: "id", OutputKey: "id", Include: true},
	{Key: "kind", OutputKey: "kind", Include: true},
	{Key: "tag.score", OutputKey: "score", Include: true},
	{Key: "depth", OutputKey: "depth", Include: false},
}

// newCmd returns a command whose output flags hold the given values.
func newCmd(output, filter, sort string, titles bool) *cli.Command {
	return &cli.Command{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: output},
			&cli.StringFlag{Name: "filter", Value: filter},
			&cli.StringFlag{Name: "sort", Value: sort},
			&cli.BoolFlag{Name: "titles", Value: titles},
			&cli.BoolFlag{Name: "color"},
			&cli.IntFlag{Name: "padding", Value: 2},
		},
		Metadata: map[string]any{},
	}
}

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"id": "zebra", "score": 3.0, "kind": "node"},
		{"id": "Alpha", "score": 1.5, "kind": "edge"},
		{"id": "beta", "score": 1.25, "kind": "node"},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{"ascending by id", "id", []string{"Alpha", "beta", "zebra"}},
		{"descending by id", "-id", []string{"zebra", "beta", "Alpha"}},
		{"fractional scores compare exactly", "score", []string{"beta", "Alpha", "zebra"}},
		{"descending by score", "-score", []string{"zebra", "Alpha", "beta"}},
		{"case sensitive", "!id", []string{"Alpha", "beta", "zebra"}},
		{"case sensitive descending", "-!id", []string{"zebra", "beta", "Alpha"}},
		{"multiple fields", "kind, -score", []string{"Alpha", "zebra", "beta"}},
		{"empty spec keeps order", "", []string{"zebra", "Alpha", "beta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)

			got := make([]string, len(data))
			for i, row := range data {
				got[i] = row["id"].(string)
			}
			assert.Equal(t, tt.wantOrder, got)
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		empty []string
		want  string
	}{
		{"nil", nil, nil, ""},
		{"nil custom empty", nil, []string{"-"}, "-"},
		{"empty string custom empty", "", []string{"-"}, "-"},
		{"string", "svc", nil, "svc"},
		{"int", 42, nil, "42"},
		{"zero is a value", 0.0, []string{"-"}, "0"},
		{"whole float", 12.0, nil, "12"},
		{"fraction", 0.25, nil, "0.25"},
		{"bool", false, []string{"-"}, "false"},
		{"list", []interface{}{"a", "b"}, nil, `["a","b"]`},
		{"empty list", []interface{}{}, []string{"-"}, "-"},
		{"map", map[string]interface{}{"score": 9.0}, nil, `{"score":9}`},
		{"empty map", map[string]interface{}{}, []string{"-"}, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.value, tt.empty...))
		})
	}
}

func TestNewTag(t *testing.T) {
	assert.Equal(t, schemaTag{Name: "id"}, NewTag("", "id"))
	assert.Equal(t, schemaTag{Name: "id", Description: "element id"}, NewTag("", "id, element id"))
	assert.Equal(t, schemaTag{Name: "edge.source"}, NewTag("edge", "source"))
	assert.Equal(t, schemaTag{}, NewTag("edge", ""))
}

func TestDumpSchema(t *testing.T) {
	type inner struct {
		Source string `attr:"source"`
		Target string `attr:"target"`
	}
	type row struct {
		ID     string  `attr:"id,element id"`
		Kind   string  `attr:"kind"`
		Edge   *inner  `attr:"edge"`
		Hidden string  `attr:"-"`
		Plain  string
		Score  float64 `attr:"tag.<name>,numeric tag value"`
	}

	var buf bytes.Buffer
	DumpSchema(reflect.TypeOf(row{}), &buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, []string{
		"edge",
		"edge.source",
		"edge.target",
		"id           element id",
		"kind",
		"tag.<name>   numeric tag value",
	}, lines[2:])
}

func TestDumpSchemaNoTags(t *testing.T) {
	var buf bytes.Buffer
	DumpSchema(reflect.TypeOf(struct{ A int }{}), &buf)
	assert.NotContains(t, buf.String(), "A")
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")
	assert.NotNil(t, header)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer

	cmd := newCmd("text", "", "", false)
	assert.False(t, UseColor(cmd, &buf), "buffers are never terminals")

	flag := cmd.Flags[4].(*cli.BoolFlag)
	require.NoError(t, flag.Set("color", "true"))
	assert.True(t, UseColor(cmd, &buf), "explicit flag wins")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, UseColor(newCmd("text", "", "", false), &buf))
}

func TestTableWriter(t *testing.T) {
	rows := []map[string]interface{}{
		{"id": "svc", "kind": "node", "score": 9.0, "depth": 1.0},
		{"id": "svc.label", "kind": "label", "score": nil, "depth": 2.0},
	}

	t.Run("titles header and footer", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := newCmd("text", "", "", true)
		cmd.Metadata["header"] = "matches"
		cmd.Metadata["footer"] = "2 of 7 elements"

		TableWriter(rows, rowAttrs, cmd, &buf)
		out := buf.String()

		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		assert.Equal(t, "matches", strings.TrimSpace(lines[0]))
		assert.Equal(t, "2 of 7 elements", strings.TrimSpace(lines[len(lines)-1]))
		assert.Equal(t, []string{"id", "kind", "score"}, strings.Fields(lines[1]))
		assert.Equal(t, []string{"svc", "node", "9"}, strings.Fields(lines[2]))
		assert.Equal(t, []string{"svc.label", "label", "-"}, strings.Fields(lines[3]))
		assert.NotContains(t, out, "depth")
	})

	t.Run("no titles", func(t *testing.T) {
		var buf bytes.Buffer
		TableWriter(rows, rowAttrs, newCmd("text", "", "", false), &buf)
		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		assert.Equal(t, []string{"svc", "node", "9"}, strings.Fields(lines[0]))
	})

	t.Run("empty result prints only the footer", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := newCmd("text", "", "", true)
		cmd.Metadata["footer"] = "0 of 7 elements"
		TableWriter(nil, rowAttrs, cmd, &buf)
		assert.Equal(t, "0 of 7 elements", strings.TrimSpace(buf.String()))
	})
}

func TestSliceDiceSpit(t *testing.T) {
	tests := []struct {
		name   string
		output string
		filter string
		sort   string
		want   string
	}{
		{
			name:   "json sorted",
			output: "json",
			sort:   "-score",
			want:   `[{"id":"db","kind":"node","score":12},{"id":"svc","kind":"node","score":9},{"id":"svc.label","kind":"label","score":null},{"id":"svc-db","kind":"edge","score":null}]` + "\n",
		},
		{
			name:   "json filtered on hidden column",
			output: "json",
			filter: "depth>1",
			want:   `[{"id":"svc.label","kind":"label","score":null}]` + "\n",
		},
		{
			name:   "json empty",
			output: "json",
			filter: "kind=port",
			want:   "[]\n",
		},
		{
			name:   "yaml",
			output: "yaml",
			filter: "kind=edge",
			want:   "- id: svc-db\n  kind: edge\n  score: null\n",
		},
		{
			name:   "raw ignores filters",
			output: "raw",
			filter: "kind=edge",
			want:   rowsDoc,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			raw := *bytes.NewBufferString(rowsDoc)
			err := SliceDiceSpit(raw, rowAttrs, newCmd(tt.output, tt.filter, tt.sort, false), "data", &buf, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestSliceDiceSpitText(t *testing.T) {
	var buf bytes.Buffer
	var seen int

	al := append(attrs.AttrList{}, rowAttrs...)
	al[1].TransformSpec = "u"

	raw := *bytes.NewBufferString(rowsDoc)
	err := SliceDiceSpit(raw, al, newCmd("text", "kind=node", "id", false), "data", &buf,
		func(rows []map[string]interface{}) error {
			seen = len(rows)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, 2, seen)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"db", "NODE", "12"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"svc", "NODE", "9"}, strings.Fields(lines[1]))
}

func TestSliceDiceSpitErrors(t *testing.T) {
	raw := *bytes.NewBufferString(rowsDoc)

	err := SliceDiceSpit(raw, rowAttrs, newCmd("json", "colour=red", "", false), "data", &bytes.Buffer{}, nil)
	assert.EqualError(t, err, "filter key not found: colour")

	err = SliceDiceSpit(raw, rowAttrs, newCmd("json", "kind", "", false), "data", &bytes.Buffer{}, nil)
	assert.ErrorContains(t, err, "missing operator")
}
