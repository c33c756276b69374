// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/semfilter/internal/attrs"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// testBuildFiltersCase represents a single test case for TestBuildFilters.
type testBuildFiltersCase struct {
	Name      string   `yaml:"name"`
	Spec      string   `yaml:"spec"`
	Delimiter string   `yaml:"delimiter"`
	Want      []Filter `yaml:"want"`
	WantCount int      `yaml:"wantCount"`
	WantErr   string   `yaml:"wantErr"`
}

// testOperandCase covers the check* helpers. Value is decoded as whatever
// YAML type it carries.
type testOperandCase struct {
	Name   string      `yaml:"name"`
	Value  interface{} `yaml:"value"`
	Filter Filter      `yaml:"filter"`
	Want   bool        `yaml:"want"`
}

// testFilterDatasetCase represents a single test case for TestFilterDataset.
type testFilterDatasetCase struct {
	Name    string   `yaml:"name"`
	Spec    string   `yaml:"spec"`
	WantIDs []string `yaml:"wantIds"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v interface{}) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func TestBuildFilters(t *testing.T) {
	var tests []testBuildFiltersCase
	require.NoError(t, loadTestData("build_filters.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			if tt.Delimiter != "" {
				t.Setenv(DelimEnvVar, tt.Delimiter)
			}

			got, err := BuildFilters(tt.Spec)
			if tt.WantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.WantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.WantCount)
			for i, filter := range tt.Want {
				assert.Equal(t, filter, got[i])
			}
		})
	}
}

func TestCheckOperands(t *testing.T) {
	var tests []testOperandCase
	require.NoError(t, loadTestData("check_operands.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			var got bool
			switch v := tt.Value.(type) {
			case string:
				got = checkStringOperand(v, tt.Filter)
			case []interface{}, map[string]interface{}:
				got = checkContainsOperand(v, tt.Filter)
			default:
				num, ok := toFloat64(v)
				require.True(t, ok, "value %v (%T)", v, v)
				got = checkNumericOperand(num, tt.Filter)
			}
			assert.Equal(t, tt.Want, got)
		})
	}
}

func TestToFloat64(t *testing.T) {
	tests := []struct {
		value  interface{}
		want   float64
		wantOk bool
	}{
		{3.5, 3.5, true},
		{float32(2), 2, true},
		{7, 7, true},
		{int64(-4), -4, true},
		{uint64(9), 9, true},
		{"12", 0, false},
		{true, 0, false},
		{nil, 0, false},
	}

	for _, tt := range tests {
		got, ok := toFloat64(tt.value)
		assert.Equal(t, tt.wantOk, ok, "%v", tt.value)
		assert.Equal(t, tt.want, got, "%v", tt.value)
	}
}

const rows = `[
	{"id": "root", "kind": "node", "depth": 0, "children": ["svc", "db"], "tags": ""},
	{"id": "svc", "kind": "node", "depth": 1, "children": ["svc.label"], "tags": "active,score=9"},
	{"id": "svc.label", "kind": "label", "depth": 2, "tags": "active"},
	{"id": "db", "kind": "node", "depth": 1, "tags": "active,disabled,score=12"},
	{"id": "svc-db", "kind": "edge", "depth": 1, "tags": ""}
]`

var rowAttrs = attrs.AttrList{
	{Key: "id", OutputKey: "id", Include: true},
	{Key: "kind", OutputKey: "kind", Include: true},
	{Key: "depth", OutputKey: "depth", Include: true},
	{Key: "children[*]", OutputKey: "children", Include: true},
	{Key: "tags", OutputKey: "tags", Include: false},
}

func TestFilterDataset(t *testing.T) {
	var tests []testFilterDatasetCase
	require.NoError(t, loadTestData("filter_dataset.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			filters, err := BuildFilters(tt.Spec)
			require.NoError(t, err)

			got, err := FilterDataset(gjson.Parse(rows), rowAttrs, filters)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, row := range got {
				ids = append(ids, row["id"].(string))
			}
			assert.Equal(t, tt.WantIDs, ids)
		})
	}
}

func TestFilterDatasetProjects(t *testing.T) {
	got, err := FilterDataset(gjson.Parse(rows), rowAttrs, nil)
	require.NoError(t, err)
	require.Len(t, got, 5)

	assert.Equal(t, []interface{}{"svc", "db"}, got[0]["children"])
	assert.Equal(t, float64(1), got[1]["depth"])
	assert.Nil(t, got[2]["children"])
	// Excluded attributes are still projected so they can be sorted on.
	assert.Equal(t, "active", got[2]["tags"])
}

func TestFilterDatasetUnknownKey(t *testing.T) {
	filters, err := BuildFilters("colour=red")
	require.NoError(t, err)

	_, err = FilterDataset(gjson.Parse(rows), rowAttrs, filters)
	require.EqualError(t, err, "filter key not found: colour")
}
