// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package driller

import (
	"embed"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// drillCase represents a single test case for TestDrill.
type drillCase struct {
	Name     string                 `yaml:"name"`
	JSON     map[string]interface{} `yaml:"json"`
	Path     string                 `yaml:"path"`
	Expected string                 `yaml:"expected"`
	IsNil    bool                   `yaml:"isNil"`
	IsArray  bool                   `yaml:"isArray"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v interface{}) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func TestDrill(t *testing.T) {
	var tests []drillCase
	require.NoError(t, loadTestData("drill_cases.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			raw, err := json.Marshal(tt.JSON)
			require.NoError(t, err)
			result := Drill(string(raw), tt.Path)

			if tt.IsNil {
				assert.False(t, result.Exists(), "got %v", result.Value())
				return
			}

			require.True(t, result.Exists())
			if tt.IsArray {
				assert.True(t, result.IsArray(), "got %v", result.Value())
				return
			}
			assert.Equal(t, tt.Expected, result.String())
		})
	}
}

func TestDrillEmptyPath(t *testing.T) {
	result := Drill(`{"id":"n1"}`, "")
	assert.Equal(t, "n1", result.Get("id").String())
}
