// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig sets SEMFILTER_CFG_FILE to point to a test config file.
// Returns cleanup function that should be deferred.
func setupTestConfig(t *testing.T, testdataFile string) (cleanup func()) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testdataFile))
	require.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv(EnvVar, absPath)

	// Reset the global Config to force reload
	Config = Type{}

	return func() {
		Config = Type{}
	}
}

// withConfig sets up a test config, loads it and runs fn.
func withConfig(t *testing.T, testFile string, fn func(t *testing.T)) {
	t.Helper()
	cleanup := setupTestConfig(t, testFile)
	defer cleanup()
	_, err := Load()
	require.NoError(t, err)
	fn(t)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, "json", cfg.Data["output"])
				assert.Equal(t, 2, cfg.Data["padding"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				eval, ok := cfg.Data["eval"].(map[string]interface{})
				assert.True(t, ok, "eval should be a map")
				assert.Equal(t, "yaml", eval["output"])
			},
		},
		{
			name:     "mixed types",
			testFile: "mixed-types.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Equal(t, "diagrams", cfg.Data["name"])
				assert.Equal(t, 1, cfg.Data["version"])
				assert.Equal(t, true, cfg.Data["enabled"])
				assert.Equal(t, 30.5, cfg.Data["timeout"])
				assert.Len(t, cfg.Data["tags"], 2)
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source, "should have a source path")
			},
		},
		{
			name:     "invalid yaml",
			testFile: "invalid.yaml",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	t.Setenv(EnvVar, "")
	defer func() { Config = Type{} }()

	cfg, err := Load(filepath.Join("testdata", "simple.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Data["output"])
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv(EnvVar, "/nonexistent/path/semfilter.yaml")
	Config = Type{}

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_CfgFileIsDirectory(t *testing.T) {
	t.Setenv(EnvVar, t.TempDir())
	Config = Type{}

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestGetters(t *testing.T) {
	withConfig(t, "mixed-types.yaml", func(t *testing.T) {
		s, err := GetString("name")
		assert.NoError(t, err)
		assert.Equal(t, "diagrams", s)

		_, err = GetString("version")
		assert.EqualError(t, err, "value is not a string")

		s, err = GetString("missing", "fallback")
		assert.NoError(t, err)
		assert.Equal(t, "fallback", s)

		_, err = GetString("missing")
		assert.Error(t, err)

		i, err := GetInt("version")
		assert.NoError(t, err)
		assert.Equal(t, 1, i)

		i, err = GetInt("timeout")
		assert.NoError(t, err)
		assert.Equal(t, 30, i)

		_, err = GetInt("name")
		assert.EqualError(t, err, "value is not an int")

		i, err = GetInt("missing", 7)
		assert.NoError(t, err)
		assert.Equal(t, 7, i)

		b, err := GetBool("enabled")
		assert.NoError(t, err)
		assert.True(t, b)

		_, err = GetBool("name")
		assert.EqualError(t, err, "value is not a bool")

		b, err = GetBool("missing", true)
		assert.NoError(t, err)
		assert.True(t, b)

		ss, err := GetStringSlice("tags")
		assert.NoError(t, err)
		assert.Equal(t, []string{"hub", "leaf"}, ss)

		_, err = GetStringSlice("numbers")
		assert.EqualError(t, err, "slice element is not a string")

		_, err = GetStringSlice("name")
		assert.EqualError(t, err, "value is not a slice")

		ss, err = GetStringSlice("missing", []string{"x"})
		assert.NoError(t, err)
		assert.Equal(t, []string{"x"}, ss)
	})
}

func TestNamespace(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		s, err := GetString("output")
		assert.NoError(t, err)
		assert.Equal(t, "text", s)

		Config.Namespace = "eval"
		s, err = GetString("output")
		assert.NoError(t, err)
		assert.Equal(t, "yaml", s)

		i, err := GetInt("padding")
		assert.NoError(t, err)
		assert.Equal(t, 4, i)

		ss, err := GetStringSlice("attrs")
		assert.NoError(t, err)
		assert.Equal(t, []string{"id", "kind"}, ss)

		// Falls back to the unnamespaced key.
		b, err := GetBool("check.color")
		assert.NoError(t, err)
		assert.False(t, b)

		Config.Namespace = "check"
		s, err = GetString("output")
		assert.NoError(t, err)
		assert.Equal(t, "text", s)
	})
}

func TestLazyLoad(t *testing.T) {
	cleanup := setupTestConfig(t, "simple.yaml")
	defer cleanup()

	s, err := GetString("output")
	assert.NoError(t, err)
	assert.Equal(t, "json", s)
	assert.NotEmpty(t, Config.Source)
}
