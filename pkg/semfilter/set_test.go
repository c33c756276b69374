// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package semfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFilter(t *testing.T, text string, opts ...Option) *Filter {
	t.Helper()
	f, err := New(text, opts...)
	require.NoError(t, err)
	return f
}

func TestSet(t *testing.T) {
	s, err := NewSet(
		mustFilter(t, "#active", WithName("active"), WithDefault(true)),
		mustFilter(t, "!#disabled", WithName("enabled")),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"active", "enabled"}, s.Names())
	assert.True(t, s.IsEnabled("active"))
	assert.False(t, s.IsEnabled("enabled"))
	assert.False(t, s.IsEnabled("missing"))

	f, ok := s.Get("enabled")
	require.True(t, ok)
	assert.Equal(t, "!#disabled", f.String())
	_, ok = s.Get("missing")
	assert.False(t, ok)

	m := loadModel(t)
	db, _ := m.Get("db")
	cache, _ := m.Get("cache")

	ok, err = s.Predicate(db)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Enable("enabled", true))
	assert.Len(t, s.Enabled(), 2)
	ok, err = s.Predicate(db)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Enable("active", false))
	ok, err = s.Predicate(cache)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Error(t, s.Enable("missing", true))
}

func TestSetAddErrors(t *testing.T) {
	_, err := NewSet(mustFilter(t, "true"))
	assert.ErrorContains(t, err, "has no name")

	_, err = NewSet(
		mustFilter(t, "true", WithName("dup")),
		mustFilter(t, "false", WithName("dup")),
	)
	assert.ErrorContains(t, err, `duplicate filter name "dup"`)

	var s Set
	require.NoError(t, s.Add(mustFilter(t, "true", WithName("zero"))))
	assert.Equal(t, []string{"zero"}, s.Names())
}

func TestEmptySetPasses(t *testing.T) {
	s, err := NewSet()
	require.NoError(t, err)

	m := loadModel(t)
	ok, err := s.Predicate(m.Root)
	require.NoError(t, err)
	assert.True(t, ok)
}
