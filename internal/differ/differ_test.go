// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package differ

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/semfilter/pkg/graph"
)

func elements() (svc, db, cache graph.Element) {
	root := graph.NewNode("root", "graph")
	s := graph.NewNode("svc", "node").SetTags(graph.NewTag("active"), graph.NewNumTag("score", 9))
	d := graph.NewNode("db", "node").SetTags(graph.NewTag("active"))
	c := graph.NewNode("cache", "node").SetTags()
	root.AddChild(s, d, c)
	return s, d, c
}

func TestMatchSet(t *testing.T) {
	svc, db, _ := elements()

	got, err := MatchSet([]graph.Element{svc, db})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"svc": {"kind": "node", "type": "node", "tags": "active,score=9"},
		"db": {"kind": "node", "type": "node", "tags": "active"}
	}`, string(got))

	empty, err := MatchSet(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(empty))
}

func TestDiffIdentical(t *testing.T) {
	svc, db, _ := elements()
	left, err := MatchSet([]graph.Element{svc, db})
	require.NoError(t, err)
	right, err := MatchSet([]graph.Element{db, svc})
	require.NoError(t, err)

	var buf bytes.Buffer
	changed, err := Diff(&buf, left, right, false)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "The match sets are identical.\n", buf.String())
}

func TestDiffChanged(t *testing.T) {
	svc, db, cache := elements()
	left, err := MatchSet([]graph.Element{svc, db})
	require.NoError(t, err)
	right, err := MatchSet([]graph.Element{svc, cache})
	require.NoError(t, err)

	var buf bytes.Buffer
	changed, err := Diff(&buf, left, right, false)
	require.NoError(t, err)
	assert.True(t, changed)

	out := buf.String()
	assert.Regexp(t, regexp.MustCompile(`(?m)^-\s+"db": \{`), out)
	assert.Regexp(t, regexp.MustCompile(`(?m)^\+\s+"cache": \{`), out)
	assert.Regexp(t, regexp.MustCompile(`(?m)^ \s+"svc": \{`), out)
	assert.NotContains(t, out, "\x1b[")
}

func TestDiffInvalid(t *testing.T) {
	_, err := Diff(&bytes.Buffer{}, []byte(`{`), []byte(`{}`), false)
	assert.ErrorContains(t, err, "failed to compare match sets")
}
