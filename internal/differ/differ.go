// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/tfctl/semfilter/internal/log"
	"github.com/tfctl/semfilter/pkg/graph"
)

// entry is what a match set records for each element.
type entry struct {
	Kind string `json:"kind"`
	Type string `json:"type,omitempty"`
	Tags string `json:"tags,omitempty"`
}

// MatchSet encodes els as a JSON object keyed by element id.
func MatchSet(els []graph.Element) ([]byte, error) {
	set := make(map[string]entry, len(els))
	for _, el := range els {
		tags, _ := el.Tags()
		set[el.ID()] = entry{
			Kind: el.Kind().String(),
			Type: el.Type(),
			Tags: tags.String(),
		}
	}
	return json.Marshal(set)
}

// Diff writes an annotated diff of two JSON objects to w and reports whether
// they differ.
func Diff(w io.Writer, left, right []byte, color bool) (bool, error) {
	log.Debugf("diff: left=%d right=%d", len(left), len(right))

	delta, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return false, fmt.Errorf("failed to compare match sets: %w", err)
	}

	if !delta.Modified() {
		_, err := fmt.Fprintln(w, "The match sets are identical.")
		return false, err
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(left, &jdoc); err != nil {
		return true, fmt.Errorf("failed to unmarshal match set: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       color,
	}

	diffString, err := formatter.NewAsciiFormatter(jdoc, config).Format(delta)
	if err != nil {
		return true, err
	}

	_, err = fmt.Fprint(w, diffString)
	return true, err
}
