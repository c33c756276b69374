// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tfctl/semfilter/internal/meta"
	"github.com/tfctl/semfilter/pkg/graph"
)

// LoadModel reads a diagram model from path, or from stdin for "-". The
// format follows the file extension. Without one, a document starting with
// '{' is JSON and anything else YAML.
func LoadModel(m meta.Meta, path string) (*graph.Model, error) {
	data, err := ReadInput(m, path)
	if err != nil {
		return nil, err
	}

	var model *graph.Model
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		model, err = graph.LoadJSON(data)
	case ".yaml", ".yml":
		model, err = graph.LoadYAML(data)
	default:
		if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
			model, err = graph.LoadJSON(data)
		} else {
			model, err = graph.LoadYAML(data)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", path, err)
	}
	return model, nil
}
