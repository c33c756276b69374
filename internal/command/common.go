// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/semfilter/internal/attrs"
	"github.com/tfctl/semfilter/internal/meta"
	"github.com/tfctl/semfilter/internal/output"
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// DumpSchemaIfRequested writes the row attributes of t when --schema is set,
// and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if t != nil && cmd.Bool("schema") {
		output.DumpSchema(t, Stdout(cmd))
		return true
	}
	return false
}

// EmitRows wraps rows in a {"data": [...]} document and passes it to the
// common output routine.
func EmitRows(rows any, al attrs.AttrList, cmd *cli.Command, postProcess func([]map[string]interface{}) error) error {
	var raw bytes.Buffer
	enc := json.NewEncoder(&raw)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]any{"data": rows}); err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}
	return output.SliceDiceSpit(raw, al, cmd, "data", Stdout(cmd), postProcess)
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// Stdout is where cmd writes its results.
func Stdout(cmd *cli.Command) io.Writer {
	if w := GetMeta(cmd).Stdout; w != nil {
		return w
	}
	return os.Stdout
}

// ReadInput returns the contents of path, or of stdin when path is "-" or
// empty.
func ReadInput(m meta.Meta, path string) ([]byte, error) {
	if path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return data, nil
	}

	if m.Stdin == nil {
		return nil, errors.New("no input: stdin is not available")
	}
	data, err := io.ReadAll(m.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}

// setFooter shows text below the table when --titles is set.
func setFooter(cmd *cli.Command, format string, args ...any) {
	if !cmd.Bool("titles") {
		return
	}
	if cmd.Metadata == nil {
		cmd.Metadata = map[string]any{}
	}
	cmd.Metadata["footer"] = fmt.Sprintf(format, args...)
}
