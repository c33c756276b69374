// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/tfctl/semfilter/internal/log"
)

// schemaTag is a discovered `attr` struct tag. The tag value is
// "name[,description]".
type schemaTag struct {
	Name        string
	Description string
}

// NewTag builds a schemaTag from a raw `attr` tag value, prefixing the name
// with the holder path of an enclosing struct.
func NewTag(holder string, s string) schemaTag {
	name, desc, _ := strings.Cut(s, ",")
	if holder != "" && name != "" {
		name = holder + "." + name
	}
	return schemaTag{Name: name, Description: strings.TrimSpace(desc)}
}

// maxSchemaDepth limits how far nested structs are walked.
const maxSchemaDepth = 1

// DumpSchema writes the sorted attribute names available to --attrs,
// --filter and --sort for typ. If w is nil, os.Stdout is used.
func DumpSchema(typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w, "Row attributes available to the --attrs, --filter and --sort flags.")
	fmt.Fprintln(w, "")

	tags := dumpSchemaWalker("", typ, 0)
	if len(tags) == 0 {
		log.Debugf("no attr tags: type=%s", typ.Name())
		return
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })

	width := 0
	for _, tag := range tags {
		width = max(width, len(tag.Name))
	}
	for _, tag := range tags {
		if tag.Description == "" {
			fmt.Fprintln(w, tag.Name)
			continue
		}
		fmt.Fprintf(w, "%-*s  %s\n", width, tag.Name, tag.Description)
	}
}

// dumpSchemaWalker walks a struct type collecting `attr` tags.
func dumpSchemaWalker(holder string, typ reflect.Type, depth int) []schemaTag {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	tags := make([]schemaTag, 0)
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tagValue, ok := field.Tag.Lookup("attr")
		if !ok || tagValue == "-" {
			continue
		}

		tag := NewTag(holder, tagValue)
		tags = append(tags, tag)

		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if depth < maxSchemaDepth && ft.Kind() == reflect.Struct {
			tags = append(tags, dumpSchemaWalker(tag.Name, ft, depth+1)...)
		}
	}

	return tags
}
