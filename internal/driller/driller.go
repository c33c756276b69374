// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// segmentRegex matches one path segment with an optional [n] or [*] suffix.
var segmentRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d+|\*)?\])?$`)

// Drill navigates raw JSON along a dot path. A segment may index an array
// with [n]. An array reached without an index collapses to its only element
// when it has one; [*] or [] always keeps the whole array. Invalid segments
// and out of range indices yield an empty result.
func Drill(raw string, path string) gjson.Result {
	current := gjson.Parse(raw)
	if path == "" {
		return current
	}

	for _, p := range strings.Split(path, ".") {
		matches := segmentRegex.FindStringSubmatch(p)
		if matches == nil {
			return gjson.Result{}
		}

		val := current.Get(matches[1])
		if !val.IsArray() {
			current = val
			continue
		}

		arr := val.Array()
		switch idx := matches[3]; {
		case idx == "" && matches[2] == "":
			if len(arr) == 1 {
				val = arr[0]
			}
		case idx == "" || idx == "*":
		default:
			i, err := strconv.Atoi(idx)
			if err != nil || i >= len(arr) {
				return gjson.Result{}
			}
			val = arr[i]
		}

		current = val
	}

	return current
}
