// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"
)

// chopPrefix shortens the dot-delimited string values of each key by the
// leading segments they all share, replacing them with "..". At least two
// segments must be shared and at least two must remain in every value.
func chopPrefix(dataset []map[string]interface{}, keys ...string) {
	for _, key := range keys {
		var split [][]string
		for _, row := range dataset {
			if s, ok := row[key].(string); ok && s != "" {
				split = append(split, strings.Split(s, "."))
			}
		}
		if len(split) == 0 {
			continue
		}

		common := len(split[0])
		for _, segs := range split {
			n := 0
			for n < common && n < len(segs) && segs[n] == split[0][n] {
				n++
			}
			common = min(n, len(segs)-2)
		}
		if common < 2 {
			continue
		}

		prefix := strings.Join(split[0][:common], ".") + "."
		for _, row := range dataset {
			if s, ok := row[key].(string); ok && strings.HasPrefix(s, prefix) {
				row[key] = ".." + strings.TrimPrefix(s, prefix)
			}
		}
	}
}
