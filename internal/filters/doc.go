// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters narrows rendered result rows with --filter expressions.
//
// These are row filters over the projected output columns, applied after the
// semantic rules have chosen which elements to report. A filter is a
// key-operator-target expression. Several are joined with a delimiter
// (default comma, override with SEMFILTER_FILTER_DELIM).
//
// Operators:
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than (numeric when both sides are numbers)
//   - > : greater than (numeric when both sides are numbers)
//   - @ : substring, list membership or map key
//   - / : regular expression match
//
// Any operator may be negated with a leading '!', e.g. "kind!=edge".
//
// Examples:
//
//   - "kind=node" : only nodes
//   - "id^svc" : ids starting with "svc"
//   - "depth<2" : elements near the root
//   - "tags@hub" : rows whose tag list mentions hub
//   - "children@n1.label" : rows with that child
//
// Keys are matched against the output key of an attribute (see the attrs
// package). A key that names no attribute is an error.
package filters
