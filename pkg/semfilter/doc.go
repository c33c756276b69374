// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package semfilter is the entry point for code that filters diagram
// elements with semantic filter rules.
//
// A Filter is built once, from rule text with New or from a legacy rule tree
// with FromLegacy, and then asked about many elements:
//
//	f, err := semfilter.New("#active && !#disabled", semfilter.WithName("active"))
//	if err != nil {
//		return err // *rule.SyntaxError, *rule.TypeError, ...
//	}
//	ok, err := f.Predicate(el)
//
// Every construction error surfaces from New or FromLegacy; no partial filter
// is ever returned. Predicate returns evaluation errors to the caller, Match
// logs them and reports the element as not matching.
//
// Filters are read-only after construction and safe for concurrent use. A Set
// keeps named filters together with the on/off state a UI toggles, and Apply
// runs filters over a whole Model.
package semfilter
