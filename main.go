// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/semfilter/internal/command"
	"github.com/tfctl/semfilter/internal/config"
	"github.com/tfctl/semfilter/internal/log"
	"github.com/tfctl/semfilter/internal/version"
)

var ctx = context.Background()

// flagAliases maps short flag names to the long name they stand for.
var flagAliases = map[string]string{
	"a": "attrs",
	"c": "color",
	"f": "filter",
	"h": "help",
	"l": "legacy",
	"n": "named",
	"o": "output",
	"p": "padding",
	"r": "rule",
	"s": "sort",
	"t": "titles",
	"v": "version",
}

// boolFlags never consume the following argument.
var boolFlags = map[string]bool{
	"all":        true,
	"chop":       true,
	"color":      true,
	"exit-code":  true,
	"help":       true,
	"permissive": true,
	"schema":     true,
	"titles":     true,
	"version":    true,
}

// repeatableFlags accumulate instead of overriding each other.
var repeatableFlags = map[string]bool{
	"legacy": true,
	"named":  true,
	"rule":   true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs expands an @set and then drops overridden flags.
func processCommandArgs(args []string) []string {
	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	args = deduplicateFlags(args)
	log.Debugf("args after dedup: args=%v", args)
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly replaces an @set argument with the entries of the config key
// <command>.<set>, for example eval.hubs.
func processSetOnly(args []string) []string {
	if len(args) < 3 {
		return args
	}

	for i, a := range args[2:] {
		if !strings.HasPrefix(a, "@") || len(a) == 1 {
			continue
		}

		idx := i + 2
		key := args[1] + "." + a[1:]
		entries, err := config.GetStringSlice(key)
		if err != nil {
			log.Warnf("no argument set %s: %v", key, err)
		}

		rest := append([]string{}, args[idx+1:]...)
		return injectConfigSet(append(args[:idx:idx], rest...), entries, idx)
	}
	return args
}

// injectConfigSet splits each entry on whitespace and inserts the fields at
// insertIdx.
func injectConfigSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// deduplicateFlags drops every occurrence of a flag except the last, so a flag
// given on the command line overrides one expanded from an @set. Short and
// long names of a flag are the same flag. Repeatable flags and positional
// arguments are kept as given.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type item struct {
		name string
		args []string
	}

	var items []item
	for i := 2; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			items = append(items, item{args: args[i:]})
			break
		}
		if a == "-" || !strings.HasPrefix(a, "-") {
			items = append(items, item{args: []string{a}})
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if long, ok := flagAliases[name]; ok {
			name = long
		}

		it := item{name: name, args: []string{a}}
		if !hasValue && !boolFlags[name] && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			it.args = append(it.args, args[i+1])
			i++
		}
		items = append(items, it)
	}

	last := map[string]int{}
	for i, it := range items {
		if it.name != "" {
			last[it.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, it := range items {
		if it.name != "" && !repeatableFlags[it.name] && last[it.name] != i {
			continue
		}
		out = append(out, it.args...)
	}
	return out
}
