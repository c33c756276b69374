// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/semfilter/internal/config"
	"github.com/tfctl/semfilter/pkg/legacy"
	"github.com/tfctl/semfilter/pkg/semfilter"
)

// collectFilters compiles the rules selected with --rule, --legacy and
// --named, in that order. With none of them given, the configured rules that
// are on by default apply.
func collectFilters(cmd *cli.Command) ([]*semfilter.Filter, error) {
	var opts []semfilter.Option
	if cmd.Bool("permissive") {
		opts = append(opts, semfilter.Permissive())
	}

	var filters []*semfilter.Filter
	for i, text := range cmd.StringSlice("rule") {
		f, err := semfilter.New(text, withName(opts, fmt.Sprintf("rule[%d]", i))...)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}

	for _, path := range cmd.StringSlice("legacy") {
		lf, err := legacyFilters(cmd, path, opts)
		if err != nil {
			return nil, err
		}
		filters = append(filters, lf...)
	}

	named := cmd.StringSlice("named")
	if len(named) > 0 || len(filters) == 0 {
		set, err := config.FilterSet(opts...)
		if err != nil {
			return nil, err
		}

		if len(named) == 0 {
			filters = set.Enabled()
			if len(filters) == 0 {
				return nil, errors.New("no rules given and no configured rule is on by default")
			}
			log.Debugf("using default rules: %v", filters)
		}

		for _, name := range named {
			f, ok := set.Get(name)
			if !ok {
				return nil, fmt.Errorf("unknown rule %q", name)
			}
			filters = append(filters, f)
		}
	}

	return filters, nil
}

// legacyFilters compiles every legacy rule stored in path. Unnamed rules are
// named after the file and their position in it.
func legacyFilters(cmd *cli.Command, path string, opts []semfilter.Option) ([]*semfilter.Filter, error) {
	data, err := ReadInput(GetMeta(cmd), path)
	if err != nil {
		return nil, err
	}
	rules, err := legacy.DecodeAll(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	filters := make([]*semfilter.Filter, 0, len(rules))
	for i, r := range rules {
		o := opts
		if r.RuleName == "" {
			o = withName(opts, fmt.Sprintf("%s[%d]", filepath.Base(path), i))
		}
		f, err := semfilter.FromLegacy(r, o...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		filters = append(filters, f)
	}
	return filters, nil
}

func withName(opts []semfilter.Option, name string) []semfilter.Option {
	return append(append([]semfilter.Option{}, opts...), semfilter.WithName(name))
}
