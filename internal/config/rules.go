// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tfctl/semfilter/pkg/legacy"
	"github.com/tfctl/semfilter/pkg/semfilter"
)

// Rule is one entry of the top level "rules" list. Exactly one of Text and
// Legacy is set.
type Rule struct {
	Name    string    `yaml:"name"`
	Text    string    `yaml:"rule"`
	Legacy  yaml.Node `yaml:"legacy"`
	Default bool      `yaml:"default"`
}

// IsLegacy reports whether the rule is stored in the legacy tree form.
func (r Rule) IsLegacy() bool {
	return !r.Legacy.IsZero()
}

// Filter compiles the rule. Name and default come from the config entry.
func (r Rule) Filter(opts ...semfilter.Option) (*semfilter.Filter, error) {
	opts = append(opts, semfilter.WithName(r.Name), semfilter.WithDefault(r.Default))
	if !r.IsLegacy() {
		return semfilter.New(r.Text, opts...)
	}

	data, err := yaml.Marshal(&r.Legacy)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", r.Name, err)
	}
	lr, err := legacy.DecodeYAML(data)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", r.Name, err)
	}
	return semfilter.FromLegacy(lr, opts...)
}

// Rules returns the configured named rules in file order.
func Rules() ([]Rule, error) {
	if len(Config.raw) == 0 {
		if _, err := Load(); err != nil {
			if errors.Is(err, ErrNoConfig) {
				return nil, nil
			}
			return nil, err
		}
	}

	var doc struct {
		Rules []Rule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(Config.raw, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", Config.Source, err)
	}

	seen := map[string]bool{}
	for i, r := range doc.Rules {
		switch {
		case r.Name == "":
			return nil, fmt.Errorf("%s: rules[%d] has no name", Config.Source, i)
		case seen[r.Name]:
			return nil, fmt.Errorf("%s: duplicate rule name %q", Config.Source, r.Name)
		case r.Text == "" && !r.IsLegacy():
			return nil, fmt.Errorf("%s: rule %q needs rule or legacy", Config.Source, r.Name)
		case r.Text != "" && r.IsLegacy():
			return nil, fmt.Errorf("%s: rule %q has both rule and legacy", Config.Source, r.Name)
		}
		seen[r.Name] = true
	}
	return doc.Rules, nil
}

// FilterSet compiles every configured rule into a Set.
func FilterSet(opts ...semfilter.Option) (*semfilter.Set, error) {
	rules, err := Rules()
	if err != nil {
		return nil, err
	}

	filters := make([]*semfilter.Filter, 0, len(rules))
	for _, r := range rules {
		f, err := r.Filter(opts...)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return semfilter.NewSet(filters...)
}
