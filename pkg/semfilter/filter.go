// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package semfilter

import (
	"fmt"

	"github.com/apex/log"

	"github.com/tfctl/semfilter/pkg/eval"
	"github.com/tfctl/semfilter/pkg/graph"
	"github.com/tfctl/semfilter/pkg/legacy"
	"github.com/tfctl/semfilter/pkg/reserved"
	"github.com/tfctl/semfilter/pkg/rule"
)

// Filter is a compiled rule plus the name and default state a UI shows it
// with.
type Filter struct {
	Name         string
	DefaultValue bool
	// Rule is the rule text the filter was compiled from. For legacy rules
	// it is the converted text.
	Rule string

	root rule.Node
	eval *eval.Evaluator
}

type options struct {
	name       string
	defaultSet bool
	defaultVal bool
	registry   *reserved.Registry
	legacyOpts []legacy.Option
}

// Option configures New and FromLegacy.
type Option func(*options)

// WithName sets the filter name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithDefault sets the default enabled state.
func WithDefault(on bool) Option {
	return func(o *options) {
		o.defaultSet = true
		o.defaultVal = on
	}
}

// WithReserved evaluates reserved tags with reg instead of the default
// registry.
func WithReserved(reg *reserved.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// Permissive converts unknown legacy connectives to true instead of failing.
// It has no effect on rule text.
func Permissive() Option {
	return func(o *options) { o.legacyOpts = append(o.legacyOpts, legacy.Permissive()) }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New compiles rule text into a Filter.
func New(text string, opts ...Option) (*Filter, error) {
	return compile(text, buildOptions(opts))
}

func compile(text string, o options) (*Filter, error) {
	root, err := rule.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", o.name, err)
	}

	log.Debugf("filter compiled: name=%s rule=%s", o.name, root)
	return &Filter{
		Name:         o.name,
		DefaultValue: o.defaultVal,
		Rule:         text,
		root:         root,
		eval:         eval.New(o.registry),
	}, nil
}

// FromLegacy converts a legacy rule tree and compiles the result. The rule's
// ruleName and defaultValue are used unless WithName or WithDefault override
// them.
func FromLegacy(r *legacy.Rule, opts ...Option) (*Filter, error) {
	o := buildOptions(opts)
	if r == nil {
		return nil, fmt.Errorf("filter %q: nil legacy rule", o.name)
	}
	if o.name == "" {
		o.name = r.RuleName
	}
	if !o.defaultSet && r.DefaultValue != nil {
		o.defaultVal = *r.DefaultValue
	}

	text, err := legacy.Convert(r, o.legacyOpts...)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", o.name, err)
	}
	return compile(text, o)
}

// FromLegacyJSON decodes and compiles a JSON legacy rule.
func FromLegacyJSON(data []byte, opts ...Option) (*Filter, error) {
	r, err := legacy.DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return FromLegacy(r, opts...)
}

// Predicate reports whether el passes the filter. Errors come from
// evaluation only, such as an unbound variable in a hand-built AST.
func (f *Filter) Predicate(el graph.Element) (bool, error) {
	if el == nil {
		return false, fmt.Errorf("filter %q: nil element", f.Name)
	}
	ok, err := f.eval.Bool(f.root, el)
	if err != nil {
		return false, fmt.Errorf("filter %q on %s: %w", f.Name, el.ID(), err)
	}
	return ok, nil
}

// Match is Predicate with errors logged and treated as no match.
func (f *Filter) Match(el graph.Element) bool {
	ok, err := f.Predicate(el)
	if err != nil {
		log.WithError(err).Warn("filter evaluation failed")
		return false
	}
	return ok
}

// AST returns the compiled rule.
func (f *Filter) AST() rule.Node { return f.root }

// String returns the canonical form of the compiled rule.
func (f *Filter) String() string { return f.root.String() }
