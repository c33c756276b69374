// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package semfilter

import (
	"fmt"
	"sync"

	"github.com/apex/log"

	"github.com/tfctl/semfilter/pkg/graph"
)

// Set holds named filters in registration order together with their enabled
// state. Filters start out in their DefaultValue state. A Set is safe for
// concurrent use.
type Set struct {
	mu      sync.RWMutex
	filters []*Filter
	enabled map[string]bool
}

// NewSet returns a set holding filters.
func NewSet(filters ...*Filter) (*Set, error) {
	s := &Set{enabled: map[string]bool{}}
	for _, f := range filters {
		if err := s.Add(f); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add registers f. Names must be unique and non-empty.
func (s *Set) Add(f *Filter) error {
	if f.Name == "" {
		return fmt.Errorf("filter %s has no name", f)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enabled == nil {
		s.enabled = map[string]bool{}
	}
	if _, dup := s.enabled[f.Name]; dup {
		return fmt.Errorf("duplicate filter name %q", f.Name)
	}
	s.filters = append(s.filters, f)
	s.enabled[f.Name] = f.DefaultValue
	return nil
}

// Get returns the filter called name.
func (s *Set) Get(name string) (*Filter, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.filters {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Enable turns the filter called name on or off.
func (s *Set) Enable(name string, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.enabled[name]; !ok {
		return fmt.Errorf("unknown filter %q", name)
	}
	s.enabled[name] = on
	log.Debugf("filter toggled: name=%s on=%v", name, on)
	return nil
}

// IsEnabled reports whether the filter called name is on.
func (s *Set) IsEnabled(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled[name]
}

// Names lists the filter names in registration order.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.filters))
	for i, f := range s.filters {
		names[i] = f.Name
	}
	return names
}

// Enabled returns the filters that are currently on.
func (s *Set) Enabled() []*Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var on []*Filter
	for _, f := range s.filters {
		if s.enabled[f.Name] {
			on = append(on, f)
		}
	}
	return on
}

// Predicate reports whether el passes every enabled filter.
func (s *Set) Predicate(el graph.Element) (bool, error) {
	for _, f := range s.Enabled() {
		ok, err := f.Predicate(el)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Apply walks m and returns the tagged elements that pass every filter, in
// model order. Untagged elements are structural and never returned. The
// first evaluation error aborts the walk.
func Apply(m *graph.Model, filters ...*Filter) ([]graph.Element, error) {
	var kept []graph.Element
	err := m.Walk(func(el graph.Element) error {
		if !graph.Tagged(el) {
			return nil
		}
		for _, f := range filters {
			ok, err := f.Predicate(el)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
		kept = append(kept, el)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("filters applied: filters=%d kept=%d of %d", len(filters), len(kept), m.Len())
	return kept, nil
}
