// SPDX-License-Identifier: MIT OR Apache-2.0

// Package matcher implements the request-match predicate set and the
// priority-aware selection algorithm that picks at most one mapping for
// an incoming request.
package matcher

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/go-logr/logr"

	"github.com/deadmock/deadmock/internal/config"
	"github.com/deadmock/deadmock/internal/mappings"
)

// Predicate evaluates a single request-match constraint. It returns a
// nil bool when the corresponding configuration field is unset (the
// predicate does not apply to this mapping); otherwise it returns
// whether the actual request satisfies the constraint.
type Predicate interface {
	fmt.Stringer
	IsMatch(r *http.Request, rc *config.Request) (*bool, error)
}

// Enabled is a bitflag selection of which predicates participate in
// matching, fixed when a Matcher is built. main.go always builds the
// Matcher with All; no command-line flag selects a different set.
type Enabled uint16

const (
	ExactMethod Enabled = 1 << iota
	PatternMethod
	ExactURL
	PatternURL
	ExactHeader
	PatternHeader
	ExactHeaders
)

// All enables every predicate; the default matcher configuration.
const All = ExactMethod | PatternMethod | ExactURL | PatternURL | ExactHeader | PatternHeader | ExactHeaders

func truep(v bool) *bool { return &v }

// Matcher tries to find the mapping that best matches an incoming
// request out of a mapping store.
type Matcher struct {
	predicates []Predicate
	log        logr.Logger
}

// New builds a Matcher running the predicates selected by enabled.
func New(enabled Enabled, log logr.Logger) *Matcher {
	m := &Matcher{log: log}
	if enabled&ExactMethod != 0 {
		m.predicates = append(m.predicates, ExactMatchMethod{})
	}
	if enabled&PatternMethod != 0 {
		m.predicates = append(m.predicates, PatternMatchMethod{})
	}
	if enabled&ExactURL != 0 {
		m.predicates = append(m.predicates, ExactMatchURL{})
	}
	if enabled&PatternURL != 0 {
		m.predicates = append(m.predicates, PatternMatchURL{})
	}
	if enabled&ExactHeader != 0 {
		m.predicates = append(m.predicates, ExactMatchHeader{})
	}
	if enabled&PatternHeader != 0 {
		m.predicates = append(m.predicates, PatternMatchHeader{})
	}
	if enabled&ExactHeaders != 0 {
		m.predicates = append(m.predicates, ExactMatchHeaders{})
	}
	return m
}

// EntryLister is satisfied by any mapping collection the matcher can
// iterate over: the static mappings.Store and the hot-reloadable
// mappings.Watched both implement it.
type EntryLister interface {
	Entries() []mappings.Entry
}

// GetMatch returns the winning mapping for an incoming request, or
// config.ErrMappingNotFound if nothing matches.
func (m *Matcher) GetMatch(r *http.Request, store EntryLister) (config.Mapping, error) {
	var candidates []mappings.Entry

	for _, e := range store.Entries() {
		m.log.V(2).Info("checking mapping", "mapping", e.Mapping.String())
		if m.isMatch(r, &e.Mapping) {
			candidates = append(candidates, e)
		}
	}

	if len(candidates) == 0 {
		return config.Mapping{}, config.ErrMappingNotFound
	}

	// Lowest priority wins; ties break first by mapping name
	// (lexicographic), then by load order, both chosen to make
	// priority ties deterministic and reproducible.
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Mapping.Priority != b.Mapping.Priority {
			return a.Mapping.Priority < b.Mapping.Priority
		}
		if a.Mapping.Name != b.Mapping.Name {
			return a.Mapping.Name < b.Mapping.Name
		}
		return a.Seq < b.Seq
	})

	return candidates[0].Mapping, nil
}

func (m *Matcher) isMatch(r *http.Request, mapping *config.Mapping) bool {
	var results []bool
	for _, p := range m.predicates {
		v, err := p.IsMatch(r, &mapping.Request)
		if err != nil {
			m.log.V(1).Info("predicate error, treated as non-match", "predicate", p.String(), "err", err.Error())
			continue
		}
		if v == nil {
			continue
		}
		results = append(results, *v)
	}

	if len(results) == 0 {
		return false
	}
	for _, v := range results {
		if !v {
			return false
		}
	}
	return true
}
