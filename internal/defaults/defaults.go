// Package defaults holds the test settings inherited from suite
// initialization files down the directory tree.
package defaults

import (
	"slices"
	"strings"

	"github.com/frherrer/docsuite/internal/domain"
)

// Scope is the set of test defaults in effect for one directory level.
// A child scope starts as a copy of its parent; changing it never affects
// the parent or sibling scopes.
type Scope struct {
	setup    *domain.Fixture
	teardown *domain.Fixture
	tags     []string
	timeout  string
}

// New returns a scope derived from parent, or an empty root scope when
// parent is nil.
func New(parent *Scope) *Scope {
	if parent == nil {
		return &Scope{}
	}
	return &Scope{
		setup:    cloneFixture(parent.setup),
		teardown: cloneFixture(parent.teardown),
		tags:     slices.Clone(parent.tags),
		timeout:  parent.timeout,
	}
}

// Child is shorthand for New(s).
func (s *Scope) Child() *Scope {
	return New(s)
}

func (s *Scope) Setup() *domain.Fixture    { return cloneFixture(s.setup) }
func (s *Scope) Teardown() *domain.Fixture { return cloneFixture(s.teardown) }
func (s *Scope) Tags() []string            { return slices.Clone(s.tags) }
func (s *Scope) Timeout() string           { return s.timeout }

// SetSetup replaces the inherited setup. A call named NONE clears it.
func (s *Scope) SetSetup(call []string) {
	s.setup = fixtureFrom(call)
}

// SetTeardown replaces the inherited teardown. A call named NONE clears it.
func (s *Scope) SetTeardown(call []string) {
	s.teardown = fixtureFrom(call)
}

// AddTags appends tags to the inherited ones, skipping duplicates.
func (s *Scope) AddTags(tags ...string) {
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" && !slices.Contains(s.tags, tag) {
			s.tags = append(s.tags, tag)
		}
	}
}

// SetTimeout replaces the inherited timeout. NONE clears it.
func (s *Scope) SetTimeout(timeout string) {
	if isNone(timeout) {
		timeout = ""
	}
	s.timeout = timeout
}

func fixtureFrom(call []string) *domain.Fixture {
	if len(call) == 0 || isNone(call[0]) {
		return nil
	}
	return &domain.Fixture{Name: call[0], Args: slices.Clone(call[1:])}
}

func cloneFixture(f *domain.Fixture) *domain.Fixture {
	if f == nil {
		return nil
	}
	return &domain.Fixture{Name: f.Name, Args: slices.Clone(f.Args)}
}

func isNone(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "NONE")
}
