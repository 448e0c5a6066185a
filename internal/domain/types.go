package domain

import "strings"

// TestSuite is a node in the executable suite tree. File suites carry tests,
// directory suites carry child suites.
type TestSuite struct {
	Name     string            `json:"name"`
	Source   string            `json:"source,omitempty"` // empty for the synthetic multi-source root
	Doc      string            `json:"doc,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Mode     ExecutionMode     `json:"mode"`
	Setup    *Fixture          `json:"setup,omitempty"`
	Teardown *Fixture          `json:"teardown,omitempty"`
	Resource *ResourceFile     `json:"resource,omitempty"`
	Tests    []*TestCase       `json:"tests,omitempty"`
	Suites   []*TestSuite      `json:"suites,omitempty"`
}

// TestCase is a single test or task.
type TestCase struct {
	Name     string   `json:"name"`
	Doc      string   `json:"doc,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Timeout  string   `json:"timeout,omitempty"`
	Setup    *Fixture `json:"setup,omitempty"`
	Teardown *Fixture `json:"teardown,omitempty"`
	Steps    []Step   `json:"steps,omitempty"`
	Line     int      `json:"lineno,omitempty"`
}

// Step is one keyword call.
type Step struct {
	Keyword string   `json:"name"`
	Args    []string `json:"args,omitempty"`
}

// Fixture is a setup or teardown keyword call.
type Fixture struct {
	Name string   `json:"name"`
	Args []string `json:"args,omitempty"`
}

// ResourceFile holds imports, variables and user keywords of a suite or
// resource file.
type ResourceFile struct {
	Source    string        `json:"source,omitempty"`
	Doc       string        `json:"doc,omitempty"`
	Imports   []Import      `json:"imports,omitempty"`
	Variables []Variable    `json:"variables,omitempty"`
	Keywords  []UserKeyword `json:"keywords,omitempty"`
}

// IsEmpty reports whether the resource defines nothing usable.
func (r *ResourceFile) IsEmpty() bool {
	return r == nil || (len(r.Imports) == 0 && len(r.Variables) == 0 && len(r.Keywords) == 0)
}

// ImportType is the kind of an Import.
type ImportType string

const (
	ImportLibrary   ImportType = "LIBRARY"
	ImportResource  ImportType = "RESOURCE"
	ImportVariables ImportType = "VARIABLES"
)

type Import struct {
	Type ImportType `json:"type"`
	Name string     `json:"name"`
	Args []string   `json:"args,omitempty"`
}

type Variable struct {
	Name  string   `json:"name"`
	Value []string `json:"value"`
}

type UserKeyword struct {
	Name  string   `json:"name"`
	Doc   string   `json:"doc,omitempty"`
	Args  []string `json:"args,omitempty"`
	Tags  []string `json:"tags,omitempty"`
	Steps []Step   `json:"steps,omitempty"`
}

// Configure sets the suite name and source, as done for the anonymous root
// of a multi-source build.
func (s *TestSuite) Configure(name, source string) {
	s.Name = name
	s.Source = source
}

// DisplayName returns the suite name. An anonymous suite is named after
// its children, joined with " & ".
func (s *TestSuite) DisplayName() string {
	if s.Name != "" || len(s.Suites) == 0 {
		return s.Name
	}
	names := make([]string, len(s.Suites))
	for i, child := range s.Suites {
		names[i] = child.DisplayName()
	}
	return strings.Join(names, " & ")
}

// HasTests reports whether the suite or any descendant contains tests.
func (s *TestSuite) HasTests() bool {
	if len(s.Tests) > 0 {
		return true
	}
	for _, child := range s.Suites {
		if child.HasTests() {
			return true
		}
	}
	return false
}

// TestCount returns the number of tests in the suite and its descendants.
func (s *TestSuite) TestCount() int {
	n := len(s.Tests)
	for _, child := range s.Suites {
		n += child.TestCount()
	}
	return n
}

// RemoveEmptySuites drops child suites that contain no tests anywhere in
// their subtree. With preserveDirectChildren the direct children are kept
// even when empty, but their own subtrees are still pruned.
func (s *TestSuite) RemoveEmptySuites(preserveDirectChildren bool) {
	kept := s.Suites[:0]
	for _, child := range s.Suites {
		child.RemoveEmptySuites(false)
		if preserveDirectChildren || child.HasTests() {
			kept = append(kept, child)
		}
	}
	for i := len(kept); i < len(s.Suites); i++ {
		s.Suites[i] = nil
	}
	s.Suites = kept
}

// Walk calls fn for the suite and every descendant in depth-first order.
func (s *TestSuite) Walk(fn func(suite *TestSuite, depth int)) {
	s.walk(fn, 0)
}

func (s *TestSuite) walk(fn func(*TestSuite, int), depth int) {
	fn(s, depth)
	for _, child := range s.Suites {
		child.walk(fn, depth+1)
	}
}
