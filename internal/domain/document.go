package domain

import (
	"encoding/json"
	"fmt"
	"maps"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the decoded content of a suite, init or resource file,
// independent of the format it was written in.
type Document struct {
	Settings  Settings       `yaml:"settings" json:"settings"`
	Variables []VariableData `yaml:"variables" json:"variables"`
	Tests     []TestData     `yaml:"tests" json:"tests"`
	Tasks     []TestData     `yaml:"tasks" json:"tasks"`
	Keywords  []KeywordData  `yaml:"keywords" json:"keywords"`

	// Headings found in markup documents, used to infer documentation.
	Headings []Heading `yaml:"-" json:"-"`
}

// Settings is the settings section of a Document.
type Settings struct {
	Name          string            `yaml:"name" json:"name"`
	Documentation string            `yaml:"documentation" json:"documentation"`
	Metadata      map[string]string `yaml:"metadata" json:"metadata"`
	SuiteSetup    StringList        `yaml:"suite_setup" json:"suite_setup"`
	SuiteTeardown StringList        `yaml:"suite_teardown" json:"suite_teardown"`
	TestSetup     StringList        `yaml:"test_setup" json:"test_setup"`
	TestTeardown  StringList        `yaml:"test_teardown" json:"test_teardown"`
	TestTags      []string          `yaml:"test_tags" json:"test_tags"`
	TestTimeout   string            `yaml:"test_timeout" json:"test_timeout"`
	Libraries     []StringList      `yaml:"libraries" json:"libraries"`
	Resources     []StringList      `yaml:"resources" json:"resources"`
	VariableFiles []StringList      `yaml:"variable_files" json:"variable_files"`
}

type VariableData struct {
	Name  string     `yaml:"name" json:"name"`
	Value StringList `yaml:"value" json:"value"`
}

type TestData struct {
	Name     string       `yaml:"name" json:"name"`
	Doc      string       `yaml:"doc" json:"doc"`
	Tags     []string     `yaml:"tags" json:"tags"`
	Timeout  string       `yaml:"timeout" json:"timeout"`
	Setup    StringList   `yaml:"setup" json:"setup"`
	Teardown StringList   `yaml:"teardown" json:"teardown"`
	Steps    []StringList `yaml:"steps" json:"steps"`
	Line     int          `yaml:"-" json:"-"`
}

type KeywordData struct {
	Name  string       `yaml:"name" json:"name"`
	Doc   string       `yaml:"doc" json:"doc"`
	Args  []string     `yaml:"args" json:"args"`
	Tags  []string     `yaml:"tags" json:"tags"`
	Steps []StringList `yaml:"steps" json:"steps"`
}

// CodeBlock is a tagged block of suite data extracted from a markup document.
type CodeBlock struct {
	Tag        string
	Content    string
	LineNumber int // 1-based line of the first content line
	Attributes map[string]string
	Context    string // nearest heading
}

// Heading represents a document heading.
type Heading struct {
	Level int
	Text  string
	Line  int
}

// DeclaredMode returns the execution mode implied by the sections present.
func (d *Document) DeclaredMode() (ExecutionMode, error) {
	switch {
	case d.Tests != nil && d.Tasks != nil:
		return ModeUnset, fmt.Errorf("'tests' and 'tasks' sections cannot be used in the same file")
	case d.Tests != nil:
		return ModeTests, nil
	case d.Tasks != nil:
		return ModeTasks, nil
	}
	return ModeUnset, nil
}

// Entries returns the tests or tasks of the document, whichever is present.
func (d *Document) Entries() []TestData {
	if d.Tests != nil {
		return d.Tests
	}
	return d.Tasks
}

// Merge appends the content of other to d. Scalar settings from other win
// when set, list settings are concatenated.
func (d *Document) Merge(other *Document) {
	s, o := &d.Settings, &other.Settings
	if o.Name != "" {
		s.Name = o.Name
	}
	if o.Documentation != "" {
		if s.Documentation != "" {
			s.Documentation += "\n\n"
		}
		s.Documentation += o.Documentation
	}
	if len(o.Metadata) > 0 {
		if s.Metadata == nil {
			s.Metadata = make(map[string]string, len(o.Metadata))
		}
		maps.Copy(s.Metadata, o.Metadata)
	}
	mergeList(&s.SuiteSetup, o.SuiteSetup)
	mergeList(&s.SuiteTeardown, o.SuiteTeardown)
	mergeList(&s.TestSetup, o.TestSetup)
	mergeList(&s.TestTeardown, o.TestTeardown)
	if o.TestTimeout != "" {
		s.TestTimeout = o.TestTimeout
	}
	s.TestTags = append(s.TestTags, o.TestTags...)
	s.Libraries = append(s.Libraries, o.Libraries...)
	s.Resources = append(s.Resources, o.Resources...)
	s.VariableFiles = append(s.VariableFiles, o.VariableFiles...)

	d.Variables = append(d.Variables, other.Variables...)
	if other.Tests != nil {
		d.Tests = append(nonNil(d.Tests), other.Tests...)
	}
	if other.Tasks != nil {
		d.Tasks = append(nonNil(d.Tasks), other.Tasks...)
	}
	d.Keywords = append(d.Keywords, other.Keywords...)
}

func mergeList(dst *StringList, src StringList) {
	if src != nil {
		*dst = src
	}
}

func nonNil(tests []TestData) []TestData {
	if tests == nil {
		return []TestData{}
	}
	return tests
}

// StringList is a list of strings that may also be written as a single
// string. A single string is split on runs of two or more spaces or tabs,
// so "Log    hello" means keyword "Log" with argument "hello".
type StringList []string

var separatorRe = regexp.MustCompile(`\s{2,}|\t+`)

// SplitCells splits a single-line step into its cells.
func SplitCells(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return separatorRe.Split(s, -1)
}

func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			*l = nil
			return nil
		}
		*l = SplitCells(node.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	return fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
}

func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = SplitCells(single)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("expected a string or a list of strings: %w", err)
	}
	*l = items
	return nil
}
