package converter

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/frherrer/docsuite/internal/defaults"
	"github.com/frherrer/docsuite/internal/domain"
)

// CurdirVariable is replaced with the source file's directory at parse time
// when curdir processing is enabled.
const CurdirVariable = "${CURDIR}"

// Converter transforms decoded documents into suite model objects.
type Converter interface {
	ToSuite(doc *domain.Document, source string, scope *defaults.Scope) (*domain.TestSuite, error)
	ToInitSuite(doc *domain.Document, source string, scope *defaults.Scope) (*domain.TestSuite, error)
	ToResource(doc *domain.Document, source string) (*domain.ResourceFile, error)
}

// Options configures a DefaultConverter.
type Options struct {
	ProcessCurdir bool
}

// DefaultConverter implements Converter.
type DefaultConverter struct {
	processCurdir bool
}

// NewConverter creates a new DefaultConverter.
func NewConverter(opts Options) *DefaultConverter {
	return &DefaultConverter{processCurdir: opts.ProcessCurdir}
}

// ToSuite builds a file suite. Test settings of the file are applied on a
// private child of scope, so they never leak to sibling files.
func (c *DefaultConverter) ToSuite(doc *domain.Document, source string, scope *defaults.Scope) (*domain.TestSuite, error) {
	mode, err := doc.DeclaredMode()
	if err != nil {
		return nil, domain.NewError(domain.KindParse, "", 0, err.Error(), nil)
	}

	curdir := c.curdir(source)
	fileScope := scope.Child()
	applyTestSettings(fileScope, &doc.Settings, curdir)

	name := doc.Settings.Name
	if name == "" {
		name = domain.NameFromSource(source, true)
	}
	suite := c.suiteShell(doc, name, source, curdir)
	suite.Mode = mode

	for _, td := range doc.Entries() {
		if strings.TrimSpace(td.Name) == "" {
			return nil, domain.NewError(domain.KindParse, "", td.Line, "Test or task name cannot be empty.", nil)
		}
		suite.Tests = append(suite.Tests, c.toTest(td, fileScope, curdir))
	}
	return suite, nil
}

// ToInitSuite builds a directory suite from an initialization file. The
// file's test settings are written into scope, the directory's own scope,
// so every file and directory below inherits them.
func (c *DefaultConverter) ToInitSuite(doc *domain.Document, source string, scope *defaults.Scope) (*domain.TestSuite, error) {
	if doc.Tests != nil || doc.Tasks != nil {
		return nil, domain.NewError(domain.KindParse, "", 0,
			"'tests' and 'tasks' sections are not allowed in suite initialization files.", nil)
	}

	dir := filepath.Dir(source)
	curdir := c.curdir(source)
	applyTestSettings(scope, &doc.Settings, curdir)

	name := doc.Settings.Name
	if name == "" {
		name = domain.NameFromSource(dir, false)
	}
	return c.suiteShell(doc, name, dir, curdir), nil
}

// ToResource builds a resource file. Suite and test settings are rejected.
func (c *DefaultConverter) ToResource(doc *domain.Document, source string) (*domain.ResourceFile, error) {
	if doc.Tests != nil || doc.Tasks != nil {
		return nil, domain.NewError(domain.KindParse, "", 0,
			"Resource file with 'tests' or 'tasks' section is invalid.", nil)
	}
	if setting := suiteOnlySetting(&doc.Settings); setting != "" {
		return nil, domain.NewError(domain.KindParse, "", 0,
			"Setting '"+setting+"' is not allowed in resource file.", nil)
	}
	return c.toResource(doc, source, c.curdir(source)), nil
}

func (c *DefaultConverter) suiteShell(doc *domain.Document, name, source, curdir string) *domain.TestSuite {
	s := &doc.Settings
	suite := &domain.TestSuite{
		Name:     name,
		Source:   source,
		Doc:      s.Documentation,
		Metadata: s.Metadata,
		Setup:    toFixture(s.SuiteSetup, curdir),
		Teardown: toFixture(s.SuiteTeardown, curdir),
	}
	if suite.Doc == "" {
		suite.Doc = inferDoc(doc.Headings)
	}
	if res := c.toResource(doc, source, curdir); !res.IsEmpty() {
		res.Doc = ""
		suite.Resource = res
	}
	return suite
}

func (c *DefaultConverter) toTest(td domain.TestData, scope *defaults.Scope, curdir string) *domain.TestCase {
	test := &domain.TestCase{
		Name:     td.Name,
		Doc:      td.Doc,
		Tags:     mergeTags(scope.Tags(), td.Tags),
		Timeout:  scope.Timeout(),
		Setup:    scope.Setup(),
		Teardown: scope.Teardown(),
		Steps:    toSteps(td.Steps, curdir),
		Line:     td.Line,
	}
	if td.Timeout != "" {
		test.Timeout = td.Timeout
		if isNone(td.Timeout) {
			test.Timeout = ""
		}
	}
	if td.Setup != nil {
		test.Setup = toFixture(td.Setup, curdir)
	}
	if td.Teardown != nil {
		test.Teardown = toFixture(td.Teardown, curdir)
	}
	return test
}

func (c *DefaultConverter) toResource(doc *domain.Document, source, curdir string) *domain.ResourceFile {
	s := &doc.Settings
	res := &domain.ResourceFile{Source: source, Doc: s.Documentation}
	res.Imports = appendImports(res.Imports, domain.ImportLibrary, s.Libraries, curdir)
	res.Imports = appendImports(res.Imports, domain.ImportResource, s.Resources, curdir)
	res.Imports = appendImports(res.Imports, domain.ImportVariables, s.VariableFiles, curdir)
	for _, v := range doc.Variables {
		res.Variables = append(res.Variables, domain.Variable{
			Name:  v.Name,
			Value: replaceCurdir(v.Value, curdir),
		})
	}
	for _, kw := range doc.Keywords {
		res.Keywords = append(res.Keywords, domain.UserKeyword{
			Name:  kw.Name,
			Doc:   kw.Doc,
			Args:  kw.Args,
			Tags:  kw.Tags,
			Steps: toSteps(kw.Steps, curdir),
		})
	}
	return res
}

// curdir returns the replacement for ${CURDIR}, or "" when disabled.
func (c *DefaultConverter) curdir(source string) string {
	if !c.processCurdir || source == "" {
		return ""
	}
	return strings.ReplaceAll(filepath.Dir(source), `\`, `\\`)
}

func applyTestSettings(scope *defaults.Scope, s *domain.Settings, curdir string) {
	if s.TestSetup != nil {
		scope.SetSetup(replaceCurdir(s.TestSetup, curdir))
	}
	if s.TestTeardown != nil {
		scope.SetTeardown(replaceCurdir(s.TestTeardown, curdir))
	}
	if s.TestTimeout != "" {
		scope.SetTimeout(s.TestTimeout)
	}
	scope.AddTags(s.TestTags...)
}

func appendImports(imports []domain.Import, typ domain.ImportType, specs []domain.StringList, curdir string) []domain.Import {
	for _, spec := range specs {
		spec = replaceCurdir(spec, curdir)
		if len(spec) == 0 {
			continue
		}
		imports = append(imports, domain.Import{Type: typ, Name: spec[0], Args: spec[1:]})
	}
	return imports
}

func toSteps(lists []domain.StringList, curdir string) []domain.Step {
	var steps []domain.Step
	for _, cells := range lists {
		cells = replaceCurdir(cells, curdir)
		if len(cells) == 0 {
			continue
		}
		steps = append(steps, domain.Step{Keyword: cells[0], Args: cells[1:]})
	}
	return steps
}

func toFixture(cells domain.StringList, curdir string) *domain.Fixture {
	if len(cells) == 0 || isNone(cells[0]) {
		return nil
	}
	cells = replaceCurdir(cells, curdir)
	return &domain.Fixture{Name: cells[0], Args: cells[1:]}
}

func replaceCurdir(cells []string, curdir string) []string {
	if curdir == "" || cells == nil {
		return cells
	}
	out := make([]string, len(cells))
	for i, cell := range cells {
		out[i] = strings.ReplaceAll(cell, CurdirVariable, curdir)
	}
	return out
}

func mergeTags(inherited, own []string) []string {
	tags := inherited
	for _, tag := range own {
		if tag != "" && !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}

// suiteOnlySetting returns the first setting that makes no sense in a
// resource file.
func suiteOnlySetting(s *domain.Settings) string {
	switch {
	case s.Name != "":
		return "name"
	case len(s.Metadata) > 0:
		return "metadata"
	case s.SuiteSetup != nil:
		return "suite_setup"
	case s.SuiteTeardown != nil:
		return "suite_teardown"
	case s.TestSetup != nil:
		return "test_setup"
	case s.TestTeardown != nil:
		return "test_teardown"
	case len(s.TestTags) > 0:
		return "test_tags"
	case s.TestTimeout != "":
		return "test_timeout"
	}
	return ""
}

// inferDoc uses the top-level heading of a markup document as documentation.
func inferDoc(headings []domain.Heading) string {
	for _, h := range headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	return ""
}

func isNone(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "NONE")
}
