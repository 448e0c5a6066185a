package builder

import (
	"github.com/sirupsen/logrus"

	"github.com/frherrer/docsuite/internal/defaults"
	"github.com/frherrer/docsuite/internal/domain"
	"github.com/frherrer/docsuite/internal/parser"
	"github.com/frherrer/docsuite/internal/structure"
)

type frame struct {
	suite    *domain.TestSuite
	defaults *defaults.Scope
}

// suiteStructureParser builds the suite tree while a structure is walked.
type suiteStructureParser struct {
	parsers *parser.Registry
	native  parser.Parser
	modes   *modeReconciler
	log     *logrus.Logger

	suite *domain.TestSuite
	stack []frame
}

func newSuiteStructureParser(parsers *parser.Registry, native parser.Parser, mode domain.ExecutionMode, log *logrus.Logger) *suiteStructureParser {
	return &suiteStructureParser{
		parsers: parsers,
		native:  native,
		modes:   newModeReconciler(mode),
		log:     log,
	}
}

// parse walks node and returns the finished root suite.
func (p *suiteStructureParser) parse(node structure.Node) (*domain.TestSuite, error) {
	if err := node.Visit(p); err != nil {
		return nil, err
	}
	p.suite.Mode = p.modes.mode()
	return p.suite, nil
}

func (p *suiteStructureParser) VisitFile(f *structure.File) error {
	p.log.Infof("Parsing file '%s'.", f.Source)
	suite, err := p.buildFile(f)
	if err != nil {
		return domain.WrapSource(f.Source, err)
	}
	p.attach(suite)
	return nil
}

func (p *suiteStructureParser) StartDirectory(d *structure.Directory) error {
	if d.Source != "" {
		p.log.Infof("Parsing directory '%s'.", d.Source)
	}
	source := d.InitFile
	if source == "" {
		source = d.Source
	}
	scope := defaults.New(p.parentDefaults())

	prs, err := p.parsers.ParserFor(d.InitExtension())
	if err != nil {
		return domain.WrapSource(source, err)
	}
	suite, err := prs.ParseInitFile(source, scope)
	if err != nil {
		return domain.WrapSource(source, err)
	}
	if d.IsMultiSource {
		suite.Configure("", "")
	}
	p.attach(suite)
	p.stack = append(p.stack, frame{suite: suite, defaults: scope})
	return nil
}

// EndDirectory infers the mode of a directory from its first child.
func (p *suiteStructureParser) EndDirectory(*structure.Directory) error {
	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	if !top.suite.Mode.IsSet() && len(top.suite.Suites) > 0 {
		top.suite.Mode = top.suite.Suites[0].Mode
	}
	return nil
}

func (p *suiteStructureParser) buildFile(f *structure.File) (*domain.TestSuite, error) {
	scope := p.parentDefaults()
	if scope == nil {
		scope = defaults.New(nil)
	}
	prs, err := p.fileParser(f.Extension)
	if err != nil {
		return nil, err
	}
	suite, err := prs.ParseSuiteFile(f.Source, scope)
	if err != nil {
		return nil, err
	}
	if len(suite.Tests) == 0 {
		p.log.Infof("Data source '%s' has no tests or tasks.", f.Source)
	}
	if err := p.modes.reconcile(suite); err != nil {
		return nil, err
	}
	return suite, nil
}

// fileParser resolves the parser of a suite file. The empty extension is
// reserved for directories, so files without one use the native parser.
func (p *suiteStructureParser) fileParser(ext string) (parser.Parser, error) {
	if ext == "" {
		return p.native, nil
	}
	return p.parsers.ParserFor(ext)
}

func (p *suiteStructureParser) attach(suite *domain.TestSuite) {
	if p.suite == nil {
		p.suite = suite
		return
	}
	parent := p.stack[len(p.stack)-1].suite
	parent.Suites = append(parent.Suites, suite)
}

func (p *suiteStructureParser) parentDefaults() *defaults.Scope {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1].defaults
}
