package parser

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/frherrer/docsuite/internal/converter"
	"github.com/frherrer/docsuite/internal/domain"
)

// hclSuite is the HCL shape of a suite file:
//
//	settings { test_tags = ["smoke"] }
//	library "Collections" {}
//	variable "$${USER}" { value = "robot" }
//	test "Login works" { steps = [["Open Login Page"], ["Log In", "demo"]] }
type hclSuite struct {
	Settings      *hclSettings  `hcl:"settings,block"`
	Libraries     []hclImport   `hcl:"library,block"`
	Resources     []hclImport   `hcl:"resource,block"`
	VariableFiles []hclImport   `hcl:"variable_file,block"`
	Variables     []hclVariable `hcl:"variable,block"`
	Tests         []hclTest     `hcl:"test,block"`
	Tasks         []hclTest     `hcl:"task,block"`
	Keywords      []hclKeyword  `hcl:"keyword,block"`
}

type hclSettings struct {
	Name          string            `hcl:"name,optional"`
	Documentation string            `hcl:"documentation,optional"`
	Metadata      map[string]string `hcl:"metadata,optional"`
	SuiteSetup    []string          `hcl:"suite_setup,optional"`
	SuiteTeardown []string          `hcl:"suite_teardown,optional"`
	TestSetup     []string          `hcl:"test_setup,optional"`
	TestTeardown  []string          `hcl:"test_teardown,optional"`
	TestTags      []string          `hcl:"test_tags,optional"`
	TestTimeout   string            `hcl:"test_timeout,optional"`
}

type hclImport struct {
	Name string   `hcl:"name,label"`
	Args []string `hcl:"args,optional"`
}

type hclVariable struct {
	Name  string         `hcl:"name,label"`
	Value hcl.Expression `hcl:"value"`
}

type hclTest struct {
	Name     string     `hcl:"name,label"`
	Doc      string     `hcl:"doc,optional"`
	Tags     []string   `hcl:"tags,optional"`
	Timeout  string     `hcl:"timeout,optional"`
	Setup    []string   `hcl:"setup,optional"`
	Teardown []string   `hcl:"teardown,optional"`
	Steps    [][]string `hcl:"steps,optional"`
}

type hclKeyword struct {
	Name  string     `hcl:"name,label"`
	Doc   string     `hcl:"doc,optional"`
	Args  []string   `hcl:"args,optional"`
	Tags  []string   `hcl:"tags,optional"`
	Steps [][]string `hcl:"steps,optional"`
}

// HCLParser parses suite files written in HCL. With curdir processing
// enabled, expressions can refer to curdir or CURDIR, the directory of the
// file being parsed. Write $${CURDIR} to keep the literal token.
type HCLParser struct {
	documentParser
	processCurdir bool
}

// NewHCLParser creates a new HCLParser. processCurdir should match the
// setting conv was created with.
func NewHCLParser(conv converter.Converter, processCurdir bool) *HCLParser {
	p := &HCLParser{processCurdir: processCurdir}
	p.documentParser = documentParser{decode: p.decode, converter: conv}
	return p
}

// SupportedExtensions returns the file extensions this parser handles.
func (p *HCLParser) SupportedExtensions() []string {
	return []string{".hcl"}
}

func (p *HCLParser) decode(source string, content []byte) (*domain.Document, error) {
	file, diags := hclparse.NewParser().ParseHCL(content, source)
	if diags.HasErrors() {
		return nil, domain.NewError(domain.KindParse, "", 0, "invalid HCL", diags)
	}

	ctx := &hcl.EvalContext{}
	if p.processCurdir {
		dir := cty.StringVal(filepath.Dir(source))
		ctx.Variables = map[string]cty.Value{"curdir": dir, "CURDIR": dir}
	}
	var raw hclSuite
	if diags := gohcl.DecodeBody(file.Body, ctx, &raw); diags.HasErrors() {
		return nil, domain.NewError(domain.KindParse, "", 0, "failed to decode HCL suite", diags)
	}
	return raw.document(ctx)
}

func (s *hclSuite) document(ctx *hcl.EvalContext) (*domain.Document, error) {
	doc := &domain.Document{}
	if st := s.Settings; st != nil {
		doc.Settings = domain.Settings{
			Name:          st.Name,
			Documentation: st.Documentation,
			Metadata:      st.Metadata,
			SuiteSetup:    st.SuiteSetup,
			SuiteTeardown: st.SuiteTeardown,
			TestSetup:     st.TestSetup,
			TestTeardown:  st.TestTeardown,
			TestTags:      st.TestTags,
			TestTimeout:   st.TestTimeout,
		}
	}
	doc.Settings.Libraries = hclImports(s.Libraries)
	doc.Settings.Resources = hclImports(s.Resources)
	doc.Settings.VariableFiles = hclImports(s.VariableFiles)

	for _, v := range s.Variables {
		value, err := hclStrings(v.Value, ctx)
		if err != nil {
			return nil, domain.NewError(domain.KindParse, "", v.Value.Range().Start.Line,
				fmt.Sprintf("invalid value for variable '%s'", v.Name), err)
		}
		doc.Variables = append(doc.Variables, domain.VariableData{Name: v.Name, Value: value})
	}
	if s.Tests != nil {
		doc.Tests = hclTests(s.Tests)
	}
	if s.Tasks != nil {
		doc.Tasks = hclTests(s.Tasks)
	}
	for _, kw := range s.Keywords {
		doc.Keywords = append(doc.Keywords, domain.KeywordData{
			Name:  kw.Name,
			Doc:   kw.Doc,
			Args:  kw.Args,
			Tags:  kw.Tags,
			Steps: hclSteps(kw.Steps),
		})
	}
	return doc, nil
}

// hclStrings accepts either a list of strings or a single string.
func hclStrings(expr hcl.Expression, ctx *hcl.EvalContext) ([]string, error) {
	var list []string
	if diags := gohcl.DecodeExpression(expr, ctx, &list); !diags.HasErrors() {
		return list, nil
	}
	var single string
	if diags := gohcl.DecodeExpression(expr, ctx, &single); diags.HasErrors() {
		return nil, diags
	}
	return []string{single}, nil
}

func hclImports(imports []hclImport) []domain.StringList {
	var out []domain.StringList
	for _, imp := range imports {
		out = append(out, append(domain.StringList{imp.Name}, imp.Args...))
	}
	return out
}

func hclTests(tests []hclTest) []domain.TestData {
	out := make([]domain.TestData, 0, len(tests))
	for _, t := range tests {
		out = append(out, domain.TestData{
			Name:     t.Name,
			Doc:      t.Doc,
			Tags:     t.Tags,
			Timeout:  t.Timeout,
			Setup:    t.Setup,
			Teardown: t.Teardown,
			Steps:    hclSteps(t.Steps),
		})
	}
	return out
}

func hclSteps(steps [][]string) []domain.StringList {
	out := make([]domain.StringList, 0, len(steps))
	for _, step := range steps {
		out = append(out, step)
	}
	return out
}
