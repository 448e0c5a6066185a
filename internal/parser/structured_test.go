package parser_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frherrer/docsuite/internal/converter"
	"github.com/frherrer/docsuite/internal/defaults"
	"github.com/frherrer/docsuite/internal/domain"
	"github.com/frherrer/docsuite/internal/parser"
)

var _ = Describe("CUEParser", func() {
	var p *parser.CUEParser

	BeforeEach(func() {
		p = parser.NewCUEParser(converter.NewConverter(converter.Options{}))
	})

	It("should validate and convert CUE suites", func() {
		suite, err := p.ParseSuiteFile(fixture("cue", "login.cue"), defaults.New(nil))
		Expect(err).ToNot(HaveOccurred())
		Expect(suite.Doc).To(Equal("Login scenarios in CUE."))
		Expect(suite.Mode).To(Equal(domain.ModeTests))
		Expect(suite.Tests).To(HaveLen(1))
		Expect(suite.Tests[0].Tags).To(Equal([]string{"cue"}))
		Expect(suite.Tests[0].Steps).To(Equal([]domain.Step{
			{Keyword: "Log In", Args: []string{"demo", "secret"}},
			{Keyword: "Log", Args: []string{"done"}},
		}))
	})

	It("should report schema violations with their path", func() {
		_, err := p.ParseSuiteFile(fixture("cue", "invalid.cue"), defaults.New(nil))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("tests[0].name"))
	})
})

var _ = Describe("HCLParser", func() {
	var p *parser.HCLParser

	BeforeEach(func() {
		p = parser.NewHCLParser(converter.NewConverter(converter.Options{ProcessCurdir: true}), true)
	})

	writeHCL := func(content string) string {
		path := filepath.Join(GinkgoT().TempDir(), "steps.hcl")
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
		return path
	}

	It("should convert HCL blocks", func() {
		suite, err := p.ParseSuiteFile(fixture("hcl", "login.hcl"), defaults.New(nil))
		Expect(err).ToNot(HaveOccurred())
		Expect(suite.Doc).To(Equal("Login scenarios in HCL."))
		Expect(suite.Mode).To(Equal(domain.ModeTasks))
		Expect(suite.Tests).To(HaveLen(1))

		task := suite.Tests[0]
		Expect(task.Name).To(Equal("Rotate keys"))
		Expect(task.Tags).To(Equal([]string{"hcl", "ops"}))
		Expect(task.Setup).To(Equal(&domain.Fixture{Name: "Open Browser", Args: []string{"chrome"}}))
		Expect(task.Steps).To(Equal([]domain.Step{{Keyword: "Log", Args: []string{"rotating"}}}))

		Expect(suite.Resource.Imports).To(HaveLen(1))
		Expect(suite.Resource.Variables).To(Equal([]domain.Variable{
			{Name: "${USER}", Value: []string{"demo"}},
			{Name: "@{ROLES}", Value: []string{"admin", "viewer"}},
			{Name: "${DATA}", Value: []string{fixture("hcl", "data")}},
		}))
	})

	It("should resolve curdir and CURDIR when curdir processing is on", func() {
		path := writeHCL(`test "T" { steps = [["Log", "${curdir}", "${CURDIR}/x"]] }`)
		suite, err := p.ParseSuiteFile(path, defaults.New(nil))
		Expect(err).ToNot(HaveOccurred())
		dir := filepath.Dir(path)
		Expect(suite.Tests[0].Steps).To(Equal([]domain.Step{{Keyword: "Log", Args: []string{dir, dir + "/x"}}}))
	})

	Context("with curdir processing off", func() {
		BeforeEach(func() {
			p = parser.NewHCLParser(converter.NewConverter(converter.Options{}), false)
		})

		It("should not define curdir", func() {
			path := writeHCL(`test "T" { steps = [["Log", "${curdir}"]] }`)
			_, err := p.ParseSuiteFile(path, defaults.New(nil))
			Expect(err).To(MatchError(ContainSubstring(`There is no variable named "curdir"`)))
		})

		It("should keep an escaped CURDIR token", func() {
			path := writeHCL(`test "T" { steps = [["Log", "$${CURDIR}"]] }`)
			suite, err := p.ParseSuiteFile(path, defaults.New(nil))
			Expect(err).ToNot(HaveOccurred())
			Expect(suite.Tests[0].Steps).To(Equal([]domain.Step{{Keyword: "Log", Args: []string{"${CURDIR}"}}}))
		})
	})
})

var _ = Describe("JSONParser", func() {
	var p *parser.JSONParser

	BeforeEach(func() {
		p = parser.NewJSONParser()
	})

	It("should read a serialized suite verbatim", func() {
		source := fixture("json", "serialized.json")
		suite, err := p.ParseSuiteFile(source, defaults.New(nil))
		Expect(err).ToNot(HaveOccurred())
		Expect(suite.Name).To(Equal("Serialized"))
		Expect(suite.Source).To(Equal(source))
		Expect(suite.Mode).To(Equal(domain.ModeTasks))
		Expect(suite.Tests[0].Steps).To(Equal([]domain.Step{{Keyword: "Log", Args: []string{"hi"}}}))
	})

	It("should reject unknown fields", func() {
		_, err := p.ParseResourceFile(fixture("json", "serialized.json"))
		Expect(err).To(MatchError(ContainSubstring("Parsing JSON resource file failed")))
	})
})
