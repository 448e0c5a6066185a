package builder_test

import (
	"errors"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/frherrer/docsuite/internal/builder"
	"github.com/frherrer/docsuite/internal/defaults"
	"github.com/frherrer/docsuite/internal/domain"
	"github.com/frherrer/docsuite/internal/parser"
)

type xyzPlugin struct{}

func (xyzPlugin) Extensions() []string { return []string{".XYZ"} }

func (xyzPlugin) Parse(source string, scope *defaults.Scope) (*domain.TestSuite, error) {
	return &domain.TestSuite{
		Name:   "Custom " + filepath.Base(source),
		Source: source,
		Mode:   domain.ModeTests,
		Tests:  []*domain.TestCase{{Name: "Generated", Tags: scope.Tags()}},
	}, nil
}

type badPlugin struct{}

var _ = Describe("SuiteBuilder", func() {
	var (
		root string
		log  *logrus.Logger
		hook *test.Hook
	)

	BeforeEach(func() {
		root = filepath.Join(GinkgoT().TempDir(), "suites")
		log, hook = newLogger()
	})

	build := func(opts builder.Options, paths ...string) (*domain.TestSuite, error) {
		b, err := builder.NewSuiteBuilder(opts, log)
		Expect(err).ToNot(HaveOccurred())
		return b.Build(paths...)
	}

	Describe("path validation", func() {
		It("should require at least one path", func() {
			_, err := build(builder.Options{})
			Expect(err).To(MatchError("One or more source paths required."))
		})

		It("should report all missing paths together", func() {
			a, b := filepath.Join(root, "a.suite"), filepath.Join(root, "b.suite")
			_, err := build(builder.Options{}, a, b)
			Expect(err).To(MatchError("Parsing '" + a + "' and '" + b + "' failed: File or directory to execute does not exist."))
			var de *domain.DataError
			Expect(errors.As(err, &de)).To(BeTrue())
			Expect(de.Kind).To(Equal(domain.KindPath))
		})

		It("should clean relative paths", func() {
			writeFile(root, "a.suite", oneTest)
			paths, err := builder.NormalizePaths([]string{filepath.Join(root, "x", "..", "a.suite")})
			Expect(err).ToNot(HaveOccurred())
			Expect(paths).To(Equal([]string{filepath.Join(root, "a.suite")}))
		})
	})

	It("should build a single file into the root suite", func() {
		path := writeFile(root, "01__login_flow.suite", oneTest)
		suite, err := build(builder.Options{}, path)
		Expect(err).ToNot(HaveOccurred())
		Expect(suite.Name).To(Equal("Login Flow"))
		Expect(suite.Source).To(Equal(path))
		Expect(suite.Mode).To(Equal(domain.ModeTests))
		Expect(suite.Tests).To(HaveLen(1))
		Expect(messages(hook, logrus.InfoLevel)).To(ContainElement("Parsing file '" + path + "'."))
	})

	It("should parse explicit files with unknown or no extension as native data", func() {
		unknown := writeFile(root, "scenario.robot", oneTest)
		bare := writeFile(root, "README", oneTask)
		suite, err := build(builder.Options{AllowEmptySuite: true}, unknown)
		Expect(err).ToNot(HaveOccurred())
		Expect(suite.Tests).To(HaveLen(1))

		suite, err = build(builder.Options{}, bare)
		Expect(err).ToNot(HaveOccurred())
		Expect(suite.Mode).To(Equal(domain.ModeTasks))
	})

	Describe("directories", func() {
		It("should mirror the directory tree in sorted order", func() {
			writeFile(root, "b.suite", oneTest)
			writeFile(root, "a.suite", oneTest)
			writeFile(root, "sub/c.suite", oneTest)
			writeFile(root, "ignored.md", oneTest)

			suite, err := build(builder.Options{}, root)
			Expect(err).ToNot(HaveOccurred())
			Expect(suite.Name).To(Equal("Suites"))
			Expect(suite.Source).To(Equal(root))
			Expect(suite.Suites).To(HaveLen(3))
			Expect(suite.Suites[0].Name).To(Equal("A"))
			Expect(suite.Suites[1].Name).To(Equal("B"))
			Expect(suite.Suites[2].Name).To(Equal("Sub"))
			Expect(suite.Suites[2].Suites[0].Name).To(Equal("C"))
			Expect(suite.TestCount()).To(Equal(3))
		})

		It("should parse other formats when their extension is included", func() {
			writeFile(root, "a.suite", oneTest)
			writeFile(root, "b.md", "# Title\n\n```suite\n"+oneTest+"```\n")
			suite, err := build(builder.Options{IncludedExtensions: []string{"suite", ".MD"}}, root)
			Expect(err).ToNot(HaveOccurred())
			Expect(suite.Suites).To(HaveLen(2))
			Expect(suite.Suites[1].Doc).To(Equal("Title"))
		})

		It("should inherit defaults from init files without leaking between siblings", func() {
			writeFile(root, "__init__.suite", `settings:
  documentation: Top level.
  test_tags: [top]
  test_setup: Top Setup
`)
			writeFile(root, "a.suite", `settings:
  test_tags: [only-a]
`+oneTest)
			writeFile(root, "b.suite", oneTest)
			writeFile(root, "sub/__init__.suite", `settings:
  test_tags: [sub]
  test_setup: NONE
`)
			writeFile(root, "sub/c.suite", oneTest)
			writeFile(root, "z.suite", oneTest)

			suite, err := build(builder.Options{}, root)
			Expect(err).ToNot(HaveOccurred())
			Expect(suite.Doc).To(Equal("Top level."))

			a, b, sub, z := suite.Suites[0], suite.Suites[1], suite.Suites[2], suite.Suites[3]
			Expect(a.Tests[0].Tags).To(Equal([]string{"top", "only-a"}))
			Expect(b.Tests[0].Tags).To(Equal([]string{"top"}))
			Expect(b.Tests[0].Setup.Name).To(Equal("Top Setup"))

			c := sub.Suites[0]
			Expect(c.Tests[0].Tags).To(Equal([]string{"top", "sub"}))
			Expect(c.Tests[0].Setup).To(BeNil())

			Expect(z.Tests[0].Tags).To(Equal([]string{"top"}))
			Expect(z.Tests[0].Setup.Name).To(Equal("Top Setup"))
		})

		It("should infer directory modes from the first child", func() {
			writeFile(root, "a/one.suite", oneTask)
			writeFile(root, "b/empty.suite", noTests)
			writeFile(root, "b/two.suite", oneTask)

			suite, err := build(builder.Options{}, root)
			Expect(err).ToNot(HaveOccurred())
			Expect(suite.Mode).To(Equal(domain.ModeTasks))
			Expect(suite.Suites[0].Mode).To(Equal(domain.ModeTasks))
			Expect(suite.Suites[1].Suites).To(HaveLen(1))
		})

		It("should give the root the build mode even when its first child declares none", func() {
			writeFile(root, "a.suite", noTests)
			writeFile(root, "b.suite", oneTask)
			suite, err := build(builder.Options{}, root)
			Expect(err).ToNot(HaveOccurred())
			Expect(suite.Mode).To(Equal(domain.ModeTasks))
		})

		It("should log files without tests", func() {
			empty := writeFile(root, "a.suite", noTests)
			writeFile(root, "b.suite", oneTest)
			_, err := build(builder.Options{}, root)
			Expect(err).ToNot(HaveOccurred())
			Expect(messages(hook, logrus.InfoLevel)).To(ContainElements(
				"Parsing directory '"+root+"'.",
				"Data source '"+empty+"' has no tests or tasks.",
			))
		})
	})

	Describe("execution modes", func() {
		BeforeEach(func() {
			writeFile(root, "a.suite", oneTest)
			writeFile(root, "b.suite", oneTask)
		})

		It("should reject conflicting modes naming the later file", func() {
			_, err := build(builder.Options{}, root)
			Expect(err).To(MatchError("Parsing '" + filepath.Join(root, "b.suite") + "' failed: " +
				"Conflicting execution modes. File has tasks but files parsed earlier have tests. " +
				"Fix headers or use the '--mode' option to set the execution mode explicitly."))
			var de *domain.DataError
			Expect(errors.As(err, &de)).To(BeTrue())
			Expect(de.Kind).To(Equal(domain.KindMode))
		})

		It("should let an explicit mode win over file headers", func() {
			suite, err := build(builder.Options{Mode: domain.ModeTasks}, root)
			Expect(err).ToNot(HaveOccurred())
			Expect(suite.Mode).To(Equal(domain.ModeTasks))
			for _, child := range suite.Suites {
				Expect(child.Mode).To(Equal(domain.ModeTasks))
			}
		})

		It("should apply an explicit mode to nested suites", func() {
			writeFile(root, "nested/deep/x.suite", oneTask)
			writeFile(root, "nested/c.suite", oneTest)

			suite, err := build(builder.Options{Mode: domain.ModeTests}, root)
			Expect(err).ToNot(HaveOccurred())
			var names []string
			suite.Walk(func(s *domain.TestSuite, _ int) {
				names = append(names, s.Name)
				Expect(s.Mode).To(Equal(domain.ModeTests), "suite %q", s.Name)
			})
			Expect(names).To(ContainElements("Nested", "Deep", "X", "C"))
		})
	})

	Describe("curdir processing", func() {
		const curdirSuite = `tests:
  - name: Uses curdir
    steps:
      - Log    ${CURDIR}/data
`

		It("should leave ${CURDIR} alone in the zero value", func() {
			path := writeFile(root, "curdir.suite", curdirSuite)
			suite, err := build(builder.Options{}, path)
			Expect(err).ToNot(HaveOccurred())
			Expect(suite.Tests[0].Steps[0].Args).To(Equal([]string{"${CURDIR}/data"}))
		})

		It("should replace ${CURDIR} when enabled", func() {
			path := writeFile(root, "curdir.suite", curdirSuite)
			suite, err := build(builder.Options{ProcessCurdir: true}, path)
			Expect(err).ToNot(HaveOccurred())
			Expect(suite.Tests[0].Steps[0].Args).To(Equal([]string{root + "/data"}))
		})
	})

	Describe("empty suites", func() {
		It("should fail when nothing contains tests", func() {
			writeFile(root, "a.suite", noTests)
			_, err := build(builder.Options{}, root)
			Expect(err).To(MatchError("Suite 'Suites' contains no tests or tasks."))
		})

		It("should prune empty leaves when empty suites are allowed", func() {
			writeFile(root, "a.suite", noTests)
			suite, err := build(builder.Options{AllowEmptySuite: true}, root)
			Expect(err).ToNot(HaveOccurred())
			Expect(suite.Suites).To(BeEmpty())
		})

		It("should prune only the empty child", func() {
			writeFile(root, "__init__.suite", "settings:\n  documentation: Init.\n")
			writeFile(root, "empty.suite", noTests)
			writeFile(root, "full.suite", oneTest)
			suite, err := build(builder.Options{}, root)
			Expect(err).ToNot(HaveOccurred())
			Expect(suite.Suites).To(HaveLen(1))
			Expect(suite.Suites[0].Name).To(Equal("Full"))
		})

		It("should skip validation when suites are selected", func() {
			writeFile(root, "login.suite", noTests)
			writeFile(root, "other.suite", oneTest)
			suite, err := build(builder.Options{IncludedSuites: []string{"login"}}, root)
			Expect(err).ToNot(HaveOccurred())
			Expect(suite.Suites).To(BeEmpty())
		})
	})

	Describe("several paths", func() {
		var first, second string

		BeforeEach(func() {
			first = writeFile(root, "first.suite", oneTest)
			second = filepath.Join(root, "second")
			writeFile(root, "second/empty.suite", noTests)
		})

		It("should require every path to contain tests", func() {
			_, err := build(builder.Options{}, first, second)
			Expect(err).To(MatchError("Suite 'Second' contains no tests or tasks."))
		})

		It("should build an anonymous root and keep empty top-level children", func() {
			suite, err := build(builder.Options{AllowEmptySuite: true}, first, second)
			Expect(err).ToNot(HaveOccurred())
			Expect(suite.Name).To(BeEmpty())
			Expect(suite.Source).To(BeEmpty())
			Expect(suite.DisplayName()).To(Equal("First & Second"))
			Expect(suite.Suites).To(HaveLen(2))
			Expect(suite.Suites[1].Suites).To(BeEmpty())
		})
	})

	Describe("parse errors", func() {
		It("should prefix the offending file", func() {
			bad := writeFile(root, "bad.suite", "tests:\n  - name: [unclosed\n")
			_, err := build(builder.Options{}, root)
			Expect(err).To(MatchError(HavePrefix("Parsing '" + bad + "' failed: ")))
		})

		It("should prefix the offending init file", func() {
			init := writeFile(root, "__init__.suite", oneTest)
			writeFile(root, "a.suite", oneTest)
			_, err := build(builder.Options{}, root)
			Expect(err).To(MatchError(HavePrefix("Parsing '" + init + "' failed: ")))
		})
	})

	Describe("custom parsers", func() {
		It("should parse files with the plugin's extensions", func() {
			writeFile(root, "__init__.suite", "settings:\n  test_tags: [inherited]\n")
			writeFile(root, "gen.xyz", "anything")
			suite, err := build(builder.Options{Parsers: []any{xyzPlugin{}}}, root)
			Expect(err).ToNot(HaveOccurred())
			Expect(suite.Suites).To(HaveLen(1))
			Expect(suite.Suites[0].Name).To(Equal("Custom gen.xyz"))
			Expect(suite.Suites[0].Tests[0].Tags).To(Equal([]string{"inherited"}))
		})

		It("should resolve string specifications with the loader", func() {
			path := writeFile(root, "gen.xyz", "anything")
			var gotArgs []string
			loader := parser.PluginLoaderFunc(func(name string, args []string) (any, error) {
				Expect(name).To(Equal("Generator"))
				gotArgs = args
				return xyzPlugin{}, nil
			})
			suite, err := build(builder.Options{Parsers: []any{"Generator:fast"}, PluginLoader: loader}, path)
			Expect(err).ToNot(HaveOccurred())
			Expect(suite.Name).To(Equal("Custom gen.xyz"))
			Expect(gotArgs).To(Equal([]string{"fast"}))
		})

		It("should reject string specifications without a loader", func() {
			_, err := builder.NewSuiteBuilder(builder.Options{Parsers: []any{"Generator"}}, log)
			Expect(err).To(MatchError("Importing parser 'Generator' failed: no plugin loader available."))
		})

		It("should reject objects without the parser methods", func() {
			_, err := builder.NewSuiteBuilder(builder.Options{Parsers: []any{badPlugin{}}}, log)
			Expect(err).To(MatchError(
				"Importing parser 'builder_test.badPlugin' failed: 'Extensions' and 'Parse' methods are required."))
		})
	})
})
