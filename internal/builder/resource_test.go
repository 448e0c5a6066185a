package builder_test

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/frherrer/docsuite/internal/builder"
	"github.com/frherrer/docsuite/internal/domain"
	"github.com/frherrer/docsuite/internal/parser"
)

const keywordsResource = `settings:
  documentation: Shared keywords.
  libraries:
    - Collections
keywords:
  - name: Log In
    args: ["${user}"]
    steps:
      - Input Text    id:user    ${user}
  - name: Log Out
    steps:
      - Click Button    Logout
`

var _ = Describe("ResourceBuilder", func() {
	var (
		dir  string
		rb   *builder.ResourceBuilder
		hook *test.Hook
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		var log *logrus.Logger
		log, hook = newLogger()
		var err error
		rb, err = builder.NewResourceBuilder(parser.Options{}, log)
		Expect(err).ToNot(HaveOccurred())
	})

	It("should parse native resource files and report the keyword count", func() {
		path := writeFile(dir, "common.resource", keywordsResource)
		res, err := rb.Build(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Source).To(Equal(path))
		Expect(res.Doc).To(Equal("Shared keywords."))
		Expect(res.Imports).To(HaveLen(1))
		Expect(res.Keywords).To(HaveLen(2))
		Expect(res.Keywords[0].Args).To(Equal([]string{"${user}"}))
		Expect(messages(hook, logrus.InfoLevel)).To(ContainElement(
			"Imported resource file '" + path + "' (2 keywords)."))
	})

	It("should use the markup parser for Markdown resources", func() {
		path := writeFile(dir, "keywords.md", "# Keywords\n\n```suite\n"+keywordsResource+"```\n")
		res, err := rb.Build(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Keywords).To(HaveLen(2))
	})

	It("should warn about empty resource files", func() {
		path := writeFile(dir, "empty.resource", "settings:\n  documentation: Nothing here.\n")
		res, err := rb.Build(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(res.IsEmpty()).To(BeTrue())
		Expect(messages(hook, logrus.WarnLevel)).To(Equal([]string{
			"Imported resource file '" + path + "' is empty.",
		}))
	})

	It("should reject resource files with tests", func() {
		path := writeFile(dir, "bad.resource", oneTest)
		_, err := rb.Build(path)
		Expect(err).To(MatchError("Parsing '" + path + "' failed: Resource file with 'tests' or 'tasks' section is invalid."))
	})

	It("should build several resources keeping their order", func() {
		a := writeFile(dir, "a.resource", keywordsResource)
		b := writeFile(dir, "b.resource", "variables:\n  - name: ${HOST}\n    value: localhost\n")
		res, err := rb.BuildAll(context.Background(), a, b)
		Expect(err).ToNot(HaveOccurred())
		Expect(res).To(HaveLen(2))
		Expect(res[0].Source).To(Equal(a))
		Expect(res[1].Variables).To(Equal([]domain.Variable{{Name: "${HOST}", Value: []string{"localhost"}}}))
	})

	It("should fail the batch when one resource fails", func() {
		a := writeFile(dir, "a.resource", keywordsResource)
		_, err := rb.BuildAll(context.Background(), a, filepath.Join(dir, "missing.resource"))
		Expect(err).To(MatchError(ContainSubstring("missing.resource")))
	})
})
