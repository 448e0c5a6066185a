package structure_test

import (
	"fmt"
	"io"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/frherrer/docsuite/internal/structure"
)

// recorder flattens a walk into readable events.
type recorder struct {
	root   string
	events []string
	failOn string
}

func (r *recorder) rel(path string) string {
	if path == "" {
		return "<multi>"
	}
	rel, err := filepath.Rel(r.root, path)
	Expect(err).ToNot(HaveOccurred())
	return filepath.ToSlash(rel)
}

func (r *recorder) VisitFile(f *structure.File) error {
	r.events = append(r.events, "file "+r.rel(f.Source))
	if r.failOn != "" && filepath.Base(f.Source) == r.failOn {
		return fmt.Errorf("failed on %s", r.failOn)
	}
	return nil
}

func (r *recorder) StartDirectory(d *structure.Directory) error {
	ev := "start " + r.rel(d.Source)
	if d.InitFile != "" {
		ev += " init=" + filepath.Base(d.InitFile)
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) EndDirectory(d *structure.Directory) error {
	r.events = append(r.events, "end "+r.rel(d.Source))
	return nil
}

var _ = Describe("Builder", func() {
	var (
		root string
		log  *logrus.Logger
	)

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		log = logrus.New()
		log.SetOutput(io.Discard)
	})

	walk := func(b *structure.Builder, paths ...string) []string {
		node, err := b.Build(paths...)
		Expect(err).ToNot(HaveOccurred())
		r := &recorder{root: root}
		Expect(node.Visit(r)).To(Succeed())
		return r.events
	}

	It("should walk a directory depth-first in sorted order", func() {
		makeTree(root,
			"suites/b.suite", "suites/A.suite", "suites/__init__.suite",
			"suites/sub/c.suite", "suites/notes.txt",
			"suites/.hidden.suite", "suites/_private.suite", "suites/CVS/x.suite")
		b := structure.NewBuilder([]string{"suite"}, nil, log)
		Expect(walk(b, filepath.Join(root, "suites"))).To(Equal([]string{
			"start suites init=__init__.suite",
			"file suites/A.suite",
			"file suites/b.suite",
			"start suites/sub",
			"file suites/sub/c.suite",
			"end suites/sub",
			"end suites",
		}))
	})

	It("should normalize extensions", func() {
		makeTree(root, "d/a.SUITE", "d/b.md")
		b := structure.NewBuilder([]string{".Suite", "MD"}, nil, log)
		node, err := b.Build(filepath.Join(root, "d"))
		Expect(err).ToNot(HaveOccurred())
		dir := node.(*structure.Directory)
		Expect(dir.Children).To(HaveLen(2))
		Expect(dir.Children[0].(*structure.File).Extension).To(Equal("suite"))
		Expect(dir.InitExtension()).To(BeEmpty())
	})

	It("should report the init file extension", func() {
		makeTree(root, "d/__init__.MD", "d/a.md")
		node, err := structure.NewBuilder([]string{"md"}, nil, log).Build(filepath.Join(root, "d"))
		Expect(err).ToNot(HaveOccurred())
		Expect(node.(*structure.Directory).InitExtension()).To(Equal("md"))
	})

	It("should keep the first of several init files", func() {
		makeTree(root, "d/__init__.md", "d/__init__.suite", "d/a.suite")
		node, err := structure.NewBuilder([]string{"md", "suite"}, nil, log).Build(filepath.Join(root, "d"))
		Expect(err).ToNot(HaveOccurred())
		Expect(filepath.Base(node.(*structure.Directory).InitFile)).To(Equal("__init__.md"))
	})

	It("should return a single file as is, whatever its extension", func() {
		makeTree(root, "one.custom")
		node, err := structure.NewBuilder([]string{"suite"}, nil, log).Build(filepath.Join(root, "one.custom"))
		Expect(err).ToNot(HaveOccurred())
		Expect(node).To(Equal(&structure.File{Source: filepath.Join(root, "one.custom"), Extension: "custom"}))
	})

	It("should wrap several paths in a multi-source directory", func() {
		makeTree(root, "x.suite", "dir/y.suite")
		b := structure.NewBuilder([]string{"suite"}, nil, log)
		node, err := b.Build(filepath.Join(root, "x.suite"), filepath.Join(root, "dir"))
		Expect(err).ToNot(HaveOccurred())
		dir, ok := node.(*structure.Directory)
		Expect(ok).To(BeTrue())
		Expect(dir.IsMultiSource).To(BeTrue())
		Expect(dir.Source).To(BeEmpty())

		r := &recorder{root: root}
		Expect(node.Visit(r)).To(Succeed())
		Expect(r.events).To(Equal([]string{
			"start <multi>", "file x.suite", "start dir", "file dir/y.suite", "end dir", "end <multi>",
		}))
	})

	It("should stop at the first visitor error", func() {
		makeTree(root, "d/a.suite", "d/b.suite", "d/c.suite")
		node, err := structure.NewBuilder([]string{"suite"}, nil, log).Build(filepath.Join(root, "d"))
		Expect(err).ToNot(HaveOccurred())
		r := &recorder{root: root, failOn: "b.suite"}
		Expect(node.Visit(r)).To(MatchError("failed on b.suite"))
		Expect(r.events).To(Equal([]string{"start d", "file d/a.suite", "file d/b.suite"}))
	})

	It("should fail for a missing path", func() {
		_, err := structure.NewBuilder([]string{"suite"}, nil, log).Build(filepath.Join(root, "missing"))
		Expect(err).To(MatchError(ContainSubstring("File or directory to execute does not exist.")))
	})

	Context("with included suites", func() {
		BeforeEach(func() {
			makeTree(root,
				"s/01__login_tests.suite", "s/logout.suite",
				"s/admin/users.suite", "s/admin/roles.suite",
				"s/other/login_extra.suite")
		})

		It("should include matching files and every file of matching directories", func() {
			b := structure.NewBuilder([]string{"suite"}, []string{"Login Tests", "admin", "top.Login*"}, log)
			Expect(walk(b, filepath.Join(root, "s"))).To(Equal([]string{
				"start s",
				"file s/01__login_tests.suite",
				"start s/admin",
				"file s/admin/roles.suite",
				"file s/admin/users.suite",
				"end s/admin",
				"start s/other",
				"file s/other/login_extra.suite",
				"end s/other",
				"end s",
			}))
		})
	})
})

var _ = Describe("IncludedSuites", func() {
	It("should match everything without patterns", func() {
		is := structure.NewIncludedSuites(nil)
		Expect(is.Empty()).To(BeTrue())
		Expect(is.MatchFile("anything.suite")).To(BeTrue())
		Expect(is.MatchDirectory("dir")).To(BeFalse())
	})

	DescribeTable("matching file names",
		func(pattern, name string, want bool) {
			Expect(structure.NewIncludedSuites([]string{pattern}).MatchFile(name)).To(Equal(want))
		},
		Entry("exact", "login", "login.suite", true),
		Entry("case and spaces", "My Suite", "my_suite.suite", true),
		Entry("prefix", "login", "01__login.suite", true),
		Entry("glob", "log*", "logout.md", true),
		Entry("dotted", "parent.child", "child.suite", true),
		Entry("mismatch", "login", "logout.suite", false),
	)
})
