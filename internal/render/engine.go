// Package render prints built suite trees for the command line.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/frherrer/docsuite/internal/domain"
)

//go:embed templates/*.tmpl
var builtinTemplates embed.FS

// DefaultTemplate is used when no template name is given.
const DefaultTemplate = "tree"

// Row is one line of a rendered tree: a suite or one of its tests.
type Row struct {
	Depth   int
	IsSuite bool
	Name    string
	Source  string
	Mode    domain.ExecutionMode
	Count   int
	Tags    []string
}

// templateData is the struct passed to templates.
type templateData struct {
	Root       *domain.TestSuite
	Rows       []Row
	SuiteCount int
	// Unit is "tests" or "tasks" depending on the mode of the root.
	Unit string
}

// Engine renders suite trees with text/template.
type Engine struct {
	templates map[string]*template.Template
	funcs     template.FuncMap
}

// NewEngine loads the built-in templates and, when templateDir is set, the
// .tmpl files in it, which replace built-ins of the same name. Without
// color the style functions return their input unchanged.
func NewEngine(templateDir string, color bool) (*Engine, error) {
	e := &Engine{
		templates: make(map[string]*template.Template),
		funcs:     FuncMap(color),
	}
	if err := e.load(builtinTemplates, "templates"); err != nil {
		return nil, err
	}
	if templateDir != "" {
		if err := e.load(os.DirFS(templateDir), "."); err != nil {
			return nil, domain.NewError(domain.KindConfig, templateDir, 0, "failed to load templates", err)
		}
	}
	return e, nil
}

func (e *Engine) load(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tmpl") {
			continue
		}
		content, err := fs.ReadFile(fsys, filepath.ToSlash(filepath.Join(dir, entry.Name())))
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(entry.Name(), ".tmpl")
		tmpl, err := template.New(name).Funcs(e.funcs).Parse(string(content))
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", entry.Name(), err)
		}
		e.templates[name] = tmpl
	}
	return nil
}

// Render renders suite with the named template.
func (e *Engine) Render(suite *domain.TestSuite, name string) (string, error) {
	if name == "" {
		name = DefaultTemplate
	}
	tmpl, ok := e.templates[name]
	if !ok {
		return "", domain.Errorf(domain.KindConfig, "template %q not found (available: %s)",
			name, strings.Join(e.ListTemplates(), ", "))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newTemplateData(suite)); err != nil {
		return "", fmt.Errorf("failed to execute template %q: %w", name, err)
	}
	return buf.String(), nil
}

// ListTemplates returns the names of all loaded templates in sorted order.
func (e *Engine) ListTemplates() []string {
	names := make([]string, 0, len(e.templates))
	for name := range e.templates {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func newTemplateData(root *domain.TestSuite) templateData {
	data := templateData{Root: root, Unit: "tests"}
	if root.Mode == domain.ModeTasks {
		data.Unit = "tasks"
	}
	root.Walk(func(s *domain.TestSuite, depth int) {
		data.SuiteCount++
		data.Rows = append(data.Rows, Row{
			Depth:   depth,
			IsSuite: true,
			Name:    s.DisplayName(),
			Source:  s.Source,
			Mode:    s.Mode,
			Count:   s.TestCount(),
		})
		for _, t := range s.Tests {
			data.Rows = append(data.Rows, Row{Depth: depth + 1, Name: t.Name, Tags: t.Tags})
		}
	})
	return data
}
