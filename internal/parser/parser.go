package parser

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/frherrer/docsuite/internal/defaults"
	"github.com/frherrer/docsuite/internal/domain"
)

// Parser turns a source file into suite model objects.
type Parser interface {
	ParseSuiteFile(source string, scope *defaults.Scope) (*domain.TestSuite, error)
	ParseInitFile(source string, scope *defaults.Scope) (*domain.TestSuite, error)
	ParseResourceFile(source string) (*domain.ResourceFile, error)
}

// ExtensionParser is a Parser that knows which file extensions it handles.
type ExtensionParser interface {
	Parser
	SupportedExtensions() []string
}

// NormalizeExtension lower-cases ext and strips leading dots.
func NormalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimLeft(ext, "."))
}

// Registry maps normalized file extensions to parsers. It is safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	parsers  map[string]Parser
	fallback Parser
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers: make(map[string]Parser),
	}
}

// Register adds a parser for each of its supported extensions. A later
// registration for the same extension replaces the earlier one.
func (r *Registry) Register(p ExtensionParser) {
	r.RegisterAs(p, p.SupportedExtensions()...)
}

// RegisterAs adds a parser for the given extensions.
func (r *Registry) RegisterAs(p Parser, extensions ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range extensions {
		r.parsers[NormalizeExtension(ext)] = p
	}
}

// SetFallback sets the parser returned for unregistered extensions.
func (r *Registry) SetFallback(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = p
}

// Has reports whether a parser is registered for the extension itself,
// ignoring the fallback.
func (r *Registry) Has(extension string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.parsers[NormalizeExtension(extension)]
	return ok
}

// ParserFor returns the parser registered for the given file extension.
// If no parser is found, it returns the fallback parser if set.
func (r *Registry) ParserFor(extension string) (Parser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext := NormalizeExtension(extension)
	if p, ok := r.parsers[ext]; ok {
		return p, nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, fmt.Errorf("no parser registered for extension %q", extension)
}

// Extensions returns the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.parsers))
	for ext := range r.parsers {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}
