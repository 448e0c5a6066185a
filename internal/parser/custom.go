package parser

import (
	"fmt"
	"strings"

	"github.com/frherrer/docsuite/internal/defaults"
	"github.com/frherrer/docsuite/internal/domain"
)

// Plugin is the capability a custom parser must provide.
type Plugin interface {
	// Extensions returns the file extensions the plugin handles.
	Extensions() []string
	// Parse builds a suite from source. Defaults inherited from parent
	// initialization files are available through scope.
	Parse(source string, scope *defaults.Scope) (*domain.TestSuite, error)
}

// InitPlugin is implemented by plugins that can also parse suite
// initialization files.
type InitPlugin interface {
	ParseInit(source string, scope *defaults.Scope) (*domain.TestSuite, error)
}

// PluginLoader resolves a parser given by name, with the arguments that
// followed the name in a "name:arg:arg" specification.
type PluginLoader interface {
	Load(name string, args []string) (any, error)
}

// PluginLoaderFunc adapts a function to PluginLoader.
type PluginLoaderFunc func(name string, args []string) (any, error)

func (f PluginLoaderFunc) Load(name string, args []string) (any, error) {
	return f(name, args)
}

// SplitPluginSpec splits "name:arg1:arg2" into the name and its arguments.
func SplitPluginSpec(spec string) (string, []string) {
	parts := strings.Split(spec, ":")
	return parts[0], parts[1:]
}

// CustomParser adapts a Plugin to the Parser interface.
type CustomParser struct {
	name       string
	plugin     Plugin
	init       InitPlugin
	extensions []string
}

// NewCustomParser validates that v provides the Plugin capability. Errors
// name the parser after its type, or its Name method when it has one.
func NewCustomParser(v any) (*CustomParser, error) {
	return NewNamedCustomParser(pluginName(v), v)
}

// NewNamedCustomParser is NewCustomParser for a plugin loaded by name.
func NewNamedCustomParser(name string, v any) (*CustomParser, error) {
	plugin, ok := v.(Plugin)
	if !ok {
		return nil, domain.Errorf(domain.KindConfig,
			"Importing parser '%s' failed: 'Extensions' and 'Parse' methods are required.", name)
	}
	var exts []string
	for _, ext := range plugin.Extensions() {
		if ext = NormalizeExtension(ext); ext != "" {
			exts = append(exts, ext)
		}
	}
	if len(exts) == 0 {
		return nil, domain.Errorf(domain.KindConfig,
			"Importing parser '%s' failed: 'Extensions' returned no extensions.", name)
	}
	cp := &CustomParser{name: name, plugin: plugin, extensions: exts}
	cp.init, _ = v.(InitPlugin)
	return cp, nil
}

// Name returns the name used in error messages.
func (p *CustomParser) Name() string { return p.name }

// Extensions returns the normalized extensions of the plugin.
func (p *CustomParser) Extensions() []string { return p.extensions }

// SupportedExtensions implements ExtensionParser.
func (p *CustomParser) SupportedExtensions() []string { return p.extensions }

func (p *CustomParser) ParseSuiteFile(source string, scope *defaults.Scope) (*domain.TestSuite, error) {
	suite, err := p.plugin.Parse(source, scope)
	if err != nil {
		return nil, err
	}
	return p.checkSuite(suite, "Parse")
}

func (p *CustomParser) ParseInitFile(source string, scope *defaults.Scope) (*domain.TestSuite, error) {
	if p.init == nil {
		return nil, domain.Errorf(domain.KindParse,
			"Parser '%s' does not support parsing initialization files.", p.name)
	}
	suite, err := p.init.ParseInit(source, scope)
	if err != nil {
		return nil, err
	}
	return p.checkSuite(suite, "ParseInit")
}

func (p *CustomParser) ParseResourceFile(string) (*domain.ResourceFile, error) {
	return nil, domain.Errorf(domain.KindParse,
		"Parser '%s' does not support parsing resource files.", p.name)
}

func (p *CustomParser) checkSuite(suite *domain.TestSuite, method string) (*domain.TestSuite, error) {
	if suite == nil {
		return nil, domain.Errorf(domain.KindParse,
			"Parser '%s' method '%s' returned no suite.", p.name, method)
	}
	return suite, nil
}

func pluginName(v any) string {
	if n, ok := v.(interface{ Name() string }); ok {
		return n.Name()
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", v), "*")
}
