package parser

import (
	"fmt"

	"github.com/frherrer/docsuite/internal/defaults"
	"github.com/frherrer/docsuite/internal/domain"
)

// aliasPlugin exposes a registered parser under other extensions.
type aliasPlugin struct {
	target     Parser
	extensions []string
}

func (a *aliasPlugin) Extensions() []string { return a.extensions }

func (a *aliasPlugin) Parse(source string, scope *defaults.Scope) (*domain.TestSuite, error) {
	return a.target.ParseSuiteFile(source, scope)
}

func (a *aliasPlugin) ParseInit(source string, scope *defaults.Scope) (*domain.TestSuite, error) {
	return a.target.ParseInitFile(source, scope)
}

// AliasLoader resolves "format:ext[:ext]" specifications against reg. The
// parser registered for format handles files with the listed extensions,
// so "markdown:mkd" parses *.mkd files as Markdown.
func AliasLoader(reg *Registry) PluginLoader {
	return PluginLoaderFunc(func(name string, args []string) (any, error) {
		if !reg.Has(name) {
			return nil, fmt.Errorf("unknown format '%s'", name)
		}
		if len(args) == 0 {
			return nil, fmt.Errorf("no extensions given for format '%s'", name)
		}
		target, err := reg.ParserFor(name)
		if err != nil {
			return nil, err
		}
		return &aliasPlugin{target: target, extensions: args}, nil
	})
}
