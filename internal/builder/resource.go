package builder

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/frherrer/docsuite/internal/domain"
	"github.com/frherrer/docsuite/internal/parser"
)

// markupExtensions are resource extensions parsed by their markup parser.
// Every other resource file is parsed as native data.
var markupExtensions = []string{"md", "markdown", "adoc", "asciidoc"}

// ResourceBuilder parses resource files. Resources are not part of the
// suite tree and ignore execution modes and inherited defaults.
type ResourceBuilder struct {
	parsers *parser.Registry
	log     *logrus.Logger
}

// NewResourceBuilder creates a ResourceBuilder using the built-in parsers
// configured by opts.
func NewResourceBuilder(opts parser.Options, log *logrus.Logger) (*ResourceBuilder, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	standard, err := parser.StandardParsers(opts)
	if err != nil {
		return nil, domain.NewError(domain.KindConfig, "", 0, "invalid parser configuration", err)
	}
	native, err := standard.ParserFor(parser.NativeExtension)
	if err != nil {
		return nil, err
	}

	reg := parser.NewRegistry()
	for _, ext := range markupExtensions {
		prs, err := standard.ParserFor(ext)
		if err != nil {
			return nil, err
		}
		reg.RegisterAs(prs, ext)
	}
	reg.SetFallback(native)
	return &ResourceBuilder{parsers: reg, log: log}, nil
}

// Build parses one resource file.
func (b *ResourceBuilder) Build(source string) (*domain.ResourceFile, error) {
	b.log.Infof("Parsing resource file '%s'.", source)
	prs, err := b.parsers.ParserFor(filepath.Ext(source))
	if err != nil {
		return nil, domain.WrapSource(source, err)
	}
	res, err := prs.ParseResourceFile(source)
	if err != nil {
		return nil, domain.WrapSource(source, err)
	}
	if res.IsEmpty() {
		b.log.Warnf("Imported resource file '%s' is empty.", source)
	} else {
		b.log.Infof("Imported resource file '%s' (%d keywords).", source, len(res.Keywords))
	}
	return res, nil
}

// BuildAll parses several resource files concurrently. Results keep the
// order of sources; the first failure cancels the remaining work.
func (b *ResourceBuilder) BuildAll(ctx context.Context, sources ...string) ([]*domain.ResourceFile, error) {
	results := make([]*domain.ResourceFile, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, source := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := b.Build(source)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
