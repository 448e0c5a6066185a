package cli

import (
	"github.com/frherrer/docsuite/internal/builder"
	"github.com/frherrer/docsuite/internal/config"
	"github.com/frherrer/docsuite/internal/domain"
	"github.com/frherrer/docsuite/internal/lang"
	"github.com/frherrer/docsuite/internal/parser"
)

func parserOptions(c *config.Config) (parser.Options, error) {
	langs, err := lang.New(c.Parsing.Languages...)
	if err != nil {
		return parser.Options{}, domain.NewError(domain.KindConfig, "", 0, "invalid language", err)
	}
	return parser.Options{
		Languages:           langs,
		ProcessCurdir:       c.Parsing.ProcessCurdir,
		BlockTags:           c.Parsing.BlockTags,
		PlaintextBlockStart: c.Parsing.PlaintextPatterns.BlockStart,
		PlaintextBlockEnd:   c.Parsing.PlaintextPatterns.BlockEnd,
	}, nil
}

// builderOptions maps the configuration onto SuiteBuilder options. Parser
// aliases from input.parsers are resolved against the built-in parsers.
func builderOptions(c *config.Config) (builder.Options, error) {
	popts, err := parserOptions(c)
	if err != nil {
		return builder.Options{}, err
	}
	mode, err := domain.ParseExecutionMode(c.Parsing.Mode)
	if err != nil {
		return builder.Options{}, domain.NewError(domain.KindConfig, "", 0, "", err)
	}

	opts := builder.Options{
		IncludedSuites:      c.Input.IncludedSuites,
		IncludedExtensions:  c.Input.Extensions,
		Mode:                mode,
		Languages:           popts.Languages,
		AllowEmptySuite:     c.Parsing.AllowEmptySuite,
		ProcessCurdir:       popts.ProcessCurdir,
		BlockTags:           popts.BlockTags,
		PlaintextBlockStart: popts.PlaintextBlockStart,
		PlaintextBlockEnd:   popts.PlaintextBlockEnd,
	}
	if len(c.Input.Parsers) > 0 {
		standard, err := parser.StandardParsers(popts)
		if err != nil {
			return builder.Options{}, domain.NewError(domain.KindConfig, "", 0, "invalid parser configuration", err)
		}
		opts.PluginLoader = parser.AliasLoader(standard)
		for _, spec := range c.Input.Parsers {
			opts.Parsers = append(opts.Parsers, spec)
		}
	}
	return opts, nil
}
