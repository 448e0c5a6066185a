package config

import (
	"github.com/frherrer/docsuite/internal/builder"
	"github.com/frherrer/docsuite/internal/parser"
	"github.com/frherrer/docsuite/internal/render"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Paths:      []string{"."},
			Extensions: append([]string(nil), builder.DefaultIncludedExtensions...),
		},
		Parsing: ParsingConfig{
			ProcessCurdir: true,
			BlockTags:     append([]string(nil), parser.DefaultBlockTags...),
			PlaintextPatterns: PlaintextPatternsConfig{
				BlockStart: parser.DefaultBlockStart,
				BlockEnd:   parser.DefaultBlockEnd,
			},
		},
		Output: OutputConfig{
			Format:   "tree",
			Template: render.DefaultTemplate,
			Color:    true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
