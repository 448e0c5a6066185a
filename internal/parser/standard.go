package parser

import (
	"github.com/frherrer/docsuite/internal/converter"
	"github.com/frherrer/docsuite/internal/lang"
)

// Options configures the built-in parsers.
type Options struct {
	Languages *lang.Languages
	// ProcessCurdir replaces ${CURDIR} with the directory of the parsed
	// file. The zero value leaves the token alone; set it to true for the
	// behavior of config.DefaultConfig.
	ProcessCurdir bool
	// BlockTags are the code block tags holding suite data in markup
	// documents. Defaults to DefaultBlockTags.
	BlockTags []string
	// PlaintextBlockStart and PlaintextBlockEnd override the plain text
	// block markers.
	PlaintextBlockStart string
	PlaintextBlockEnd   string
}

// StandardParsers returns a registry holding every built-in parser. The
// native YAML parser doubles as the fallback for unknown extensions.
func StandardParsers(opts Options) (*Registry, error) {
	conv := converter.NewConverter(converter.Options{ProcessCurdir: opts.ProcessCurdir})

	start, end := opts.PlaintextBlockStart, opts.PlaintextBlockEnd
	if start == "" {
		start = DefaultBlockStart
	}
	if end == "" {
		end = DefaultBlockEnd
	}
	plaintext, err := NewPlaintextParser(conv, start, end, opts.BlockTags, opts.Languages)
	if err != nil {
		return nil, err
	}

	native := NewYAMLParser(conv, opts.Languages)
	reg := NewRegistry()
	reg.Register(native)
	reg.Register(NewMarkdownParser(conv, opts.BlockTags, opts.Languages))
	reg.Register(NewAsciiDocParser(conv, opts.BlockTags, opts.Languages))
	reg.Register(plaintext)
	reg.Register(NewJSONParser())
	reg.Register(NewCUEParser(conv))
	reg.Register(NewHCLParser(conv, opts.ProcessCurdir))
	reg.SetFallback(native)
	return reg, nil
}

// NativeExtension is the extension of the native suite format.
const NativeExtension = "suite"
