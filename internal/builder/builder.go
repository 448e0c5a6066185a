// Package builder turns suite files and directories on disk into a single
// executable suite tree.
package builder

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/frherrer/docsuite/internal/domain"
	"github.com/frherrer/docsuite/internal/lang"
	"github.com/frherrer/docsuite/internal/parser"
	"github.com/frherrer/docsuite/internal/structure"
)

// DefaultIncludedExtensions are parsed when no extensions are configured:
// the native format and serialized suites.
var DefaultIncludedExtensions = []string{"suite", "sjson"}

// Options configures a SuiteBuilder.
type Options struct {
	// IncludedSuites restricts the build to suites whose name matches one
	// of these patterns. Empty suites are not an error when set.
	IncludedSuites []string
	// IncludedExtensions are the extensions of files parsed in directories.
	IncludedExtensions []string
	// Parsers are custom parsers, either parser.Plugin values or
	// "name[:arg[:arg]]" specifications resolved with PluginLoader.
	Parsers      []any
	PluginLoader parser.PluginLoader
	// Mode, when set, overrides the execution mode declared by files.
	Mode            domain.ExecutionMode
	Languages       *lang.Languages
	AllowEmptySuite bool
	// ProcessCurdir replaces ${CURDIR} with the directory of each parsed
	// file. It is off in the zero value; callers wanting the command line
	// default must set it.
	ProcessCurdir bool

	BlockTags           []string
	PlaintextBlockStart string
	PlaintextBlockEnd   string
}

// SuiteBuilder builds suite trees from paths on disk. It can be reused for
// several builds.
type SuiteBuilder struct {
	standard           *parser.Registry
	native             parser.Parser
	custom             []*parser.CustomParser
	includedSuites     []string
	includedExtensions []string
	mode               domain.ExecutionMode
	allowEmpty         bool
	log                *logrus.Logger
}

// NewSuiteBuilder creates a SuiteBuilder. Custom parsers are validated here,
// so an invalid one fails before anything is parsed.
func NewSuiteBuilder(opts Options, log *logrus.Logger) (*SuiteBuilder, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	standard, err := parser.StandardParsers(opts.parserOptions())
	if err != nil {
		return nil, domain.NewError(domain.KindConfig, "", 0, "invalid parser configuration", err)
	}
	native, err := standard.ParserFor(parser.NativeExtension)
	if err != nil {
		return nil, err
	}

	custom := make([]*parser.CustomParser, 0, len(opts.Parsers))
	for _, spec := range opts.Parsers {
		cp, err := loadCustomParser(spec, opts.PluginLoader)
		if err != nil {
			return nil, err
		}
		log.Debugf("Registered parser '%s' for extensions %v.", cp.Name(), cp.Extensions())
		custom = append(custom, cp)
	}

	exts := opts.IncludedExtensions
	if len(exts) == 0 {
		exts = DefaultIncludedExtensions
	}
	return &SuiteBuilder{
		standard:           standard,
		native:             native,
		custom:             custom,
		includedSuites:     opts.IncludedSuites,
		includedExtensions: exts,
		mode:               opts.Mode,
		allowEmpty:         opts.AllowEmptySuite,
		log:                log,
	}, nil
}

func (o Options) parserOptions() parser.Options {
	return parser.Options{
		Languages:           o.Languages,
		ProcessCurdir:       o.ProcessCurdir,
		BlockTags:           o.BlockTags,
		PlaintextBlockStart: o.PlaintextBlockStart,
		PlaintextBlockEnd:   o.PlaintextBlockEnd,
	}
}

func loadCustomParser(spec any, loader parser.PluginLoader) (*parser.CustomParser, error) {
	name, ok := spec.(string)
	if !ok {
		return parser.NewCustomParser(spec)
	}
	name, args := parser.SplitPluginSpec(name)
	if loader == nil {
		return nil, domain.Errorf(domain.KindConfig,
			"Importing parser '%s' failed: no plugin loader available.", name)
	}
	v, err := loader.Load(name, args)
	if err != nil {
		return nil, domain.Errorf(domain.KindConfig, "Importing parser '%s' failed: %v", name, err)
	}
	return parser.NewNamedCustomParser(name, v)
}

// Build parses the given files and directories into one suite tree. With
// several paths the root is an anonymous suite with one child per path.
func (b *SuiteBuilder) Build(paths ...string) (*domain.TestSuite, error) {
	paths, err := NormalizePaths(paths)
	if err != nil {
		return nil, err
	}

	extensions := append([]string(nil), b.includedExtensions...)
	for _, cp := range b.custom {
		extensions = append(extensions, cp.Extensions()...)
	}
	node, err := structure.NewBuilder(extensions, b.includedSuites, b.log).Build(paths...)
	if err != nil {
		return nil, err
	}

	suite, err := newSuiteStructureParser(b.parsersFor(paths), b.native, b.mode, b.log).parse(node)
	if err != nil {
		return nil, err
	}

	multiSource := len(paths) > 1
	if len(b.includedSuites) == 0 && !b.allowEmpty {
		if err := validateNotEmpty(suite, multiSource); err != nil {
			return nil, err
		}
	}
	suite.RemoveEmptySuites(multiSource)
	b.log.Debugf("Built suite '%s' with %d test(s).", suite.DisplayName(), suite.TestCount())
	return suite, nil
}

// parsersFor returns the parsers of one build: the directory parser, the
// custom parsers, and a built-in parser for every included extension and
// explicitly given file.
func (b *SuiteBuilder) parsersFor(paths []string) *parser.Registry {
	reg := parser.NewRegistry()
	reg.RegisterAs(parser.NoInitFileDirectoryParser{}, "")
	for _, cp := range b.custom {
		reg.Register(cp)
	}

	exts := append([]string(nil), b.includedExtensions...)
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			exts = append(exts, filepath.Ext(path))
		}
	}
	for _, ext := range exts {
		ext = parser.NormalizeExtension(ext)
		if ext == "" || reg.Has(ext) {
			continue
		}
		// ParserFor falls back to the native parser, so it cannot fail.
		prs, _ := b.standard.ParserFor(ext)
		reg.RegisterAs(prs, ext)
	}
	return reg
}

func validateNotEmpty(suite *domain.TestSuite, multiSource bool) error {
	if multiSource {
		for _, child := range suite.Suites {
			if err := validateNotEmpty(child, false); err != nil {
				return err
			}
		}
		return nil
	}
	if !suite.HasTests() {
		return domain.Errorf(domain.KindEmpty, "Suite '%s' contains no tests or tasks.", suite.DisplayName())
	}
	return nil
}
