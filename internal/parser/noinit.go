package parser

import (
	"github.com/frherrer/docsuite/internal/defaults"
	"github.com/frherrer/docsuite/internal/domain"
)

// NoInitFileDirectoryParser is used for directories without an
// initialization file. It creates an empty suite named after the directory.
type NoInitFileDirectoryParser struct{}

func (NoInitFileDirectoryParser) ParseInitFile(source string, _ *defaults.Scope) (*domain.TestSuite, error) {
	return &domain.TestSuite{
		Name:   domain.NameFromSource(source, false),
		Source: source,
	}, nil
}

func (NoInitFileDirectoryParser) ParseSuiteFile(source string, _ *defaults.Scope) (*domain.TestSuite, error) {
	return nil, domain.Errorf(domain.KindParse, "'%s' is a directory, not a suite file.", source)
}

func (NoInitFileDirectoryParser) ParseResourceFile(source string) (*domain.ResourceFile, error) {
	return nil, domain.Errorf(domain.KindParse, "'%s' is a directory, not a resource file.", source)
}
