package parser

import (
	"os"

	"github.com/frherrer/docsuite/internal/converter"
	"github.com/frherrer/docsuite/internal/defaults"
	"github.com/frherrer/docsuite/internal/domain"
	"github.com/frherrer/docsuite/internal/lang"
)

// decodeFunc decodes raw file content into a Document.
type decodeFunc func(source string, content []byte) (*domain.Document, error)

// documentParser implements Parser for every format that decodes into a
// domain.Document first and is then converted by a converter.Converter.
type documentParser struct {
	decode    decodeFunc
	converter converter.Converter
}

func (p *documentParser) ParseSuiteFile(source string, scope *defaults.Scope) (*domain.TestSuite, error) {
	doc, err := p.load(source)
	if err != nil {
		return nil, err
	}
	return p.converter.ToSuite(doc, source, scope)
}

func (p *documentParser) ParseInitFile(source string, scope *defaults.Scope) (*domain.TestSuite, error) {
	doc, err := p.load(source)
	if err != nil {
		return nil, err
	}
	return p.converter.ToInitSuite(doc, source, scope)
}

func (p *documentParser) ParseResourceFile(source string) (*domain.ResourceFile, error) {
	doc, err := p.load(source)
	if err != nil {
		return nil, err
	}
	return p.converter.ToResource(doc, source)
}

func (p *documentParser) load(source string) (*domain.Document, error) {
	content, err := os.ReadFile(source)
	if err != nil {
		return nil, domain.NewErrorWithSuggestion(domain.KindParse, "", 0,
			"failed to read file",
			"check that the file exists and has read permissions",
			err)
	}
	return p.decode(source, content)
}

// decodeBlocks decodes each extracted block as native suite data and merges
// them in document order.
func decodeBlocks(blocks []domain.CodeBlock, headings []domain.Heading, langs *lang.Languages) (*domain.Document, error) {
	doc := &domain.Document{Headings: headings}
	for _, block := range blocks {
		if block.Attributes["skip"] == "true" {
			continue
		}
		part, err := decodeYAML([]byte(block.Content), langs)
		if err != nil {
			msg := "invalid '" + block.Tag + "' block"
			if block.Context != "" {
				msg += " under '" + block.Context + "'"
			}
			return nil, domain.NewError(domain.KindParse, "", block.LineNumber, msg, err)
		}
		shiftLines(part, block.LineNumber-1)
		doc.Merge(part)
	}
	return doc, nil
}

func shiftLines(doc *domain.Document, offset int) {
	for i := range doc.Tests {
		doc.Tests[i].Line += offset
	}
	for i := range doc.Tasks {
		doc.Tasks[i].Line += offset
	}
}

func tagSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return set
}
