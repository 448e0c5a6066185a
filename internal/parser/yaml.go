package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/frherrer/docsuite/internal/converter"
	"github.com/frherrer/docsuite/internal/domain"
	"github.com/frherrer/docsuite/internal/lang"
)

var knownSections = []string{lang.Settings, lang.Variables, lang.Tests, lang.Tasks, lang.Keywords}

// YAMLParser parses the native suite format.
type YAMLParser struct {
	documentParser
	langs *lang.Languages
}

// NewYAMLParser creates a new YAMLParser. Section names in any of langs are
// accepted in addition to English.
func NewYAMLParser(conv converter.Converter, langs *lang.Languages) *YAMLParser {
	p := &YAMLParser{langs: langs}
	p.documentParser = documentParser{decode: p.decode, converter: conv}
	return p
}

// SupportedExtensions returns the file extensions this parser handles.
func (p *YAMLParser) SupportedExtensions() []string {
	return []string{".suite", ".yaml", ".yml"}
}

func (p *YAMLParser) decode(_ string, content []byte) (*domain.Document, error) {
	doc, err := decodeYAML(content, p.langs)
	if err != nil {
		return nil, domain.NewError(domain.KindParse, "", 0, "", err)
	}
	return doc, nil
}

// decodeYAML decodes native suite data. Localized section names are
// translated before decoding and unknown fields are rejected.
func decodeYAML(content []byte, langs *lang.Languages) (*domain.Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, err
	}
	doc := &domain.Document{}
	if root.Kind == 0 || len(root.Content) == 0 {
		return doc, nil
	}
	top := root.Content[0]
	if top.Kind == yaml.ScalarNode && top.ShortTag() == "!!null" {
		return doc, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: suite data must be a mapping of sections", top.Line)
	}

	translated := false
	sections := make(map[string]*yaml.Node, len(top.Content)/2)
	for i := 0; i+1 < len(top.Content); i += 2 {
		key := top.Content[i]
		name := langs.Canonical(key.Value)
		if !slices.Contains(knownSections, name) {
			return nil, fmt.Errorf("line %d: unrecognized section '%s', valid sections are %s",
				key.Line, key.Value, strings.Join(knownSections, ", "))
		}
		if name != key.Value {
			key.Value = name
			translated = true
		}
		sections[name] = top.Content[i+1]
	}

	if translated {
		var err error
		if content, err = yaml.Marshal(&root); err != nil {
			return nil, err
		}
	}
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	// An empty tests or tasks section still declares the execution mode.
	if _, ok := sections[lang.Tests]; ok && doc.Tests == nil {
		doc.Tests = []domain.TestData{}
	}
	if _, ok := sections[lang.Tasks]; ok && doc.Tasks == nil {
		doc.Tasks = []domain.TestData{}
	}
	recordLines(doc.Tests, sections[lang.Tests])
	recordLines(doc.Tasks, sections[lang.Tasks])
	return doc, nil
}

func recordLines(tests []domain.TestData, node *yaml.Node) {
	if node == nil || node.Kind != yaml.SequenceNode || len(node.Content) != len(tests) {
		return
	}
	for i, item := range node.Content {
		tests[i].Line = item.Line
	}
}
