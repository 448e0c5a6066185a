package parser

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/frherrer/docsuite/internal/defaults"
	"github.com/frherrer/docsuite/internal/domain"
)

// JSONParser reads suites and resources serialized as JSON, such as the
// output of "docsuite build --output json". The data is taken as is:
// inherited defaults are not applied.
type JSONParser struct{}

// NewJSONParser creates a new JSONParser.
func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

// SupportedExtensions returns the file extensions this parser handles.
func (p *JSONParser) SupportedExtensions() []string {
	return []string{".json", ".sjson"}
}

func (p *JSONParser) ParseSuiteFile(source string, _ *defaults.Scope) (*domain.TestSuite, error) {
	var suite domain.TestSuite
	if err := readJSON(source, &suite); err != nil {
		return nil, err
	}
	if suite.Source == "" {
		suite.Source = source
	}
	if suite.Name == "" {
		suite.Name = domain.NameFromSource(source, true)
	}
	return &suite, nil
}

func (p *JSONParser) ParseInitFile(source string, scope *defaults.Scope) (*domain.TestSuite, error) {
	return p.ParseSuiteFile(source, scope)
}

func (p *JSONParser) ParseResourceFile(source string) (*domain.ResourceFile, error) {
	var res domain.ResourceFile
	if err := readJSON(source, &res); err != nil {
		return nil, domain.NewError(domain.KindParse, "", 0, "Parsing JSON resource file failed", err)
	}
	if res.Source == "" {
		res.Source = source
	}
	return &res, nil
}

func readJSON(source string, v any) error {
	content, err := os.ReadFile(source)
	if err != nil {
		return domain.NewError(domain.KindParse, "", 0, "failed to read file", err)
	}
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.NewError(domain.KindParse, "", 0, "invalid JSON", err)
	}
	return nil
}
