package parser

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/frherrer/docsuite/internal/converter"
	"github.com/frherrer/docsuite/internal/domain"
)

//go:embed suite_schema.cue
var suiteSchema []byte

const suiteSchemaPath = "#Suite"

// CUEParser parses suite files written in CUE. The data is unified with an
// embedded schema, so type errors are reported with their field path.
type CUEParser struct {
	documentParser
}

// NewCUEParser creates a new CUEParser.
func NewCUEParser(conv converter.Converter) *CUEParser {
	p := &CUEParser{}
	p.documentParser = documentParser{decode: p.decode, converter: conv}
	return p
}

// SupportedExtensions returns the file extensions this parser handles.
func (p *CUEParser) SupportedExtensions() []string {
	return []string{".cue"}
}

// decode compiles the schema, unifies the user data with it, validates the
// result as concrete and decodes it through its JSON form.
func (p *CUEParser) decode(source string, content []byte) (*domain.Document, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(suiteSchema)
	if schema.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile suite schema: %w", schema.Err())
	}
	root := schema.LookupPath(cue.ParsePath(suiteSchemaPath))
	if root.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", suiteSchemaPath, root.Err())
	}

	data := ctx.CompileBytes(content, cue.Filename(source))
	if data.Err() != nil {
		return nil, formatCUEError(data.Err())
	}
	unified := root.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	raw, err := unified.MarshalJSON()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, domain.NewError(domain.KindParse, "", 0, "failed to decode CUE value", err)
	}
	return &doc, nil
}

// formatCUEError turns CUE errors into "path: message" lines.
func formatCUEError(err error) error {
	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return domain.NewError(domain.KindParse, "", 0, "", err)
	}

	var lines []string
	for _, e := range cueErrs {
		parts := cueerrors.Path(e)
		msg := e.Error()
		for _, prefix := range []string{strings.Join(parts, "."), formatCUEPath(parts)} {
			if prefix != "" && strings.HasPrefix(msg, prefix) {
				msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, prefix), ":"))
				break
			}
		}
		if len(parts) > 0 && parts[0] == suiteSchemaPath {
			parts = parts[1:]
		}
		path := formatCUEPath(parts)
		if path != "" {
			msg = path + ": " + msg
		}
		lines = append(lines, msg)
	}
	if len(lines) == 1 {
		return domain.NewError(domain.KindParse, "", 0, lines[0], nil)
	}
	return domain.NewError(domain.KindParse, "", 0,
		"validation failed:\n  "+strings.Join(lines, "\n  "), nil)
}

// formatCUEPath renders ["tests", "0", "name"] as "tests[0].name".
func formatCUEPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteString(".")
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
