package parser

import (
	"regexp"
	"strings"

	"github.com/frherrer/docsuite/internal/converter"
	"github.com/frherrer/docsuite/internal/domain"
	"github.com/frherrer/docsuite/internal/lang"
)

// AsciiDocParser parses AsciiDoc documents using regex patterns. Suite data
// lives in [source,<tag>] listing blocks.
type AsciiDocParser struct {
	documentParser
	tags  []string
	langs *lang.Languages
}

// NewAsciiDocParser creates a new AsciiDocParser.
func NewAsciiDocParser(conv converter.Converter, tags []string, langs *lang.Languages) *AsciiDocParser {
	if len(tags) == 0 {
		tags = DefaultBlockTags
	}
	p := &AsciiDocParser{tags: tags, langs: langs}
	p.documentParser = documentParser{decode: p.decode, converter: conv}
	return p
}

// SupportedExtensions returns the file extensions this parser handles.
func (p *AsciiDocParser) SupportedExtensions() []string {
	return []string{".adoc", ".asciidoc"}
}

var (
	// Matches [source,tag,attr1="val1",attr2="val2"]
	asciidocSourceRe = regexp.MustCompile(`^\[source,([^,\]]+)(?:,(.+))?\]\s*$`)
	// Matches ---- delimiter
	asciidocDelimRe = regexp.MustCompile(`^----+\s*$`)
	// Matches = Title, == Section, etc.
	asciidocHeadingRe = regexp.MustCompile(`^(={1,6})\s+(.+)$`)
)

func (p *AsciiDocParser) decode(_ string, content []byte) (*domain.Document, error) {
	blocks, headings := ExtractAsciiDoc(content, p.tags)
	return decodeBlocks(blocks, headings, p.langs)
}

// ExtractAsciiDoc returns the listing blocks tagged with one of tags and all
// headings of an AsciiDoc document. The document title is level 1.
func ExtractAsciiDoc(content []byte, tags []string) ([]domain.CodeBlock, []domain.Heading) {
	lines := strings.Split(string(content), "\n")
	accepted := tagSet(tags)

	var (
		blocks         []domain.CodeBlock
		headings       []domain.Heading
		currentHeading string
	)
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if m := asciidocHeadingRe.FindStringSubmatch(line); m != nil {
			text := strings.TrimSpace(m[2])
			headings = append(headings, domain.Heading{
				Level: len(m[1]),
				Text:  text,
				Line:  i + 1,
			})
			currentHeading = text
			continue
		}

		m := asciidocSourceRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		tag := strings.TrimSpace(m[1])
		if !accepted[tag] {
			continue
		}
		attrs := make(map[string]string)
		if m[2] != "" {
			attrs = parseAsciidocAttrs(m[2])
		}

		// Expect ---- delimiter on next line
		i++
		if i >= len(lines) {
			break
		}
		if !asciidocDelimRe.MatchString(lines[i]) {
			continue
		}

		i++
		var contentLines []string
		contentStartLine := i + 1
		for i < len(lines) && !asciidocDelimRe.MatchString(lines[i]) {
			contentLines = append(contentLines, lines[i])
			i++
		}

		blocks = append(blocks, domain.CodeBlock{
			Tag:        tag,
			Content:    strings.Join(contentLines, "\n"),
			LineNumber: contentStartLine,
			Attributes: attrs,
			Context:    currentHeading,
		})
	}
	return blocks, headings
}

// parseAsciidocAttrs parses comma-separated key="value" or key=value attributes.
func parseAsciidocAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, part := range splitAsciidocAttrs(s) {
		part = strings.TrimSpace(part)
		if idx := strings.Index(part, "="); idx > 0 {
			key := strings.TrimSpace(part[:idx])
			val := strings.TrimSpace(part[idx+1:])
			attrs[key] = strings.Trim(val, "\"'")
		}
	}
	return attrs
}

// splitAsciidocAttrs splits on commas, respecting quoted values.
func splitAsciidocAttrs(s string) []string {
	var parts []string
	var current strings.Builder
	inQuote := false
	quoteChar := byte(0)

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote:
			if c == quoteChar {
				inQuote = false
			}
			current.WriteByte(c)
		case c == '"' || c == '\'':
			inQuote = true
			quoteChar = c
			current.WriteByte(c)
		case c == ',':
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteByte(c)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}
