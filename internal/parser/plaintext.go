package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/frherrer/docsuite/internal/converter"
	"github.com/frherrer/docsuite/internal/domain"
	"github.com/frherrer/docsuite/internal/lang"
)

// Default block markers for plain text documents.
const (
	DefaultBlockStart = `^\s*@begin\((\S+)(?:\s+(.*))?\)\s*$`
	DefaultBlockEnd   = `^\s*@end\s*$`
)

// PlaintextParser parses generic text files using configurable regex
// patterns. The start pattern must capture the block tag in group 1 and may
// capture attributes in group 2.
type PlaintextParser struct {
	documentParser
	tags              []string
	langs             *lang.Languages
	blockStartPattern *regexp.Regexp
	blockEndPattern   *regexp.Regexp
}

// NewPlaintextParser creates a new PlaintextParser with the given regex patterns.
func NewPlaintextParser(conv converter.Converter, blockStart, blockEnd string, tags []string, langs *lang.Languages) (*PlaintextParser, error) {
	startRe, err := regexp.Compile(blockStart)
	if err != nil {
		return nil, fmt.Errorf("invalid block_start pattern: %w", err)
	}
	endRe, err := regexp.Compile(blockEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid block_end pattern: %w", err)
	}
	if len(tags) == 0 {
		tags = DefaultBlockTags
	}
	p := &PlaintextParser{
		tags:              tags,
		langs:             langs,
		blockStartPattern: startRe,
		blockEndPattern:   endRe,
	}
	p.documentParser = documentParser{decode: p.decode, converter: conv}
	return p, nil
}

// SupportedExtensions returns the file extensions this parser handles.
func (p *PlaintextParser) SupportedExtensions() []string {
	return []string{".txt", ".text"}
}

func (p *PlaintextParser) decode(_ string, content []byte) (*domain.Document, error) {
	blocks, headings := p.Extract(content)
	return decodeBlocks(blocks, headings, p.langs)
}

// Extract returns the tagged blocks and underlined headings of a text document.
func (p *PlaintextParser) Extract(content []byte) ([]domain.CodeBlock, []domain.Heading) {
	lines := strings.Split(string(content), "\n")
	accepted := tagSet(p.tags)

	// Detect simple headings: lines followed by --- or === underlines
	var headings []domain.Heading
	for i := 0; i < len(lines)-1; i++ {
		line := strings.TrimSpace(lines[i])
		underline := strings.TrimSpace(lines[i+1])
		if line != "" && len(underline) >= 3 && (allChar(underline, '=') || allChar(underline, '-')) {
			level := 1
			if allChar(underline, '-') {
				level = 2
			}
			headings = append(headings, domain.Heading{Level: level, Text: line, Line: i + 1})
		}
	}

	var blocks []domain.CodeBlock
	var currentHeading string
	next := 0
	for i := 0; i < len(lines); i++ {
		for next < len(headings) && headings[next].Line <= i+1 {
			currentHeading = headings[next].Text
			next++
		}

		m := p.blockStartPattern.FindStringSubmatch(lines[i])
		if m == nil || len(m) < 2 || !accepted[m[1]] {
			continue
		}
		attrs := make(map[string]string)
		if len(m) > 2 && m[2] != "" {
			attrs = parsePlaintextAttrs(m[2])
		}

		startLine := i + 2 // content starts on the line after the marker
		i++
		var contentLines []string
		for i < len(lines) && !p.blockEndPattern.MatchString(lines[i]) {
			contentLines = append(contentLines, lines[i])
			i++
		}
		blocks = append(blocks, domain.CodeBlock{
			Tag:        m[1],
			Content:    strings.Join(contentLines, "\n"),
			LineNumber: startLine,
			Attributes: attrs,
			Context:    currentHeading,
		})
	}
	return blocks, headings
}

// parsePlaintextAttrs parses space-separated key=value or key="value" attributes.
func parsePlaintextAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, part := range splitInfoString(s) {
		if idx := strings.Index(part, "="); idx > 0 {
			attrs[part[:idx]] = strings.Trim(part[idx+1:], "\"'")
		}
	}
	return attrs
}

// allChar checks if s consists entirely of character c.
func allChar(s string, c byte) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			return false
		}
	}
	return true
}
