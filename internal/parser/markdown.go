package parser

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/frherrer/docsuite/internal/converter"
	"github.com/frherrer/docsuite/internal/domain"
	"github.com/frherrer/docsuite/internal/lang"
)

// DefaultBlockTags are the code block tags that mark suite data in markup
// documents.
var DefaultBlockTags = []string{"suite"}

// MarkdownParser parses Markdown documents using goldmark. Suite data lives
// in fenced code blocks tagged with one of the configured tags.
type MarkdownParser struct {
	documentParser
	tags  []string
	langs *lang.Languages
}

// NewMarkdownParser creates a new MarkdownParser.
func NewMarkdownParser(conv converter.Converter, tags []string, langs *lang.Languages) *MarkdownParser {
	if len(tags) == 0 {
		tags = DefaultBlockTags
	}
	p := &MarkdownParser{tags: tags, langs: langs}
	p.documentParser = documentParser{decode: p.decode, converter: conv}
	return p
}

// SupportedExtensions returns the file extensions this parser handles.
func (p *MarkdownParser) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

func (p *MarkdownParser) decode(_ string, content []byte) (*domain.Document, error) {
	blocks, headings, err := ExtractMarkdown(content, p.tags)
	if err != nil {
		return nil, domain.NewErrorWithSuggestion(domain.KindParse, "", 0,
			"failed to walk markdown AST",
			"ensure fenced code blocks use triple backticks",
			err)
	}
	return decodeBlocks(blocks, headings, p.langs)
}

// ExtractMarkdown returns the fenced code blocks tagged with one of tags and
// all headings of a Markdown document.
func ExtractMarkdown(content []byte, tags []string) ([]domain.CodeBlock, []domain.Heading, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(content))
	accepted := tagSet(tags)

	var (
		blocks         []domain.CodeBlock
		headings       []domain.Heading
		currentHeading string
	)
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			headingText := extractText(node, content)
			lineNum := 0
			if node.Lines().Len() > 0 {
				lineNum = lineNumber(content, node.Lines().At(0).Start)
			} else if first, ok := node.FirstChild().(*ast.Text); ok {
				lineNum = lineNumber(content, first.Segment.Start)
			}
			headings = append(headings, domain.Heading{
				Level: node.Level,
				Text:  headingText,
				Line:  lineNum,
			})
			currentHeading = headingText

		case *ast.FencedCodeBlock:
			var info string
			if node.Info != nil {
				info = string(node.Info.Segment.Value(content))
			}
			parts := parseInfoString(info)
			tag := parts["_tag"]
			if !accepted[tag] {
				return ast.WalkContinue, nil
			}

			var buf bytes.Buffer
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				buf.Write(line.Value(content))
			}
			startLine := 0
			if lines.Len() > 0 {
				startLine = lineNumber(content, lines.At(0).Start)
			}

			attrs := make(map[string]string)
			for k, v := range parts {
				if k != "_tag" {
					attrs[k] = v
				}
			}
			blocks = append(blocks, domain.CodeBlock{
				Tag:        tag,
				Content:    buf.String(),
				LineNumber: startLine,
				Attributes: attrs,
				Context:    currentHeading,
			})
		}
		return ast.WalkContinue, nil
	})
	return blocks, headings, err
}

// parseInfoString parses a fenced code block info string like:
//
//	suite name="Login" skip=true
//
// Returns map with _tag for the language tag and other key-value pairs.
func parseInfoString(info string) map[string]string {
	result := make(map[string]string)
	info = strings.TrimSpace(info)
	if info == "" {
		return result
	}

	parts := splitInfoString(info)
	if len(parts) == 0 {
		return result
	}
	result["_tag"] = parts[0]

	for _, part := range parts[1:] {
		if idx := strings.Index(part, "="); idx > 0 {
			result[part[:idx]] = strings.Trim(part[idx+1:], "\"'")
		}
	}
	return result
}

// splitInfoString splits the info string respecting quoted values.
func splitInfoString(s string) []string {
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
		case c == ' ' || c == '\t':
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

// extractText gets the text content of a heading node.
func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.String()
}

// lineNumber calculates the 1-based line number for a byte offset.
func lineNumber(content []byte, offset int) int {
	return bytes.Count(content[:offset], []byte("\n")) + 1
}
