// Package toc builds a table of contents from a generated Markdown
// document: one nested bullet per heading, each linking to the heading's
// anchor.
package toc

import (
	"net/url"
	"os"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
	"github.com/samber/oops"
)

const maxLevel = 6

// Heading is one document heading in source order.
type Heading struct {
	Level int
	Text  string
}

// ExtractHeadings walks the Markdown AST and collects headings in
// order. Fenced code blocks never contribute headings since the parser
// keeps them as code nodes.
func ExtractHeadings(content []byte) []Heading {
	mdParser := parser.NewWithExtensions(parser.CommonExtensions)
	doc := mdParser.Parse(content)

	var headings []Heading

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}

		heading, ok := node.(*ast.Heading)
		if !ok {
			return ast.GoToNext
		}

		text := extractText(heading)
		if text != "" && heading.Level <= maxLevel {
			headings = append(headings, Heading{Level: heading.Level, Text: text})
		}

		return ast.GoToNext
	})

	return headings
}

func extractText(node ast.Node) string {
	var buf strings.Builder

	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if entering {
			if text, ok := n.(*ast.Text); ok {
				buf.Write(text.Literal)
			}
		}

		return ast.GoToNext
	})

	return strings.TrimSpace(buf.String())
}

// Anchor encodes a heading for use as a link fragment: percent-escaped,
// spaces as dashes, lowercased.
func Anchor(text string) string {
	encoded := url.QueryEscape(text)
	encoded = strings.ReplaceAll(encoded, "+", "-")

	return "#" + strings.ToLower(encoded)
}

// Render emits the bullet list. urlPath prefixes every anchor, so links
// can point at the hosted document rather than the local file.
func Render(headings []Heading, urlPath string) string {
	var lines []string

	for _, heading := range headings {
		indent := strings.Repeat("    ", heading.Level-1)
		lines = append(lines, indent+"- ["+heading.Text+"]("+urlPath+Anchor(heading.Text)+")")
	}

	if len(lines) == 0 {
		return ""
	}

	return strings.Join(lines, "\n") + "\n"
}

// BuildFile reads a generated document and returns its table of contents.
func BuildFile(docPath, urlPath string) (string, error) {
	content, err := os.ReadFile(docPath)
	if err != nil {
		return "", oops.
			Code("TOC_FAILED").
			With("path", docPath).
			Hint("Generate the documentation first: doksit api").
			Wrapf(err, "reading generated document")
	}

	return Render(ExtractHeadings(content), urlPath), nil
}
