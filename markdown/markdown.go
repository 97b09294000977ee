// Package markdown derives page metadata from a Markdown body. It parses but
// never renders.
package markdown

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// Heading is one entry of the page outline.
type Heading struct {
	Level int    `json:"level" yaml:"level"`
	ID    string `json:"id" yaml:"id"`
	Text  string `json:"text" yaml:"text"`
}

// Summary is what a page body contributes to its entry.
type Summary struct {
	// Title is the text of the first level-1 heading.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// Description is the text of the first paragraph.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Headings lists level 2 and 3 headings in document order.
	Headings []Heading `json:"headings,omitempty" yaml:"headings,omitempty"`
}

// Summarize parses body and extracts its title, description and outline.
func Summarize(body string) Summary {
	var s Summary
	if strings.TrimSpace(body) == "" {
		return s
	}

	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	doc := markdown.Parse([]byte(body), p)

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch n := node.(type) {
		case *ast.Heading:
			text := plainText(n)
			switch {
			case n.Level == 1 && s.Title == "":
				s.Title = text
			case n.Level == 2 || n.Level == 3:
				s.Headings = append(s.Headings, Heading{Level: n.Level, ID: n.HeadingID, Text: text})
			}
			return ast.SkipChildren
		case *ast.Paragraph:
			if s.Description == "" {
				s.Description = plainText(n)
			}
			return ast.SkipChildren
		}
		return ast.GoToNext
	})
	return s
}

// plainText concatenates the literal text below node, collapsing whitespace.
func plainText(node ast.Node) string {
	var b strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch n.(type) {
		case *ast.Softbreak, *ast.Hardbreak:
			b.WriteByte(' ')
		case *ast.Text, *ast.Code:
			if leaf := n.AsLeaf(); leaf != nil {
				b.Write(leaf.Literal)
			}
		}
		return ast.GoToNext
	})
	return strings.Join(strings.Fields(b.String()), " ")
}
