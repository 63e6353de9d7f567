package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dgallion1/docsteps/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// MarkdownParser renders Markdown to HTML with goldmark and parses the result,
// so headings, lists and GFM tables reach the segmenter as blocks.
type MarkdownParser struct {
	md goldmark.Markdown
}

// NewMarkdownParser returns a MarkdownParser with GFM extensions.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithXHTML()),
		),
	}
}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (doctree.Document, error) {
	if p.md == nil {
		p.md = NewMarkdownParser().md
	}
	src, err := io.ReadAll(r)
	if err != nil {
		return doctree.Document{}, fmt.Errorf("read markdown: %w", err)
	}

	var buf bytes.Buffer
	if err := p.md.Convert(src, &buf); err != nil {
		return doctree.Document{}, fmt.Errorf("convert markdown: %w", err)
	}
	tree, err := doctree.ParseHTML(&buf)
	if err != nil {
		return doctree.Document{}, err
	}
	tree.Title = titleFromFilename(filename)
	return doctree.NewStructured(tree.Title, tree), nil
}
