package parser

import (
	"fmt"
	"io"

	"github.com/dgallion1/docsteps/internal/doctree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLParser handles HTML files.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (doctree.Document, error) {
	tree, err := doctree.ParseHTML(r)
	if err != nil {
		return doctree.Document{}, err
	}
	if tree.Title == "" {
		tree.Title = titleFromFilename(filename)
	}
	return doctree.NewStructured(tree.Title, tree), nil
}

// element builds an element node for parsers that synthesize markup.
func element(tag string, children ...*html.Node) *html.Node {
	a := atom.Lookup([]byte(tag))
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: a}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// headingTag maps a 1-6 outline level to h1-h6.
func headingTag(level int) string {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return fmt.Sprintf("h%d", level)
}
