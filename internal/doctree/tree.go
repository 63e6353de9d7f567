package doctree

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dgallion1/docsteps/internal/textnorm"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NodeID indexes a Block inside its Tree.
type NodeID int32

// NoNode is the parent of a root block.
const NoNode NodeID = -1

// NodeType distinguishes elements from text runs.
type NodeType uint8

const (
	ElementNode NodeType = iota
	TextNode
)

// Block is one node of the arena. Children and Parent are indices into the
// owning Tree, so cloning a span is an index copy with no back-pointers to fix up.
type Block struct {
	Type     NodeType
	Tag      string // lowercase element name, empty for text
	Attrs    []html.Attribute
	Data     string // text content for TextNode
	Parent   NodeID
	Children []NodeID
}

// Attr returns the value of attribute key.
func (b *Block) Attr(key string) (string, bool) {
	for _, a := range b.Attrs {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// Tree is an arena of Blocks. Roots are the top-level content blocks in
// document order.
type Tree struct {
	Title string
	Nodes []Block
	Roots []NodeID
}

// Node returns the block with the given id.
func (t *Tree) Node(id NodeID) *Block {
	return &t.Nodes[id]
}

// Len is the number of blocks in the arena.
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// Tag returns the element name of id, or "" for text.
func (t *Tree) Tag(id NodeID) string {
	return t.Nodes[id].Tag
}

func (t *Tree) add(b Block) NodeID {
	id := NodeID(len(t.Nodes))
	t.Nodes = append(t.Nodes, b)
	if b.Parent != NoNode {
		t.Nodes[b.Parent].Children = append(t.Nodes[b.Parent].Children, id)
	}
	return id
}

// Significant filters ids down to elements and text runs that are not pure whitespace.
func (t *Tree) Significant(ids []NodeID) []NodeID {
	out := make([]NodeID, 0, len(ids))
	for _, id := range ids {
		b := &t.Nodes[id]
		if b.Type == TextNode && strings.TrimSpace(b.Data) == "" {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Text flattens id to its visible text with whitespace collapsed. Block-level
// boundaries become spaces so adjacent paragraphs do not run together.
func (t *Tree) Text(id NodeID) string {
	var sb strings.Builder
	t.writeText(&sb, id)
	return textnorm.Collapse(sb.String())
}

// TextOf flattens several blocks, in order, into one string.
func (t *Tree) TextOf(ids []NodeID) string {
	var sb strings.Builder
	for _, id := range ids {
		t.writeText(&sb, id)
		sb.WriteByte(' ')
	}
	return textnorm.Collapse(sb.String())
}

// FullText flattens the whole tree.
func (t *Tree) FullText() string {
	return t.TextOf(t.Roots)
}

func (t *Tree) writeText(sb *strings.Builder, id NodeID) {
	b := &t.Nodes[id]
	if b.Type == TextNode {
		sb.WriteString(b.Data)
		return
	}
	brk := IsBlock(b.Tag)
	if brk {
		sb.WriteByte(' ')
	}
	for _, c := range b.Children {
		t.writeText(sb, c)
	}
	if brk {
		sb.WriteByte(' ')
	}
}

// Subtree clones the given blocks and their descendants into a new, independent
// Tree whose roots are the clones, in the given order.
func (t *Tree) Subtree(ids []NodeID) *Tree {
	out := &Tree{Title: t.Title}
	for _, id := range ids {
		out.Roots = append(out.Roots, t.cloneInto(out, id, NoNode))
	}
	return out
}

func (t *Tree) cloneInto(dst *Tree, id, parent NodeID) NodeID {
	src := &t.Nodes[id]
	nid := dst.add(Block{
		Type:   src.Type,
		Tag:    src.Tag,
		Attrs:  slices.Clone(src.Attrs),
		Data:   src.Data,
		Parent: parent,
	})
	for _, c := range src.Children {
		t.cloneInto(dst, c, nid)
	}
	return nid
}

// HTML renders the roots back to markup.
func (t *Tree) HTML() (string, error) {
	var sb strings.Builder
	for _, id := range t.Roots {
		if err := html.Render(&sb, t.toNode(id)); err != nil {
			return "", fmt.Errorf("render block %d: %w", id, err)
		}
	}
	return sb.String(), nil
}

func (t *Tree) toNode(id NodeID) *html.Node {
	b := &t.Nodes[id]
	if b.Type == TextNode {
		return &html.Node{Type: html.TextNode, Data: b.Data}
	}
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     b.Tag,
		DataAtom: atom.Lookup([]byte(b.Tag)),
		Attr:     slices.Clone(b.Attrs),
	}
	for _, c := range b.Children {
		n.AppendChild(t.toNode(c))
	}
	return n
}

// ParseHTML parses a document or fragment into a Tree rooted at the body's children.
func ParseHTML(r io.Reader) (*Tree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	title := ""
	if n := findElement(doc, "title"); n != nil {
		title = nodeText(n)
	}
	root := findElement(doc, "body")
	if root == nil {
		root = doc
	}
	var nodes []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		nodes = append(nodes, c)
	}
	return FromNodes(title, nodes), nil
}

// ParseHTMLString is ParseHTML over a string.
func ParseHTMLString(s string) (*Tree, error) {
	return ParseHTML(strings.NewReader(s))
}

// FromNodes converts already-parsed html nodes into a Tree, one root per node.
func FromNodes(title string, nodes []*html.Node) *Tree {
	t := &Tree{Title: title}
	for _, n := range nodes {
		if id, ok := t.convert(n, NoNode); ok {
			t.Roots = append(t.Roots, id)
		}
	}
	return t
}

func (t *Tree) convert(n *html.Node, parent NodeID) (NodeID, bool) {
	switch n.Type {
	case html.TextNode:
		return t.add(Block{Type: TextNode, Data: n.Data, Parent: parent}), true
	case html.ElementNode:
		if skippedTags[n.Data] {
			return NoNode, false
		}
		id := t.add(Block{
			Type:   ElementNode,
			Tag:    strings.ToLower(n.Data),
			Attrs:  slices.Clone(n.Attr),
			Parent: parent,
		})
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			t.convert(c, id)
		}
		return id, true
	}
	return NoNode, false
}

var skippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := findElement(c, tag); f != nil {
			return f
		}
	}
	return nil
}

func nodeText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return textnorm.Collapse(buf.String())
}
