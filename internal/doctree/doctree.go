// Package doctree holds the engine's data model: the Document a caller hands in,
// the block arena a structured document is parsed into, and the Steps that
// segmentation produces.
package doctree

import "github.com/dgallion1/docsteps/internal/heading"

// Kind tells which representation a Document carries.
type Kind int

const (
	PlainText Kind = iota
	Structured
)

func (k Kind) String() string {
	if k == Structured {
		return "structured"
	}
	return "plain_text"
}

// Document is an imported procedure document. Exactly one of Text and Markup is
// meaningful, as selected by Kind.
type Document struct {
	Title  string
	Kind   Kind
	Text   string
	Markup *Tree
}

// NewPlainText wraps flat text.
func NewPlainText(title, text string) Document {
	return Document{Title: title, Kind: PlainText, Text: text}
}

// NewStructured wraps a parsed block tree.
func NewStructured(title string, tree *Tree) Document {
	if tree == nil {
		tree = &Tree{}
	}
	if title == "" {
		title = tree.Title
	}
	return Document{Title: title, Kind: Structured, Markup: tree}
}

// Step is one navigable unit of a segmented document. Index is 0-based; the
// user-facing step number is Index+1.
type Step struct {
	Index int    `json:"index" yaml:"index"`
	Text  string `json:"text" yaml:"text"`
	// Heading is the convention that opened the step; None for leading or fallback steps.
	Heading heading.Kind `json:"heading" yaml:"heading"`
	// Markup is the cloned fragment, nil for text-only steps.
	Markup *Tree `json:"-" yaml:"-"`
	// HTML is the cleaned, rewritten rendering of Markup.
	HTML string `json:"html,omitempty" yaml:"html,omitempty"`
}

// Number is the 1-based position shown to users.
func (s Step) Number() int {
	return s.Index + 1
}
