package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/docsteps/internal/doctree"
)

func TestMarkdownParser_BuildsBlocks(t *testing.T) {
	input := `# Title

Intro text.

## Step 1 Prepare

Prepare things.

## Step 2 Run

| Element | Rule |
|---------|------|
| Naming  | ABC  |
`
	doc, err := NewMarkdownParser().Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Kind != doctree.Structured {
		t.Fatalf("expected structured document, got %s", doc.Kind)
	}
	if doc.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", doc.Title)
	}

	tree := doc.Markup
	var tags []string
	for _, id := range tree.Significant(tree.Roots) {
		tags = append(tags, tree.Tag(id))
	}
	want := "h1 p h2 p h2 table"
	if got := strings.Join(tags, " "); got != want {
		t.Errorf("expected top-level blocks %q, got %q", want, got)
	}
	if !strings.Contains(tree.FullText(), "Naming ABC") {
		t.Errorf("expected table text in %q", tree.FullText())
	}
}

func TestMarkdownParser_ZeroValueUsable(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader("1. one\n2. two\n"), "list.markdown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "list" {
		t.Errorf("expected title %q, got %q", "list", doc.Title)
	}
	roots := doc.Markup.Significant(doc.Markup.Roots)
	if len(roots) != 1 || doc.Markup.Tag(roots[0]) != "ol" {
		t.Fatalf("expected a single ordered list, got %d roots", len(roots))
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	doc, err := NewMarkdownParser().Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Markup.FullText(); got != "" {
		t.Errorf("expected no text, got %q", got)
	}
}
