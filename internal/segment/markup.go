package segment

import (
	"github.com/dgallion1/docsteps/internal/doctree"
)

const minListItems = 2

// Markup splits a block tree. Strategies are tried in order: a top-level ordered
// list, heading blocks, numbered paragraphs, and finally the whole tree. Unlike
// Text, it returns no steps (Strategy Empty) for a tree without any text.
func (s *Segmenter) Markup(tree *doctree.Tree) Result {
	roots := topLevel(tree)

	if steps := orderedListSteps(tree, roots); len(steps) > 0 {
		return Result{Steps: steps, Strategy: OrderedList}
	}

	units := flattenUnits(tree, roots)
	texts := make([]string, len(units))
	candidates := make([]string, len(units))
	for i, id := range units {
		texts[i] = tree.Text(id)
		if headingEligible(tree, id) {
			candidates[i] = texts[i]
		}
	}

	if steps := s.markupByHeadings(tree, units, texts, candidates); steps != nil {
		return Result{Steps: steps, Strategy: Headings}
	}
	if steps := s.markupByNumbers(texts, candidates); steps != nil {
		return Result{Steps: steps, Strategy: Numbered}
	}

	whole := tree.TextOf(roots)
	if whole == "" {
		return Result{Strategy: Empty}
	}
	return Result{
		Steps:    []doctree.Step{{Text: whole, Markup: tree.Subtree(roots)}},
		Strategy: Whole,
	}
}

// topLevel returns the document's content blocks, looking through a lone
// wrapping container such as the single <div> many exporters emit.
func topLevel(tree *doctree.Tree) []doctree.NodeID {
	roots := tree.Significant(tree.Roots)
	for len(roots) == 1 {
		b := tree.Node(roots[0])
		if b.Type != doctree.ElementNode || tree.Category(roots[0]) != doctree.Container {
			break
		}
		roots = tree.Significant(b.Children)
	}
	return roots
}

// orderedListSteps turns the first top-level <ol> with at least two items into
// one text step per item. Content around the list is folded into the first and
// last steps.
func orderedListSteps(tree *doctree.Tree, roots []doctree.NodeID) []doctree.Step {
	at := -1
	for i, id := range roots {
		if tree.Tag(id) == "ol" && len(tree.ElementChildren(id, "li")) >= minListItems {
			at = i
			break
		}
	}
	if at < 0 {
		return nil
	}

	var items []string
	pending := tree.TextOf(roots[:at])
	for _, c := range tree.Significant(tree.Node(roots[at]).Children) {
		text := tree.Text(c)
		switch {
		case tree.Tag(c) == "li":
			items = append(items, joinTexts(pending, text))
			pending = ""
		case len(items) > 0:
			items[len(items)-1] = joinTexts(items[len(items)-1], text)
		default:
			pending = joinTexts(pending, text)
		}
	}
	if len(items) == 0 {
		return nil
	}
	last := len(items) - 1
	items[last] = joinTexts(items[last], tree.TextOf(roots[at+1:]))

	var steps []doctree.Step
	for _, text := range items {
		if text == "" {
			continue
		}
		steps = append(steps, doctree.Step{Text: text})
	}
	return indexed(steps)
}

// flattenUnits expands containers that hold other blocks so that every unit is
// a leaf-level block (heading, paragraph, list, table or bare container) and no
// two units overlap.
func flattenUnits(tree *doctree.Tree, ids []doctree.NodeID) []doctree.NodeID {
	var out []doctree.NodeID
	for _, id := range ids {
		b := tree.Node(id)
		if b.Type == doctree.ElementNode && tree.Category(id) == doctree.Container && tree.HasBlockChildren(id) {
			out = append(out, flattenUnits(tree, tree.Significant(b.Children))...)
			continue
		}
		out = append(out, id)
	}
	return out
}

// headingEligible: only heading, paragraph, container and list-item blocks (or
// bare text runs) can open a step; a table or list whose text happens to start
// with "1." cannot.
func headingEligible(tree *doctree.Tree, id doctree.NodeID) bool {
	if tree.Node(id).Type == doctree.TextNode {
		return true
	}
	switch tree.Category(id) {
	case doctree.Heading, doctree.Paragraph, doctree.Container, doctree.ListItem:
		return true
	}
	return false
}

func (s *Segmenter) markupByHeadings(tree *doctree.Tree, units []doctree.NodeID, texts, candidates []string) []doctree.Step {
	matches := s.markup.Find(candidates)
	if !s.markup.Accepts(matches) {
		return nil
	}
	var steps []doctree.Step
	for _, sp := range partition(len(units), matches) {
		steps = append(steps, doctree.Step{
			Text:    joinTexts(texts[sp.start:sp.end]...),
			Heading: sp.kind,
			Markup:  tree.Subtree(units[sp.start:sp.end]),
		})
	}
	return indexed(steps)
}

func (s *Segmenter) markupByNumbers(texts, candidates []string) []doctree.Step {
	matches := numberedMatches(candidates)
	if !s.markup.Accepts(matches) {
		return nil
	}
	var steps []doctree.Step
	for _, sp := range partition(len(texts), matches) {
		text := numberedText(texts, sp)
		if text == "" {
			continue
		}
		steps = append(steps, doctree.Step{Text: text})
	}
	return indexed(steps)
}
