package segment

import (
	"strings"

	"github.com/dgallion1/docsteps/internal/doctree"
	"github.com/dgallion1/docsteps/internal/textnorm"
)

// Text splits a flat text document: heading lines first, then a bare numbered
// list, then the whole document as one step. It never returns zero steps.
func (s *Segmenter) Text(text string) Result {
	lines := textnorm.Lines(text)

	if steps := s.textByHeadings(lines); steps != nil {
		return Result{Steps: steps, Strategy: Headings}
	}
	if steps := s.textByNumbers(lines); steps != nil {
		return Result{Steps: steps, Strategy: Numbered}
	}
	return Result{
		Steps:    []doctree.Step{{Text: strings.TrimSpace(text)}},
		Strategy: Whole,
	}
}

func (s *Segmenter) textByHeadings(lines []string) []doctree.Step {
	matches := s.text.Find(lines)
	if !s.text.Accepts(matches) {
		return nil
	}
	var steps []doctree.Step
	for _, sp := range partition(len(lines), matches) {
		steps = append(steps, doctree.Step{
			Text:    joinTexts(lines[sp.start:sp.end]...),
			Heading: sp.kind,
		})
	}
	return indexed(steps)
}

func (s *Segmenter) textByNumbers(lines []string) []doctree.Step {
	matches := numberedMatches(lines)
	if !s.text.Accepts(matches) {
		return nil
	}
	var steps []doctree.Step
	for _, sp := range partition(len(lines), matches) {
		steps = append(steps, doctree.Step{Text: numberedText(lines, sp)})
	}
	return indexed(steps)
}
