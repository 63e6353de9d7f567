// Package segment reconstructs the ordered steps of a document whose step and
// section boundaries were never marked up explicitly.
package segment

import (
	"strings"

	"github.com/dgallion1/docsteps/internal/doctree"
	"github.com/dgallion1/docsteps/internal/heading"
)

// Strategy names the rule that produced a segmentation.
type Strategy string

const (
	OrderedList Strategy = "ordered_list"
	Headings    Strategy = "headings"
	Numbered    Strategy = "numbered"
	Whole       Strategy = "whole"
	// Empty means a structured document had no text at all; the caller must
	// supply a placeholder step.
	Empty Strategy = "empty"
)

// Result is an ordered step sequence and the strategy that built it.
type Result struct {
	Steps    []doctree.Step
	Strategy Strategy
}

// Config controls heading detection.
type Config struct {
	Mode heading.Mode
	// MinHeadings gates the heading and numbered strategies of both segmenters:
	// a convention seen fewer times than this is treated as noise.
	MinHeadings int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Mode:        heading.Combined,
		MinHeadings: 2,
	}
}

// Segmenter is stateless after construction and safe for concurrent use.
type Segmenter struct {
	text   heading.Detector
	markup heading.Detector
}

// New builds a Segmenter from cfg.
func New(cfg Config) *Segmenter {
	if cfg.MinHeadings <= 0 {
		cfg.MinHeadings = 2
	}
	return &Segmenter{
		text:   heading.NewDetector(cfg.Mode, cfg.MinHeadings, heading.TextFamilies),
		markup: heading.NewDetector(cfg.Mode, cfg.MinHeadings, heading.MarkupFamilies),
	}
}

// Document dispatches on the document's representation.
func (s *Segmenter) Document(doc doctree.Document) Result {
	if doc.Kind == doctree.Structured && doc.Markup != nil {
		return s.Markup(doc.Markup)
	}
	return s.Text(doc.Text)
}

// span is a half-open range of lines or blocks belonging to one step.
type span struct {
	start, end int
	kind       heading.Kind
	opened     bool // the first element of the span is a boundary
}

// partition cuts n items at each match. Items before the first match form a
// leading span so that nothing is dropped.
func partition(n int, matches []heading.Match) []span {
	if len(matches) == 0 {
		return nil
	}
	var spans []span
	if first := matches[0].Index; first > 0 {
		spans = append(spans, span{start: 0, end: first})
	}
	for i, m := range matches {
		end := n
		if i+1 < len(matches) {
			end = matches[i+1].Index
		}
		spans = append(spans, span{start: m.Index, end: end, kind: m.Kind, opened: true})
	}
	return spans
}

// numberedMatches marks every text that starts with a bare list number.
func numberedMatches(texts []string) []heading.Match {
	var out []heading.Match
	for i, t := range texts {
		if heading.IsNumbered(t) {
			out = append(out, heading.Match{Index: i, Kind: heading.None})
		}
	}
	return out
}

// joinTexts joins the non-empty texts of a span with single spaces.
func joinTexts(texts ...string) string {
	parts := make([]string, 0, len(texts))
	for _, t := range texts {
		if t = strings.TrimSpace(t); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// numberedText joins a span, removing the list number from its opening item.
func numberedText(texts []string, sp span) string {
	part := append([]string(nil), texts[sp.start:sp.end]...)
	if sp.opened {
		part[0] = heading.StripNumber(part[0])
	}
	return joinTexts(part...)
}

func indexed(steps []doctree.Step) []doctree.Step {
	for i := range steps {
		steps[i].Index = i
	}
	return steps
}
