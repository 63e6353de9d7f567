// Package engine turns a Document into the ordered, render-ready steps of an
// interactive checklist.
package engine

import (
	"github.com/dgallion1/docsteps/internal/doctree"
	"github.com/dgallion1/docsteps/internal/media"
	"github.com/dgallion1/docsteps/internal/reprint"
	"github.com/dgallion1/docsteps/internal/segment"
)

// Options configures an Engine.
type Options struct {
	Segment    segment.Config
	Vocabulary reprint.Vocabulary
	// AssetBaseURL prefixes /media/ references; empty leaves them relative.
	AssetBaseURL string
}

// DefaultOptions returns the built-in segmentation and cleanup settings with no
// asset host.
func DefaultOptions() Options {
	return Options{
		Segment:    segment.DefaultConfig(),
		Vocabulary: reprint.DefaultVocabulary(),
	}
}

// Engine is immutable after New and safe for concurrent use.
type Engine struct {
	segmenter *segment.Segmenter
	cleaner   *reprint.Cleaner
	rewriter  *media.Rewriter
}

// New builds an Engine. It fails only when the vocabulary does not compile.
func New(opts Options) (*Engine, error) {
	cleaner, err := reprint.NewCleaner(opts.Vocabulary)
	if err != nil {
		return nil, err
	}
	return &Engine{
		segmenter: segment.New(opts.Segment),
		cleaner:   cleaner,
		rewriter:  media.NewRewriter(opts.AssetBaseURL),
	}, nil
}

// Steps segments doc and renders every step that carries a fragment. The result
// always holds at least one step: a structured document without any text gets a
// single step carrying its title.
func (e *Engine) Steps(doc doctree.Document) segment.Result {
	res := e.segmenter.Document(doc)
	if len(res.Steps) == 0 {
		res.Steps = []doctree.Step{{Index: 0, Text: doc.Title}}
		return res
	}
	for i := range res.Steps {
		res.Steps[i].HTML = e.Render(res.Steps[i])
	}
	return res
}

// Render returns the cleaned, rewritten markup of a step, or "" for text-only
// steps and fragments that cannot be rendered.
func (e *Engine) Render(step doctree.Step) string {
	if step.Markup == nil {
		return ""
	}
	out, err := step.Markup.HTML()
	if err != nil {
		return ""
	}
	return e.rewriter.Rewrite(e.cleaner.Clean(out))
}
