package engine

import (
	"github.com/dgallion1/docsteps/internal/doctree"
	"github.com/dgallion1/docsteps/internal/heading"
	"github.com/dgallion1/docsteps/internal/segment"
)

// Output is the serialized form of a segmented document shared by the API, the
// import jobs and the CLI.
type Output struct {
	Title    string           `json:"title" yaml:"title"`
	Strategy segment.Strategy `json:"strategy" yaml:"strategy"`
	Steps    []StepOutput     `json:"steps" yaml:"steps"`
}

// StepOutput is one step with its user-facing 1-based number.
type StepOutput struct {
	Number  int          `json:"number" yaml:"number"`
	Heading heading.Kind `json:"heading" yaml:"heading"`
	Text    string       `json:"text" yaml:"text"`
	HTML    string       `json:"html,omitempty" yaml:"html,omitempty"`
}

// NewOutput converts a Result for serialization.
func NewOutput(title string, res segment.Result) Output {
	out := Output{
		Title:    title,
		Strategy: res.Strategy,
		Steps:    make([]StepOutput, len(res.Steps)),
	}
	for i, s := range res.Steps {
		out.Steps[i] = StepOutput{
			Number:  s.Number(),
			Heading: s.Heading,
			Text:    s.Text,
			HTML:    s.HTML,
		}
	}
	return out
}

// Process segments doc and converts the result for serialization.
func (e *Engine) Process(doc doctree.Document) Output {
	return NewOutput(doc.Title, e.Steps(doc))
}
