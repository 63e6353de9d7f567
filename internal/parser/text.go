package parser

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dgallion1/docsteps/internal/doctree"
)

// TextParser handles plain text files. Line structure is left to the segmenter.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (doctree.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return doctree.Document{}, fmt.Errorf("read text: %w", err)
	}
	text := string(data)
	if !utf8.ValidString(text) {
		return doctree.Document{}, fmt.Errorf("read text: %s is not valid UTF-8", filename)
	}
	return doctree.NewPlainText(titleFromFilename(filename), text), nil
}
