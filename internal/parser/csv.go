package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dgallion1/docsteps/internal/doctree"
	"golang.org/x/net/html"
)

// CSVParser turns a CSV file into a single table; the first record is the header row.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (doctree.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return doctree.Document{}, fmt.Errorf("parse csv: %w", err)
	}

	title := titleFromFilename(filename)
	if len(records) == 0 {
		return doctree.NewStructured(title, doctree.FromNodes(title, nil)), nil
	}

	head := element("tr")
	for _, h := range records[0] {
		head.AppendChild(element("th", textNode(h)))
	}
	body := element("tbody")
	for _, rec := range records[1:] {
		tr := element("tr")
		for _, cell := range rec {
			tr.AppendChild(element("td", textNode(cell)))
		}
		body.AppendChild(tr)
	}
	table := element("table", element("thead", head), body)

	tree := doctree.FromNodes(title, []*html.Node{table})
	return doctree.NewStructured(title, tree), nil
}
