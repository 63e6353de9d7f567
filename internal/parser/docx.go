package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/docsteps/internal/doctree"
	"github.com/fumiama/go-docx"
	"golang.org/x/net/html"
)

// DOCXParser handles .docx files. Heading styles become h1-h6, other
// paragraphs become p, and tables keep their rows and cells.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (doctree.Document, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "docsteps-docx-*.docx")
	if err != nil {
		return doctree.Document{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return doctree.Document{}, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return doctree.Document{}, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return doctree.Document{}, fmt.Errorf("parse docx: %w", err)
	}

	var nodes []*html.Node
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			if n := docxParagraphNode(it); n != nil {
				nodes = append(nodes, n)
			}
		case *docx.Table:
			nodes = append(nodes, docxTableNode(it))
		}
	}

	title := titleFromFilename(filename)
	return doctree.NewStructured(title, doctree.FromNodes(title, nodes)), nil
}

func docxParagraphNode(para *docx.Paragraph) *html.Node {
	text := docxParagraphText(para)
	if text == "" {
		return nil
	}
	if level := docxHeadingLevel(para); level > 0 {
		return element(headingTag(level), textNode(text))
	}
	return element("p", textNode(text))
}

func docxTableNode(tbl *docx.Table) *html.Node {
	body := element("tbody")
	for _, row := range tbl.TableRows {
		tr := element("tr")
		for _, cell := range row.TableCells {
			var parts []string
			for _, para := range cell.Paragraphs {
				if t := docxParagraphText(para); t != "" {
					parts = append(parts, t)
				}
			}
			tr.AppendChild(element("td", textNode(strings.Join(parts, " "))))
		}
		body.AppendChild(tr)
	}
	return element("table", body)
}

// docxHeadingLevel reads "Heading2" or "heading 2" style names; Title counts as level 1.
func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if style == "title" {
		return 1
	}
	rest, ok := strings.CutPrefix(style, "heading")
	if !ok || len(rest) != 1 || rest[0] < '1' || rest[0] > '6' {
		return 0
	}
	return int(rest[0] - '0')
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
