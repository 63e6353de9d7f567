package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dgallion1/docsteps/internal/doctree"
	"github.com/dgallion1/docsteps/internal/parser"
)

// segmentRequest carries one document inline. At most one of Text, HTML and
// Markdown may be set; none means an empty plain-text document.
type segmentRequest struct {
	Title    string `json:"title"`
	Text     string `json:"text"`
	HTML     string `json:"html"`
	Markdown string `json:"markdown"`
}

func (req segmentRequest) document() (doctree.Document, error) {
	set := 0
	for _, v := range []string{req.Text, req.HTML, req.Markdown} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return doctree.Document{}, errors.New("only one of text, html and markdown may be set")
	}

	var (
		doc doctree.Document
		err error
	)
	switch {
	case req.HTML != "":
		doc, err = (&parser.HTMLParser{}).Parse(strings.NewReader(req.HTML), "")
	case req.Markdown != "":
		doc, err = parser.NewMarkdownParser().Parse(strings.NewReader(req.Markdown), "")
	default:
		doc = doctree.NewPlainText("", req.Text)
	}
	if err != nil {
		return doctree.Document{}, err
	}
	if req.Title != "" {
		doc.Title = req.Title
	}
	return doc, nil
}

func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req segmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := req.document()
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	out := s.engine.Process(doc)
	s.log.Debug("segmented document", "kind", doc.Kind, "strategy", out.Strategy, "steps", len(out.Steps))
	writeJSON(w, http.StatusOK, out)
}
