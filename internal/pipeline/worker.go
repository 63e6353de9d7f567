package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/docsteps/internal/doctree"
	"github.com/dgallion1/docsteps/internal/engine"
	"github.com/dgallion1/docsteps/internal/parser"
)

// Worker processes a single document job.
type Worker struct {
	engine  *engine.Engine
	parsers parser.Options
	log     *slog.Logger
}

func NewWorker(eng *engine.Engine, parsers parser.Options, log *slog.Logger) *Worker {
	return &Worker{
		engine:  eng,
		parsers: parsers,
		log:     log,
	}
}

// Process parses the uploaded file and segments it into steps.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.parsers)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	job.releaseFileData()
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if job.Title != "" {
		doc.Title = job.Title
	}
	job.SetContentHash(ContentHashHex([]byte(documentText(doc))))

	if err := ctx.Err(); err != nil {
		log.Warn("job cancelled", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Phase 2: Segment
	job.SetStatus(StatusSegmenting, "segmenting")
	out := w.engine.Process(doc)
	job.SetResult(out)
	log.Info("segmented document", "strategy", out.Strategy, "steps", len(out.Steps))

	job.SetStatus(StatusCompleted, "done")
}

// documentText is the text a document's content hash is computed over.
func documentText(doc doctree.Document) string {
	if doc.Kind == doctree.Structured && doc.Markup != nil {
		return doc.Markup.FullText()
	}
	return doc.Text
}
