package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dgallion1/docsteps/internal/config"
	"github.com/dgallion1/docsteps/internal/engine"
	"github.com/dgallion1/docsteps/internal/parser"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func segmentAction(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if c.NArg() != 1 {
		return errors.New("expected exactly one file argument")
	}
	path := c.Args().First()

	cfg := config.Config{
		AssetBaseURL:   c.String("asset-base"),
		VocabularyFile: c.String("vocabulary"),
		HeadingMode:    c.String("mode"),
		MinHeadings:    c.Int("min-headings"),
	}
	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	eng, err := engine.New(opts)
	if err != nil {
		return err
	}

	p, err := parser.ForFile(path, parser.Options{FallbackPdftotext: c.Bool("pdftotext")})
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	doc, err := p.Parse(f, path)
	if err != nil {
		return err
	}
	if t := c.String("title"); t != "" {
		doc.Title = t
	}
	logger.Debug("parsed document", "path", path, "kind", doc.Kind, "title", doc.Title)

	out := eng.Process(doc)
	logger.Info("segmented document", "path", path, "strategy", out.Strategy, "steps", len(out.Steps))

	if !c.Bool("html") {
		for i := range out.Steps {
			out.Steps[i].HTML = ""
		}
	}
	return writeOutput(c.App.Writer, c.String("format"), out)
}

func writeOutput(w io.Writer, format string, out engine.Output) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
