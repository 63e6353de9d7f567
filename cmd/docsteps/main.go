// Command docsteps segments a document file into checklist steps and prints
// them as YAML or JSON.
package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "docsteps",
		Usage: "split procedure documents into numbered steps",
		Commands: []*cli.Command{
			{
				Name:      "segment",
				Usage:     "segment a .txt, .md, .html, .pdf, .docx or .csv file",
				ArgsUsage: "<file>",
				Flags:     segmentFlags(),
				Action:    segmentAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("docsteps failed", "error", err)
		os.Exit(1)
	}
}

func segmentFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "override the document title"},
		&cli.StringFlag{Name: "asset-base", EnvVars: []string{"ASSET_BASE_URL"}, Usage: "absolute URL prefixed to /media/ references"},
		&cli.StringFlag{Name: "vocabulary", EnvVars: []string{"VOCABULARY_FILE"}, Usage: "YAML vocabulary for reprint cleanup"},
		&cli.StringFlag{Name: "mode", Value: "combined", EnvVars: []string{"HEADING_MODE"}, Usage: "heading family selection: combined or dominant"},
		&cli.IntFlag{Name: "min-headings", Value: 2, EnvVars: []string{"MIN_HEADINGS"}, Usage: "matches a convention needs before it splits"},
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "yaml", Usage: "output format: yaml or json"},
		&cli.BoolFlag{Name: "html", Usage: "include rendered step markup"},
		&cli.BoolFlag{Name: "pdftotext", Value: true, EnvVars: []string{"PDF_FALLBACK_PDFTOTEXT"}, Usage: "fall back to pdftotext for unreadable PDFs"},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging to stderr"},
	}
}
