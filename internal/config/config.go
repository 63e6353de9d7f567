package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/docsteps/internal/engine"
	"github.com/dgallion1/docsteps/internal/heading"
	"github.com/dgallion1/docsteps/internal/reprint"
	"github.com/dgallion1/docsteps/internal/segment"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Engine
	AssetBaseURL   string
	VocabularyFile string
	HeadingMode    string
	MinHeadings    int

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("DOCSTEPS_API_KEY"),

		AssetBaseURL:   os.Getenv("ASSET_BASE_URL"),
		VocabularyFile: os.Getenv("VOCABULARY_FILE"),
		HeadingMode:    envOr("HEADING_MODE", "combined"),
		MinHeadings:    envInt("MIN_HEADINGS", 2),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MinHeadings <= 0 {
		cfg.MinHeadings = 2
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("DOCSTEPS_API_KEY is required")
	}
	if _, err := heading.ParseMode(c.HeadingMode); err != nil {
		return fmt.Errorf("HEADING_MODE: %w", err)
	}
	if c.AssetBaseURL != "" {
		u, err := url.Parse(c.AssetBaseURL)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return fmt.Errorf("ASSET_BASE_URL must be an absolute URL, got %q", c.AssetBaseURL)
		}
	}
	if c.VocabularyFile != "" {
		if _, err := reprint.LoadVocabulary(c.VocabularyFile); err != nil {
			return fmt.Errorf("VOCABULARY_FILE: %w", err)
		}
	}
	return nil
}

// EngineOptions turns the engine settings into engine.Options, reading the
// vocabulary file if one is configured.
func (c Config) EngineOptions() (engine.Options, error) {
	opts := engine.DefaultOptions()
	mode, err := heading.ParseMode(c.HeadingMode)
	if err != nil {
		return opts, err
	}
	opts.Segment = segment.Config{Mode: mode, MinHeadings: c.MinHeadings}
	opts.AssetBaseURL = c.AssetBaseURL
	if c.VocabularyFile != "" {
		v, err := reprint.LoadVocabulary(c.VocabularyFile)
		if err != nil {
			return opts, err
		}
		opts.Vocabulary = v
	}
	return opts, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
