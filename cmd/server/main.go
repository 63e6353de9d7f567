package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docsteps/internal/api"
	"github.com/dgallion1/docsteps/internal/config"
	"github.com/dgallion1/docsteps/internal/engine"
	"github.com/dgallion1/docsteps/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	opts, err := cfg.EngineOptions()
	if err != nil {
		log.Error("invalid engine options", "error", err)
		os.Exit(1)
	}
	eng, err := engine.New(opts)
	if err != nil {
		log.Error("build engine", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, eng, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, eng, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
	}()

	log.Info("starting docsteps",
		"port", cfg.Port,
		"heading_mode", cfg.HeadingMode,
		"min_headings", cfg.MinHeadings,
		"workers", cfg.WorkerCount,
		"asset_base_url", cfg.AssetBaseURL,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
