// Command ingest loads top-rated movies from TMDB into the local vector index.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/amaumene/gostreamfinder/internal/config"
	"github.com/amaumene/gostreamfinder/internal/database"
	"github.com/amaumene/gostreamfinder/internal/rag"
	"github.com/amaumene/gostreamfinder/internal/services"
	"github.com/amaumene/gostreamfinder/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New().Fatalf("[Ingest] failed to load configuration: %v", err)
	}

	log := logger.NewWithConfig(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	for _, w := range cfg.Warnings() {
		log.Warnf("[Ingest] %s", w)
	}

	if err := cfg.RequireGemini(); err != nil {
		log.Fatalf("[Ingest] %v", err)
	}

	tmdb, err := services.NewTMDB(cfg.TMDB, nil, nil, log)
	if err != nil {
		log.Fatalf("[Ingest] failed to initialize TMDB client: %v", err)
	}

	gemini, err := rag.NewGemini(cfg.Gemini, nil, nil, log)
	if err != nil {
		log.Fatalf("[Ingest] failed to initialize Gemini client: %v", err)
	}

	db, err := database.NewBolt(cfg.Vector.Path, cfg.Vector.Index)
	if err != nil {
		log.Fatalf("[Ingest] failed to open vector index: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	ingester := rag.NewIngester(tmdb, gemini, db, cfg.Vector.Index, cfg.Catalog.Concurrency, log)
	stats, err := ingester.Run(ctx, cfg.Ingest.Pages)
	stop()

	if closeErr := db.Close(); closeErr != nil {
		log.Errorf("[Ingest] failed to close vector index: %v", closeErr)
	}
	if err != nil {
		log.Errorf("[Ingest] ingestion failed after loading %d movies: %v", stats.Loaded, err)
		os.Exit(1)
	}

	log.Infof("[Ingest] index %q now holds %d documents", cfg.Vector.Index, stats.Total)
}
