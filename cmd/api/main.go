package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"

	"hybridrag/internal/app"
	"hybridrag/internal/config"
	"hybridrag/internal/contextutil"
	"hybridrag/internal/http"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx := contextutil.WithLogger(context.Background(), logger)

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer func() {
		_ = a.Close()
	}()

	deps := &http.Deps{
		Engine:         a.Engine,
		Indexer:        a.Pipeline,
		Catalog:        a.Chunks,
		DataDir:        cfg.DataDir,
		VectorStore:    a.VectorStore,
		CollectionName: cfg.QdrantCollection,
	}
	router := http.NewRouter(deps)

	// An empty store is filled in the background so the server comes up at once.
	count, err := a.Chunks.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count chunks: %v", err)
	}
	if count == 0 {
		go func() {
			slog.Info("Chunk store is empty, indexing data directory", "dir", cfg.DataDir)
			if _, err := a.Pipeline.IndexAll(ctx, cfg.DataDir); err != nil {
				slog.Error("Indexing completed with errors", "error", err)
			} else {
				slog.Info("Indexing completed successfully")
			}
		}()
	}

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
