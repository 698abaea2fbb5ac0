// Package app builds the ingestion pipeline and retrieval engine from configuration.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"hybridrag/internal/config"
	"hybridrag/internal/contextutil"
	"hybridrag/internal/handlers"
	"hybridrag/internal/indexer"
	"hybridrag/internal/llm"
	"hybridrag/internal/loader"
	"hybridrag/internal/rag"
	"hybridrag/internal/storage"
	"hybridrag/internal/vectorstore"
)

// App holds the wired components shared by the API server and the CLI.
type App struct {
	Config   *config.Config
	DB       *sql.DB
	Chunks   *storage.ChunkRepo
	Splitter indexer.SentenceSplitter
	Pipeline *indexer.Pipeline
	Engine   *rag.Engine
	// VectorStore is nil unless an external vector store backend is configured.
	VectorStore handlers.CollectionChecker

	closers []io.Closer
}

// New opens the database and wires every component for cfg.SemanticBackend.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := contextutil.LoggerFromContext(ctx)

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a := &App{Config: cfg, DB: db, closers: []io.Closer{db}}

	if err := storage.Migrate(db); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.InfoContext(ctx, "database initialized", "path", cfg.DBPath)

	splitter, err := indexer.NewPunktSplitter()
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to load sentence splitter: %w", err)
	}
	a.Splitter = splitter
	a.Chunks = storage.NewChunkRepo(db)

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingVectorSize)

	var (
		semantic rag.SemanticIndex
		opts     []indexer.Option
	)
	switch cfg.SemanticBackend {
	case config.BackendCache:
		vectors := storage.NewVectorRepo(db, cfg.EmbeddingModelName)
		opts = append(opts, indexer.WithVectorCache(embedder, vectors))
		semantic = rag.NewExhaustiveIndex(embedder, vectors, cfg.TopK)
	case config.BackendQdrant:
		store, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
		}
		a.closers = append(a.closers, store)
		a.VectorStore = store
		sink := vectorstore.NewSink(store, cfg.QdrantCollection, cfg.EmbeddingVectorSize)
		opts = append(opts, indexer.WithVectors(embedder, sink))
		semantic = rag.NewStoreIndex(embedder, sink, cfg.TopK)
	case config.BackendChromem:
		store, err := vectorstore.NewChromemStore(cfg.ChromemPath)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to open chromem store: %w", err)
		}
		sink := vectorstore.NewSink(store, cfg.ChromemCollection, cfg.EmbeddingVectorSize)
		opts = append(opts, indexer.WithVectors(embedder, sink))
		semantic = rag.NewStoreIndex(embedder, sink, cfg.TopK)
	default:
		semantic = rag.NewExhaustiveIndex(embedder, nil, cfg.TopK)
	}
	logger.InfoContext(ctx, "semantic backend configured", "backend", cfg.SemanticBackend)

	a.Pipeline = indexer.NewPipeline(
		loader.New(),
		indexer.NewSentenceChunker(splitter, cfg.ChunkMinLen, cfg.ChunkMaxLen),
		indexer.NewRecordChunker(cfg.RowWindow),
		a.Chunks,
		opts...,
	)

	generator := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
	a.Engine = rag.NewEngine(a.Chunks, rag.NewLexicalIndex(cfg.TopK), semantic, generator)

	return a, nil
}

// Close releases the database and any vector store connection.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
