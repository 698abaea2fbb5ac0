package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_source.go -package=mocks hybridrag/internal/indexer Source,ChunkStore,VectorSink,DocumentEmbedder

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"hybridrag/internal/chunk"
	"hybridrag/internal/contextutil"
)

// embedBatchSize bounds how many chunk texts go to the embedding provider per call.
const embedBatchSize = 64

// Pipeline ingests files from a Source into a ChunkStore.
type Pipeline struct {
	source    Source
	sentences *SentenceChunker
	records   *RecordChunker
	store     ChunkStore
	embedder  DocumentEmbedder
	// sinks must receive every vector; a failed write fails the file.
	sinks []VectorSink
	// caches receive vectors when they can be had; failures are logged.
	caches []VectorSink

	// One run at a time: each run owns its Assigner.
	mu sync.Mutex
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithVectors embeds every chunk at ingestion and hands the vectors to sinks.
// A file whose vectors cannot be computed or written is not stored.
func WithVectors(embedder DocumentEmbedder, sinks ...VectorSink) Option {
	return func(p *Pipeline) {
		p.embedder = embedder
		p.sinks = append(p.sinks, sinks...)
	}
}

// WithVectorCache embeds every chunk at ingestion and writes the vectors to
// caches after the chunks are stored. Embedding or cache failures are logged
// and the chunks are kept.
func WithVectorCache(embedder DocumentEmbedder, caches ...VectorSink) Option {
	return func(p *Pipeline) {
		p.embedder = embedder
		p.caches = append(p.caches, caches...)
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(source Source, sentences *SentenceChunker, records *RecordChunker, store ChunkStore, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:    source,
		sentences: sentences,
		records:   records,
		store:     store,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Report summarizes one ingestion run.
type Report struct {
	RunID  string
	Files  int
	Failed int
	Chunks []chunk.Chunk
}

// Reset clears the chunk store, every vector sink and every cache.
func (p *Pipeline) Reset(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reset(ctx)
}

// Reindex clears everything and ingests dir as one run; no other run can
// start between the two steps.
func (p *Pipeline) Reindex(ctx context.Context, dir string) (*Report, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.reset(ctx); err != nil {
		return nil, err
	}
	return p.indexAll(ctx, dir)
}

func (p *Pipeline) reset(ctx context.Context) error {
	if err := p.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear chunk store: %w", err)
	}
	for _, sink := range append(append([]VectorSink{}, p.sinks...), p.caches...) {
		if err := sink.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear vectors: %w", err)
		}
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "cleared chunk store")
	return nil
}

// IndexAll ingests every file the source finds under dir.
// Errors for individual files are logged but don't stop the run; the report is
// returned even when some files failed.
func (p *Pipeline) IndexAll(ctx context.Context, dir string) (*Report, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.indexAll(ctx, dir)
}

func (p *Pipeline) indexAll(ctx context.Context, dir string) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	ctx = contextutil.WithRunID(ctx, report.RunID)
	logger := contextutil.LoggerFromContext(ctx)

	files, err := p.source.Scan(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	report.Files = len(files)

	logger.InfoContext(ctx, "starting indexing", "dir", dir, "total_files", len(files))

	assigner := NewAssigner()
	for _, path := range files {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		chunks, err := p.indexFile(ctx, assigner, path)
		if err != nil {
			report.Failed++
			logger.ErrorContext(ctx, "failed to index file", "path", path, "error", err)
			continue
		}
		report.Chunks = append(report.Chunks, chunks...)
		logger.DebugContext(ctx, "indexed file", "path", path, "chunks", len(chunks))
	}

	logger.InfoContext(ctx, "indexing completed",
		"total_files", report.Files,
		"errors", report.Failed,
		"chunks", len(report.Chunks),
	)

	if report.Failed > 0 {
		return report, fmt.Errorf("indexing completed with %d errors", report.Failed)
	}
	return report, nil
}

// indexFile loads, chunks, identifies and stores one file. On error the file contributes nothing.
func (p *Pipeline) indexFile(ctx context.Context, assigner *Assigner, path string) ([]chunk.Chunk, error) {
	loaded, err := p.source.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load: %w", err)
	}

	chunks, err := p.Chunk(loaded)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	chunks, err = assigner.AssignAll(chunks)
	if err != nil {
		return nil, err
	}

	var vectors [][]float32
	if p.embedder != nil && len(p.sinks)+len(p.caches) > 0 {
		vectors, err = p.embed(ctx, chunks)
		if err != nil {
			if len(p.sinks) > 0 {
				return nil, err
			}
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "storing chunks without cached vectors",
				"path", path, "error", err)
		}
	}

	// Sinks are written before the chunks so a failed write leaves nothing in the store.
	for _, sink := range p.sinks {
		if err := sink.PutVectors(ctx, chunks, vectors); err != nil {
			return nil, fmt.Errorf("failed to store vectors: %w", err)
		}
	}

	if err := p.store.Add(ctx, chunks); err != nil {
		return nil, fmt.Errorf("failed to store chunks: %w", err)
	}

	if vectors != nil {
		for _, cache := range p.caches {
			if err := cache.PutVectors(ctx, chunks, vectors); err != nil {
				contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to cache vectors",
					"path", path, "error", err)
			}
		}
	}

	return chunks, nil
}

// Chunk turns loaded documents into chunks without ids.
func (p *Pipeline) Chunk(loaded *Loaded) ([]chunk.Chunk, error) {
	if loaded == nil {
		return nil, errors.New("loader returned no content")
	}

	var chunks []chunk.Chunk
	for _, doc := range loaded.Documents {
		docChunks, err := p.sentences.Chunk(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to chunk %s page %d: %w",
				filepath.Base(doc.Metadata.Source), doc.Metadata.Page, err)
		}
		chunks = append(chunks, docChunks...)
	}
	if loaded.Table != nil {
		tableChunks, err := p.records.Chunk(*loaded.Table)
		if err != nil {
			return nil, fmt.Errorf("failed to chunk table %s: %w", loaded.Table.Source, err)
		}
		chunks = append(chunks, tableChunks...)
	}
	return chunks, nil
}

func (p *Pipeline) embed(ctx context.Context, chunks []chunk.Chunk) ([][]float32, error) {
	vectors := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := min(start+embedBatchSize, len(chunks))
		texts := make([]string, 0, end-start)
		for _, c := range chunks[start:end] {
			texts = append(texts, c.Content)
		}
		batch, err := p.embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunks: %w", err)
		}
		if len(batch) != len(texts) {
			return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(batch))
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}
