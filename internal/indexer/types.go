package indexer

import (
	"context"

	"hybridrag/internal/chunk"
)

// Document is one page or segment of prose handed over by a loader.
type Document struct {
	Content  string
	Metadata chunk.TextMetadata
}

// Sheet is a table of rows. Cells hold nil, string, integer, float or time.Time values.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// Table is a tabular file, optionally partitioned into named sheets.
type Table struct {
	Source string
	Sheets []Sheet
}

// Loaded is what a loader extracts from one file: prose documents, a table, or both.
type Loaded struct {
	Documents []Document
	Table     *Table
}

// Source finds ingestible files and extracts their documents.
// This interface is defined from the indexer's perspective (consumer-first).
type Source interface {
	// Scan lists the files under dir that Load understands.
	Scan(ctx context.Context, dir string) ([]string, error)
	// Load extracts the documents of a single file.
	Load(ctx context.Context, path string) (*Loaded, error)
}

// ChunkStore is where the pipeline writes chunks; re-adding an id must replace it.
type ChunkStore interface {
	Add(ctx context.Context, chunks []chunk.Chunk) error
	Clear(ctx context.Context) error
}

// VectorSink receives per-chunk embeddings computed at ingestion time.
type VectorSink interface {
	PutVectors(ctx context.Context, chunks []chunk.Chunk, vectors [][]float32) error
	Clear(ctx context.Context) error
}

// DocumentEmbedder embeds chunk contents for a VectorSink.
type DocumentEmbedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}
