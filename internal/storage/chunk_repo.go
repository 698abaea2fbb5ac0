package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chunk_store.go -package=mocks hybridrag/internal/storage ChunkStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"hybridrag/internal/chunk"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// ChunkStore defines the interface for chunk storage operations.
type ChunkStore interface {
	// Add inserts chunks, replacing any stored chunk with the same id.
	Add(ctx context.Context, chunks []chunk.Chunk) error
	// GetAll returns every chunk in insertion order.
	GetAll(ctx context.Context) ([]chunk.Chunk, error)
	// GetByID gets a chunk by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (chunk.Chunk, error)
	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)
	// Sources lists the ingested sources with their chunk counts.
	Sources(ctx context.Context) ([]SourceRecord, error)
	// Clear removes every chunk, source and vector.
	Clear(ctx context.Context) error
}

// ChunkRepo provides methods for chunk operations.
// It implements the ChunkStore interface.
type ChunkRepo struct {
	db *sql.DB
}

// NewChunkRepo creates a new ChunkRepo.
func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

// Add upserts chunks in one transaction and refreshes the per-source counts.
// Chunks must carry ids.
func (r *ChunkRepo) Add(ctx context.Context, chunks []chunk.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, source, kind, content, metadata) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source = excluded.source,
			kind = excluded.kind,
			content = excluded.content,
			metadata = excluded.metadata,
			indexed_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("failed to prepare chunk insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	kinds := make(map[string]chunk.Kind)
	var order []string
	for _, c := range chunks {
		if c.ID == "" {
			return fmt.Errorf("chunk from %s has no id", c.Metadata.SourceName())
		}
		meta, err := json.Marshal(chunk.Record(c.Metadata))
		if err != nil {
			return fmt.Errorf("failed to encode metadata for %s: %w", c.ID, err)
		}
		source := c.Metadata.SourceName()
		if _, err := stmt.ExecContext(ctx, c.ID, source, string(c.Kind()), c.Content, string(meta)); err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", c.ID, err)
		}
		if _, ok := kinds[source]; !ok {
			order = append(order, source)
			kinds[source] = c.Kind()
		}
	}

	for _, source := range order {
		if err := refreshSource(ctx, tx, source, kinds[source]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chunks: %w", err)
	}
	return nil
}

func refreshSource(ctx context.Context, tx *sql.Tx, source string, kind chunk.Kind) error {
	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks WHERE source = ?", source).Scan(&count); err != nil {
		return fmt.Errorf("failed to count chunks for %s: %w", source, err)
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO sources (name, kind, chunk_count) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			kind = excluded.kind,
			chunk_count = excluded.chunk_count,
			indexed_at = CURRENT_TIMESTAMP`,
		source, string(kind), count,
	)
	if err != nil {
		return fmt.Errorf("failed to update source %s: %w", source, err)
	}
	return nil
}

// GetAll returns every chunk ordered by first insertion.
// Returns an empty slice if the store is empty (not an error).
func (r *ChunkRepo) GetAll(ctx context.Context) ([]chunk.Chunk, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, content, metadata FROM chunks ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	chunks := []chunk.Chunk{}
	for rows.Next() {
		var id, content, meta string
		if err := rows.Scan(&id, &content, &meta); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		c, err := decodeChunk(id, content, meta)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return chunks, nil
}

// GetByID gets a chunk by its ID. Returns ErrNotFound if not found.
func (r *ChunkRepo) GetByID(ctx context.Context, id string) (chunk.Chunk, error) {
	var content, meta string
	err := r.db.QueryRowContext(ctx,
		"SELECT content, metadata FROM chunks WHERE id = ?",
		id,
	).Scan(&content, &meta)

	if err == sql.ErrNoRows {
		return chunk.Chunk{}, ErrNotFound
	}
	if err != nil {
		return chunk.Chunk{}, fmt.Errorf("failed to query chunk: %w", err)
	}

	return decodeChunk(id, content, meta)
}

// Count returns the number of stored chunks.
func (r *ChunkRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return n, nil
}

// Sources lists ingested sources by name.
func (r *ChunkRepo) Sources(ctx context.Context) ([]SourceRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT name, kind, chunk_count, indexed_at FROM sources ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var sources []SourceRecord
	for rows.Next() {
		var rec SourceRecord
		var kind string
		// The driver decodes DATETIME columns into time.Time.
		if err := rows.Scan(&rec.Name, &kind, &rec.Chunks, &rec.IndexedAt); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		rec.Kind = chunk.Kind(kind)
		sources = append(sources, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sources, nil
}

// Clear removes every chunk and source. Cached vectors go with their chunks.
func (r *ChunkRepo) Clear(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range []string{"DELETE FROM chunk_vectors", "DELETE FROM chunks", "DELETE FROM sources"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear store: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}
	return nil
}

func decodeChunk(id, content, meta string) (chunk.Chunk, error) {
	var flat map[string]any
	if err := json.Unmarshal([]byte(meta), &flat); err != nil {
		return chunk.Chunk{}, fmt.Errorf("failed to decode metadata for %s: %w", id, err)
	}
	c, err := chunk.FromFlat(id, content, flat)
	if err != nil {
		return chunk.Chunk{}, fmt.Errorf("invalid stored chunk %s: %w", id, err)
	}
	return c, nil
}
