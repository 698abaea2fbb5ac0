package storage

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"hybridrag/internal/chunk"
)

// VectorRepo caches chunk embeddings per embedding model.
// Vectors are deleted with their chunks.
type VectorRepo struct {
	db    *sql.DB
	model string
}

// NewVectorRepo creates a vector cache keyed by the given embedding model name.
func NewVectorRepo(db *sql.DB, model string) *VectorRepo {
	return &VectorRepo{db: db, model: model}
}

// PutVectors stores one vector per chunk. chunks and vectors are parallel.
func (r *VectorRepo) PutVectors(ctx context.Context, chunks []chunk.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(chunks))
	}
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
		INSERT INTO chunk_vectors (chunk_id, model, dim, vector) VALUES (?, ?, ?, ?)
		ON CONFLICT(chunk_id, model) DO UPDATE SET dim = excluded.dim, vector = excluded.vector`)
	if err != nil {
		return fmt.Errorf("failed to prepare vector insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for i, c := range chunks {
		if _, err := stmt.ExecContext(ctx, c.ID, r.model, len(vectors[i]), encodeVector(vectors[i])); err != nil {
			return fmt.Errorf("failed to insert vector for %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vectors: %w", err)
	}
	return nil
}

// Vectors returns the cached vectors for ids. Ids without a cached vector are absent from the map.
func (r *VectorRepo) Vectors(ctx context.Context, ids []string) (map[string][]float32, error) {
	out := make(map[string][]float32, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	// Stay well below SQLite's host parameter limit.
	const batch = 500
	for start := 0; start < len(ids); start += batch {
		end := min(start+batch, len(ids))
		if err := r.loadBatch(ctx, ids[start:end], out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *VectorRepo) loadBatch(ctx context.Context, ids []string, out map[string][]float32) error {
	args := make([]any, 0, len(ids)+1)
	args = append(args, r.model)
	for _, id := range ids {
		args = append(args, id)
	}
	query := "SELECT chunk_id, vector FROM chunk_vectors WHERE model = ? AND chunk_id IN (?" +
		strings.Repeat(", ?", len(ids)-1) + ")"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query vectors: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var id string
		var blob []byte
		if err := rows.Scan(&id, &blob); err != nil {
			return fmt.Errorf("failed to scan vector: %w", err)
		}
		vec, err := decodeVector(blob)
		if err != nil {
			return fmt.Errorf("vector for %s: %w", id, err)
		}
		out[id] = vec
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}
	return nil
}

// Clear drops the cached vectors for this model.
func (r *VectorRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM chunk_vectors WHERE model = ?", r.model); err != nil {
		return fmt.Errorf("failed to clear vectors: %w", err)
	}
	return nil
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(buf []byte) ([]float32, error) {
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("blob length %d is not a multiple of 4", len(buf))
	}
	v := make([]float32, len(buf)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return v, nil
}
