package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/philippgille/chromem-go"

	"hybridrag/internal/contextutil"
)

// errNoEmbeddingFunc guards against chromem embedding content itself; every
// point arrives with a precomputed vector.
var errNoEmbeddingFunc = errors.New("chromem collections only accept precomputed embeddings")

func noEmbedding(context.Context, string) ([]float32, error) {
	return nil, errNoEmbeddingFunc
}

// ChromemStore implements VectorStore with an embedded chromem-go database.
// Similarity is cosine; chromem normalizes vectors on insert.
type ChromemStore struct {
	db *chromem.DB

	mu sync.Mutex
}

// NewChromemStore opens a persistent chromem database under path, or an
// in-memory one when path is empty.
func NewChromemStore(path string) (*ChromemStore, error) {
	if path == "" {
		return &ChromemStore{db: chromem.NewDB()}, nil
	}
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open chromem database: %w", err)
	}
	return &ChromemStore{db: db}, nil
}

func (s *ChromemStore) collection(name string) (*chromem.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.db.GetOrCreateCollection(name, nil, noEmbedding)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection %s: %w", name, err)
	}
	return c, nil
}

// Upsert inserts or replaces points. Chromem stores metadata as strings.
func (s *ChromemStore) Upsert(ctx context.Context, collection string, points []Point) error {
	if len(points) == 0 {
		return nil
	}
	c, err := s.collection(collection)
	if err != nil {
		return err
	}

	docs := make([]chromem.Document, 0, len(points))
	for _, p := range points {
		meta := make(map[string]string, len(p.Meta))
		for k, v := range p.Meta {
			meta[k] = fmt.Sprint(v)
		}
		docs = append(docs, chromem.Document{
			ID:        p.ID,
			Metadata:  meta,
			Embedding: p.Vec,
			// chromem requires content or an embedding; keep the id for inspection.
			Content: p.ID,
		})
	}

	if err := c.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "upserted points", "collection", collection, "count", len(points))
	return nil
}

// Search returns at most k points ordered by descending similarity.
func (s *ChromemStore) Search(ctx context.Context, collection string, query []float32, k int) ([]SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}
	c, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	// chromem rejects nResults larger than the collection.
	n := min(k, c.Count())
	if n == 0 {
		return nil, nil
	}

	hits, err := c.QueryEmbedding(ctx, query, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	results := make([]SearchResult, 0, len(hits))
	for _, h := range hits {
		results = append(results, SearchResult{
			ID:    h.ID,
			Score: h.Similarity,
			Meta:  decodeMeta(h.Metadata),
		})
	}
	return results, nil
}

// Delete removes points by their chunk IDs.
func (s *ChromemStore) Delete(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	c, err := s.collection(collection)
	if err != nil {
		return err
	}
	if err := c.Delete(ctx, nil, nil, ids...); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}

// DeleteCollection drops the collection.
func (s *ChromemStore) DeleteCollection(ctx context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.DeleteCollection(collection); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "deleted collection", "collection", collection)
	return nil
}

// decodeMeta restores integers that chromem flattened to strings.
func decodeMeta(meta map[string]string) map[string]any {
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			out[k] = n
			continue
		}
		out[k] = v
	}
	return out
}
