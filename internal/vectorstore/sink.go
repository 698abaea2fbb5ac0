package vectorstore

import (
	"context"
	"fmt"
	"sync"

	"hybridrag/internal/chunk"
)

// collectionEnsurer is implemented by stores whose collections must be created
// with a fixed vector size before the first upsert.
type collectionEnsurer interface {
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error
}

// Sink writes chunk vectors into one collection of a VectorStore.
type Sink struct {
	store      VectorStore
	collection string
	vectorSize int

	mu    sync.Mutex
	ready bool
}

// NewSink creates a sink for collection. vectorSize is checked against every vector.
func NewSink(store VectorStore, collection string, vectorSize int) *Sink {
	return &Sink{store: store, collection: collection, vectorSize: vectorSize}
}

// PutVectors upserts one point per chunk. chunks and vectors are parallel.
func (s *Sink) PutVectors(ctx context.Context, chunks []chunk.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(chunks))
	}
	if err := s.ensure(ctx); err != nil {
		return err
	}

	points := make([]Point, 0, len(chunks))
	for i, c := range chunks {
		if s.vectorSize > 0 && len(vectors[i]) != s.vectorSize {
			return fmt.Errorf("vector for %s has %d dimensions, want %d", c.ID, len(vectors[i]), s.vectorSize)
		}
		points = append(points, Point{ID: c.ID, Vec: vectors[i], Meta: c.Metadata.Flatten()})
	}
	return s.store.Upsert(ctx, s.collection, points)
}

// Clear drops the collection; the next PutVectors recreates it.
func (s *Sink) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.DeleteCollection(ctx, s.collection); err != nil {
		return err
	}
	s.ready = false
	return nil
}

// Search queries the sink's collection.
func (s *Sink) Search(ctx context.Context, query []float32, k int) ([]SearchResult, error) {
	return s.store.Search(ctx, s.collection, query, k)
}

func (s *Sink) ensure(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if e, ok := s.store.(collectionEnsurer); ok {
		if err := e.EnsureCollection(ctx, s.collection, s.vectorSize); err != nil {
			return err
		}
	}
	s.ready = true
	return nil
}
