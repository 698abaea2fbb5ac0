package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks hybridrag/internal/vectorstore VectorStore

import "context"

// Point is one chunk embedding with its flat metadata.
type Point struct {
	// ID is the chunk id. Backends that need another id format derive it.
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult is one hit from a vector search.
type SearchResult struct {
	// ID is the chunk id the point was stored under.
	ID    string
	Score float32
	Meta  map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search returns at most k points ordered by descending similarity.
	Search(ctx context.Context, collection string, query []float32, k int) ([]SearchResult, error)

	// Delete removes points by their chunk IDs.
	Delete(ctx context.Context, collection string, ids []string) error

	// DeleteCollection drops the collection and every point in it.
	DeleteCollection(ctx context.Context, collection string) error
}
