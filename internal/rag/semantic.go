package rag

import (
	"context"
	"errors"
	"fmt"

	"hybridrag/internal/chunk"
	"hybridrag/internal/contextutil"
	"hybridrag/internal/service"
	"hybridrag/internal/vectorstore"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks hybridrag/internal/rag Embedder

// Embedder turns text into vectors. Vectors are expected to be normalized so
// that a dot product is a cosine similarity.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_cache.go -package=mocks hybridrag/internal/rag VectorCache

// VectorCache returns chunk vectors computed at ingestion, keyed by chunk id.
// Missing ids are simply absent from the map.
type VectorCache interface {
	Vectors(ctx context.Context, ids []string) (map[string][]float32, error)
}

// VectorSearcher queries an external vector store for the nearest chunk ids.
type VectorSearcher interface {
	Search(ctx context.Context, query []float32, k int) ([]vectorstore.SearchResult, error)
}

// SemanticIndex ranks a corpus by embedding similarity to a query.
// Failures of the embedding provider or vector store match service.ErrProvider.
type SemanticIndex interface {
	Search(ctx context.Context, corpus []chunk.Chunk, query string) ([]chunk.Scored, error)
}

// ExhaustiveIndex scores every chunk of the corpus against the query vector.
// Without a cache every chunk is re-embedded on each search.
type ExhaustiveIndex struct {
	embedder Embedder
	cache    VectorCache
	k        int
}

// NewExhaustiveIndex creates an index returning at most k results (DefaultK if non-positive).
// cache may be nil.
func NewExhaustiveIndex(embedder Embedder, cache VectorCache, k int) *ExhaustiveIndex {
	if k <= 0 {
		k = DefaultK
	}
	return &ExhaustiveIndex{embedder: embedder, cache: cache, k: k}
}

// Search returns the top k chunks by dot product with a positive score, best first.
// Equal scores keep corpus order.
func (x *ExhaustiveIndex) Search(ctx context.Context, corpus []chunk.Chunk, query string) ([]chunk.Scored, error) {
	if len(corpus) == 0 {
		return nil, nil
	}

	queryVec, err := x.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, asProviderError("embed query", err)
	}

	vectors, err := x.corpusVectors(ctx, corpus)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(corpus))
	for i, v := range vectors {
		scores[i] = dot(queryVec, v)
	}
	return topK(corpus, scores, x.k), nil
}

// corpusVectors returns one vector per chunk, taking what it can from the
// cache and embedding the rest.
func (x *ExhaustiveIndex) corpusVectors(ctx context.Context, corpus []chunk.Chunk) ([][]float32, error) {
	vectors := make([][]float32, len(corpus))

	if x.cache != nil {
		ids := make([]string, len(corpus))
		for i, c := range corpus {
			ids[i] = c.ID
		}
		cached, err := x.cache.Vectors(ctx, ids)
		if err != nil {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "vector cache unavailable, embedding corpus", "error", err)
		}
		for i, c := range corpus {
			vectors[i] = cached[c.ID]
		}
	}

	var missing []int
	var texts []string
	for i, v := range vectors {
		if v == nil {
			missing = append(missing, i)
			texts = append(texts, corpus[i].Content)
		}
	}
	if len(missing) == 0 {
		return vectors, nil
	}

	embedded, err := x.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, asProviderError("embed documents", err)
	}
	if len(embedded) != len(texts) {
		return nil, service.ProviderError("embed documents",
			fmt.Errorf("got %d vectors for %d chunks", len(embedded), len(texts)))
	}
	for j, i := range missing {
		vectors[i] = embedded[j]
	}
	return vectors, nil
}

// StoreIndex delegates nearest-neighbour search to a vector store populated at
// ingestion. Hits are resolved against the corpus; ids the corpus no longer
// holds are dropped.
type StoreIndex struct {
	embedder Embedder
	store    VectorSearcher
	k        int
}

// NewStoreIndex creates an index returning at most k results (DefaultK if non-positive).
func NewStoreIndex(embedder Embedder, store VectorSearcher, k int) *StoreIndex {
	if k <= 0 {
		k = DefaultK
	}
	return &StoreIndex{embedder: embedder, store: store, k: k}
}

// Search implements SemanticIndex.
func (s *StoreIndex) Search(ctx context.Context, corpus []chunk.Chunk, query string) ([]chunk.Scored, error) {
	if len(corpus) == 0 {
		return nil, nil
	}

	queryVec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, asProviderError("embed query", err)
	}

	hits, err := s.store.Search(ctx, queryVec, s.k)
	if err != nil {
		return nil, asProviderError("vector search", err)
	}

	byID := make(map[string]chunk.Chunk, len(corpus))
	for _, c := range corpus {
		byID[c.ID] = c
	}

	found := make([]chunk.Chunk, 0, len(hits))
	scores := make([]float64, 0, len(hits))
	for _, hit := range hits {
		c, ok := byID[hit.ID]
		if !ok {
			contextutil.LoggerFromContext(ctx).DebugContext(ctx, "vector hit not in corpus", "chunk_id", hit.ID)
			continue
		}
		found = append(found, c)
		scores = append(scores, float64(hit.Score))
	}
	return topK(found, scores, s.k), nil
}

func dot(a, b []float32) float64 {
	n := min(len(a), len(b))
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func asProviderError(op string, err error) error {
	if errors.Is(err, service.ErrProvider) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return service.ProviderError(op, err)
}
