// Package handlers implements the HTTP endpoints of the retrieval API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"hybridrag/internal/chunk"
	"hybridrag/internal/contextutil"
	"hybridrag/internal/indexer"
	"hybridrag/internal/rag"
	"hybridrag/internal/service"
	"hybridrag/internal/storage"
)

// Searcher runs hybrid retrieval.
type Searcher interface {
	Search(ctx context.Context, query string) (*rag.SearchResults, error)
}

// Asker answers questions from retrieved context.
type Asker interface {
	Ask(ctx context.Context, req rag.AskRequest) (*rag.Answer, error)
}

// Indexer rebuilds the chunk store from the data directory.
type Indexer interface {
	IndexAll(ctx context.Context, dir string) (*indexer.Report, error)
	// Reindex clears the store and ingests dir without letting another run in between.
	Reindex(ctx context.Context, dir string) (*indexer.Report, error)
}

// Catalog describes what is currently indexed.
type Catalog interface {
	Count(ctx context.Context) (int, error)
	Sources(ctx context.Context) ([]storage.SourceRecord, error)
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ScoredChunk is a ranked chunk as returned over HTTP.
type ScoredChunk struct {
	ID       string         `json:"id"`
	Kind     chunk.Kind     `json:"kind"`
	Source   string         `json:"source"`
	Content  string         `json:"content"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata"`
}

func toScored(in []chunk.Scored) []ScoredChunk {
	out := make([]ScoredChunk, len(in))
	for i, s := range in {
		out[i] = ScoredChunk{
			ID:       s.Chunk.ID,
			Kind:     s.Chunk.Kind(),
			Source:   s.Chunk.Metadata.SourceName(),
			Content:  s.Chunk.Content,
			Score:    s.Score,
			Metadata: s.Chunk.Metadata.Flatten(),
		}
	}
	return out
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, service.ErrProvider):
		return http.StatusBadGateway, "External service error"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	status, message := statusFor(err)
	logger := contextutil.LoggerFromContext(ctx)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "request failed", "status", status, "error", err)
	} else {
		logger.WarnContext(ctx, "request rejected", "status", status, "error", err)
	}
	writeError(w, status, message)
}
