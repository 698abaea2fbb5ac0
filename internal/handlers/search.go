package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"hybridrag/internal/contextutil"
	"hybridrag/internal/service"
)

// SearchHandler handles POST /api/v1/search.
type SearchHandler struct {
	searcher Searcher
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searcher Searcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

// SearchRequest is the search payload.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResponse carries both ranked lists and their concatenation.
type SearchResponse struct {
	Lexical    []ScoredChunk `json:"lexical"`
	Semantic   []ScoredChunk `json:"semantic"`
	Candidates []ScoredChunk `json:"candidates"`
	// Warning is set when semantic retrieval failed and only lexical results are returned.
	Warning string `json:"warning,omitempty"`
}

// ServeHTTP handles HTTP requests for hybrid search.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	results, err := h.searcher.Search(ctx, req.Query)
	if err != nil && (results == nil || !errors.Is(err, service.ErrProvider)) {
		writeServiceError(ctx, w, err)
		return
	}

	resp := SearchResponse{
		Lexical:    toScored(results.Lexical),
		Semantic:   toScored(results.Semantic),
		Candidates: toScored(results.Candidates),
	}
	if err != nil {
		resp.Warning = "semantic search unavailable: " + err.Error()
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}
