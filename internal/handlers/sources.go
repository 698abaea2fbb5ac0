package handlers

import (
	"net/http"

	"hybridrag/internal/storage"
)

// SourcesHandler handles GET /api/v1/sources.
type SourcesHandler struct {
	catalog Catalog
}

// NewSourcesHandler creates a new SourcesHandler.
func NewSourcesHandler(catalog Catalog) *SourcesHandler {
	return &SourcesHandler{catalog: catalog}
}

// SourcesResponse lists indexed sources and the total chunk count.
type SourcesResponse struct {
	Chunks  int                    `json:"chunks"`
	Sources []storage.SourceRecord `json:"sources"`
}

// ServeHTTP lists what is indexed.
func (h *SourcesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count, err := h.catalog.Count(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	sources, err := h.catalog.Sources(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if sources == nil {
		sources = []storage.SourceRecord{}
	}
	writeJSON(ctx, w, http.StatusOK, SourcesResponse{Chunks: count, Sources: sources})
}
