package handlers

import (
	"context"
	"net/http"

	"hybridrag/internal/contextutil"
	"hybridrag/internal/indexer"
)

// IndexHandler handles POST /api/v1/index.
type IndexHandler struct {
	indexer Indexer
	dataDir string
}

// NewIndexHandler creates a new IndexHandler that ingests dataDir.
func NewIndexHandler(idx Indexer, dataDir string) *IndexHandler {
	return &IndexHandler{indexer: idx, dataDir: dataDir}
}

// IndexResponse represents the response from the index endpoint.
type IndexResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	RunID   string `json:"run_id,omitempty"`
	Files   int    `json:"files,omitempty"`
	Failed  int    `json:"failed,omitempty"`
	Chunks  int    `json:"chunks,omitempty"`
}

// ServeHTTP triggers ingestion. With reset=true the store is cleared first.
// By default the run continues in the background and 202 is returned;
// wait=true runs it within the request and reports the outcome.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	reset := r.URL.Query().Get("reset") == "true"
	wait := r.URL.Query().Get("wait") == "true"
	logger.InfoContext(ctx, "indexing triggered via API", "reset", reset, "wait", wait)

	if wait {
		report, err := h.run(ctx, reset)
		if report == nil {
			writeServiceError(ctx, w, err)
			return
		}
		resp := IndexResponse{
			Message: "Indexing completed.",
			Status:  "completed",
			RunID:   report.RunID,
			Files:   report.Files,
			Failed:  report.Failed,
			Chunks:  len(report.Chunks),
		}
		if err != nil {
			resp.Message = err.Error()
			resp.Status = "completed_with_errors"
		}
		writeJSON(ctx, w, http.StatusOK, resp)
		return
	}

	// The run outlives the request.
	go func() {
		indexCtx := contextutil.WithLogger(context.Background(), logger)
		if _, err := h.run(indexCtx, reset); err != nil {
			logger.ErrorContext(indexCtx, "indexing completed with errors", "error", err)
			return
		}
		logger.InfoContext(indexCtx, "indexing completed successfully")
	}()

	message := "Indexing started. Check server logs for progress."
	if reset {
		message = "Reset and re-indexing started. Check server logs for progress."
	}
	writeJSON(ctx, w, http.StatusAccepted, IndexResponse{
		Message: message,
		Status:  "accepted",
	})
}

func (h *IndexHandler) run(ctx context.Context, reset bool) (*indexer.Report, error) {
	if reset {
		return h.indexer.Reindex(ctx, h.dataDir)
	}
	return h.indexer.IndexAll(ctx, h.dataDir)
}
