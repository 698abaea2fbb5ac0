package handlers

import (
	"encoding/json"
	"net/http"

	"hybridrag/internal/contextutil"
	"hybridrag/internal/rag"
)

// AskHandler handles POST /api/v1/ask.
type AskHandler struct {
	asker Asker
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(asker Asker) *AskHandler {
	return &AskHandler{asker: asker}
}

// AskRequest is the question payload. History carries earlier turns of the
// conversation; the server keeps no session state.
type AskRequest struct {
	Question string     `json:"question"`
	History  []rag.Turn `json:"history,omitempty"`
}

// AskResponse is the generated answer with its sources.
type AskResponse struct {
	Answer     string        `json:"answer"`
	Sources    []string      `json:"sources"`
	Candidates []ScoredChunk `json:"candidates"`
	// Degraded is set when the answer was grounded on lexical results only.
	Degraded bool `json:"degraded,omitempty"`
}

// ServeHTTP handles HTTP requests for answers.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	answer, err := h.asker.Ask(ctx, rag.AskRequest{Question: req.Question, History: req.History})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, AskResponse{
		Answer:     answer.Text,
		Sources:    answer.Sources,
		Candidates: toScored(answer.Results.Candidates),
		Degraded:   answer.Degraded,
	})
}
