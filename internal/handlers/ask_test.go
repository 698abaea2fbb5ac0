package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"hybridrag/internal/chunk"
	"hybridrag/internal/rag"
	"hybridrag/internal/service"
)

func TestAskHandler(t *testing.T) {
	hit := scored(t, "rules.pdf:2:0", "Rent is due.", 3.2)
	answer := &rag.Answer{
		Text:    "Rent is due on landing.",
		Sources: []string{"- rules.pdf (page 2)"},
		Results: &rag.SearchResults{Lexical: []chunk.Scored{hit}, Candidates: []chunk.Scored{hit}},
	}

	tests := []struct {
		name       string
		body       string
		answer     *rag.Answer
		err        error
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"question":"When is rent due?","history":[{"question":"Who starts?","answer":"The youngest."}]}`,
			answer:     answer,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing question",
			body:       `{}`,
			err:        &service.ValidationError{Field: "query", Message: "cannot be empty"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "model unavailable",
			body:       `{"question":"When is rent due?"}`,
			err:        service.ProviderError("chat", errors.New("status 503")),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "invalid body",
			body:       `question`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{answer: tt.answer, err: tt.err}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			NewAskHandler(engine).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp AskResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Answer != answer.Text {
				t.Errorf("answer = %q, want %q", resp.Answer, answer.Text)
			}
			if !reflect.DeepEqual(resp.Sources, answer.Sources) {
				t.Errorf("sources = %v, want %v", resp.Sources, answer.Sources)
			}
			if len(resp.Candidates) != 1 {
				t.Errorf("candidates = %d, want 1", len(resp.Candidates))
			}
			wantHistory := []rag.Turn{{Question: "Who starts?", Answer: "The youngest."}}
			if !reflect.DeepEqual(engine.gotAsk.History, wantHistory) {
				t.Errorf("history = %v, want %v", engine.gotAsk.History, wantHistory)
			}
		})
	}
}

func TestAskHandler_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ask", nil)
	w := httptest.NewRecorder()

	NewAskHandler(&fakeEngine{}).ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}
