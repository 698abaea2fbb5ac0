package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hybridrag/internal/chunk"
	"hybridrag/internal/rag"
	"hybridrag/internal/service"
)

func scored(t *testing.T, id, content string, score float64) chunk.Scored {
	t.Helper()
	c, err := chunk.New(content, chunk.TextMetadata{Source: "rules.pdf", Page: 2})
	if err != nil {
		t.Fatalf("chunk.New() error = %v", err)
	}
	return chunk.Scored{Chunk: c.WithID(id), Score: score}
}

func TestSearchHandler(t *testing.T) {
	lexical := scored(t, "rules.pdf:2:0", "Rent is due.", 3.2)
	semantic := scored(t, "rules.pdf:2:1", "Pay the bank.", 0.71)
	results := &rag.SearchResults{
		Lexical:    []chunk.Scored{lexical},
		Semantic:   []chunk.Scored{semantic},
		Candidates: []chunk.Scored{lexical, semantic},
	}

	tests := []struct {
		name        string
		method      string
		body        string
		results     *rag.SearchResults
		err         error
		wantStatus  int
		wantWarning bool
		wantCount   int
	}{
		{
			name:       "success",
			method:     http.MethodPost,
			body:       `{"query":"when is rent due"}`,
			results:    results,
			wantStatus: http.StatusOK,
			wantCount:  2,
		},
		{
			name:   "semantic failure keeps lexical results",
			method: http.MethodPost,
			body:   `{"query":"rent"}`,
			results: &rag.SearchResults{
				Lexical:    []chunk.Scored{lexical},
				Candidates: []chunk.Scored{lexical},
			},
			err:         service.ProviderError("embed query", errors.New("connection refused")),
			wantStatus:  http.StatusOK,
			wantWarning: true,
			wantCount:   1,
		},
		{
			name:       "empty query",
			method:     http.MethodPost,
			body:       `{"query":""}`,
			err:        &service.ValidationError{Field: "query", Message: "cannot be empty"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "store failure",
			method:     http.MethodPost,
			body:       `{"query":"rent"}`,
			err:        errors.New("database is locked"),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "invalid body",
			method:     http.MethodPost,
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrong method",
			method:     http.MethodGet,
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{results: tt.results, err: tt.err}
			handler := NewSearchHandler(engine)

			req := httptest.NewRequest(tt.method, "/api/v1/search", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				var resp ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil || resp.Error == "" {
					t.Errorf("expected error body, got %q", w.Body.String())
				}
				return
			}

			var resp SearchResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(resp.Candidates) != tt.wantCount {
				t.Errorf("candidates = %d, want %d", len(resp.Candidates), tt.wantCount)
			}
			if (resp.Warning != "") != tt.wantWarning {
				t.Errorf("warning = %q, want present=%v", resp.Warning, tt.wantWarning)
			}
			if resp.Candidates[0].ID != "rules.pdf:2:0" || resp.Candidates[0].Source != "rules.pdf" {
				t.Errorf("first candidate = %+v", resp.Candidates[0])
			}
			if resp.Candidates[0].Kind != chunk.KindText {
				t.Errorf("kind = %q, want %q", resp.Candidates[0].Kind, chunk.KindText)
			}
		})
	}
}

func TestSearchHandler_PassesQuery(t *testing.T) {
	engine := &fakeEngine{results: &rag.SearchResults{}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewBufferString(`{"query":"free parking"}`))
	w := httptest.NewRecorder()

	NewSearchHandler(engine).ServeHTTP(w, req)

	if engine.gotQuery != "free parking" {
		t.Errorf("query = %q, want %q", engine.gotQuery, "free parking")
	}
	var resp SearchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Candidates == nil || len(resp.Candidates) != 0 {
		t.Errorf("candidates = %v, want empty list", resp.Candidates)
	}
}
