// Package rag retrieves chunks for a query with a lexical and a semantic index
// and generates grounded answers from them.
package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hybridrag/internal/chunk"
	"hybridrag/internal/contextutil"
	"hybridrag/internal/llm"
	"hybridrag/internal/service"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_corpus.go -package=mocks hybridrag/internal/rag Corpus

// Corpus supplies every stored chunk in insertion order.
type Corpus interface {
	GetAll(ctx context.Context) ([]chunk.Chunk, error)
}

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_generator.go -package=mocks hybridrag/internal/rag Generator

// Generator produces a chat completion.
type Generator interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// answerTemperature keeps answers close to the context.
const answerTemperature = 0.4

// Engine runs hybrid retrieval over the full corpus and answers questions from it.
type Engine struct {
	corpus    Corpus
	lexical   *LexicalIndex
	semantic  SemanticIndex
	generator Generator
}

// NewEngine creates an engine. semantic and generator may be nil: without a
// semantic index only lexical results are returned, and without a generator Ask fails.
func NewEngine(corpus Corpus, lexical *LexicalIndex, semantic SemanticIndex, generator Generator) *Engine {
	if lexical == nil {
		lexical = NewLexicalIndex(DefaultK)
	}
	return &Engine{
		corpus:    corpus,
		lexical:   lexical,
		semantic:  semantic,
		generator: generator,
	}
}

// Search ranks the corpus against query. If the semantic step fails the
// lexical results are still returned together with the error, which matches
// service.ErrProvider. An empty corpus or no matches is not an error.
func (e *Engine) Search(ctx context.Context, query string) (*SearchResults, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &service.ValidationError{Field: "query", Message: "cannot be empty"}
	}

	logger := contextutil.LoggerFromContext(ctx)

	corpus, err := e.corpus.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	results := &SearchResults{Lexical: e.lexical.Search(corpus, query)}

	var semanticErr error
	if e.semantic != nil {
		results.Semantic, semanticErr = e.semantic.Search(ctx, corpus, query)
		if semanticErr != nil {
			logger.WarnContext(ctx, "semantic search failed, returning lexical results only", "error", semanticErr)
			results.Semantic = nil
		}
	}
	results.Candidates = Hybrid(results.Lexical, results.Semantic)

	logger.InfoContext(ctx, "search completed",
		"corpus_size", len(corpus),
		"lexical", len(results.Lexical),
		"semantic", len(results.Semantic),
	)
	return results, semanticErr
}

// Ask answers req.Question from the search candidates. A semantic failure
// degrades the context to lexical results; a generation failure is returned.
func (e *Engine) Ask(ctx context.Context, req AskRequest) (*Answer, error) {
	if e.generator == nil {
		return nil, errors.New("no answer generator configured")
	}
	logger := contextutil.LoggerFromContext(ctx)

	results, err := e.Search(ctx, req.Question)
	degraded := false
	if err != nil {
		if results == nil || !errors.Is(err, service.ErrProvider) {
			return nil, err
		}
		degraded = true
	}

	messages := buildMessages(req.Question, results.Candidates, req.History)
	logger.DebugContext(ctx, "sending prompt", "candidates", len(results.Candidates), "history", len(req.History))

	reply, err := e.generator.ChatWithMessages(ctx, messages, llm.ChatParams{Temperature: answerTemperature})
	if err != nil {
		logger.ErrorContext(ctx, "failed to generate answer", "error", err)
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	answer := &Answer{
		Text:     cleanAnswer(reply),
		Sources:  Sources(results.Candidates),
		Results:  results,
		Degraded: degraded,
	}
	logger.InfoContext(ctx, "answer generated", "answer_length", len(answer.Text), "sources", len(answer.Sources))
	return answer, nil
}
