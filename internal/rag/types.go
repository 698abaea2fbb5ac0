package rag

import "hybridrag/internal/chunk"

// SearchResults holds both ranked lists and their concatenation.
type SearchResults struct {
	// Lexical is the BM25 top-K.
	Lexical []chunk.Scored
	// Semantic is the embedding top-K; nil when the semantic step failed.
	Semantic []chunk.Scored
	// Candidates is Lexical followed by Semantic.
	Candidates []chunk.Scored
}

// AskRequest is a question plus the conversation so far.
type AskRequest struct {
	Question string
	History  []Turn
}

// Answer is a generated reply together with what it was grounded on.
type Answer struct {
	// Text is the model output with chat template markers removed.
	Text string
	// Sources lists the distinct formatted sources of the candidates, sorted.
	Sources []string
	// Results are the retrieval results used as context.
	Results *SearchResults
	// Degraded is set when only lexical retrieval contributed.
	Degraded bool
}
