package rag

import "hybridrag/internal/chunk"

// Hybrid returns the lexical candidates followed by the semantic ones.
// Scores keep their own scale, neither list is re-sorted and a chunk found by
// both indexes appears twice.
func Hybrid(lexical, semantic []chunk.Scored) []chunk.Scored {
	out := make([]chunk.Scored, 0, len(lexical)+len(semantic))
	out = append(out, lexical...)
	return append(out, semantic...)
}
