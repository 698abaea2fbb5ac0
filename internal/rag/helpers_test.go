package rag

import (
	"strconv"
	"testing"

	"hybridrag/internal/chunk"
)

func textChunk(t *testing.T, id, content string) chunk.Chunk {
	t.Helper()
	c, err := chunk.New(content, chunk.TextMetadata{Source: "rules.pdf", Page: 0})
	if err != nil {
		t.Fatalf("chunk.New() error = %v", err)
	}
	return c.WithID(id)
}

func corpusOf(t *testing.T, contents ...string) []chunk.Chunk {
	t.Helper()
	out := make([]chunk.Chunk, len(contents))
	for i, content := range contents {
		out[i] = textChunk(t, idFor(i), content)
	}
	return out
}

func idFor(i int) string {
	return "rules.pdf:0:" + strconv.Itoa(i)
}

func ids(scored []chunk.Scored) []string {
	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.Chunk.ID
	}
	return out
}
