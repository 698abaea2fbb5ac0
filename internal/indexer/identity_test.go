package indexer

import (
	"testing"

	"hybridrag/internal/chunk"
)

func mustChunk(t *testing.T, content string, meta chunk.Metadata) chunk.Chunk {
	t.Helper()
	c, err := chunk.New(content, meta)
	if err != nil {
		t.Fatalf("chunk.New() error = %v", err)
	}
	return c
}

func TestAssigner_StructuredIDsIgnoreCounter(t *testing.T) {
	meta := chunk.StructuredMetadata{Source: "prices.xlsx", Sheet: "2021", RowStart: 6, RowEnd: 10}
	a := NewAssigner()

	first, err := a.Assign(mustChunk(t, "Value (Price): 1", meta))
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	second, err := a.Assign(mustChunk(t, "Value (Price): 2", meta))
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	if first.ID != "prices.xlsx:2021:6-10" {
		t.Errorf("ID = %q, want %q", first.ID, "prices.xlsx:2021:6-10")
	}
	if first.ID != second.ID {
		t.Errorf("same row window gave different ids %q and %q", first.ID, second.ID)
	}
	if a.Assigned() != 0 {
		t.Errorf("Assigned() = %d, want 0", a.Assigned())
	}
}

func TestAssigner_TextIDsAreUnique(t *testing.T) {
	a := NewAssigner()
	in := []chunk.Chunk{
		mustChunk(t, "First.", chunk.TextMetadata{Source: "rules.pdf", Page: 0}),
		mustChunk(t, "First.", chunk.TextMetadata{Source: "rules.pdf", Page: 0}),
		mustChunk(t, "Other page.", chunk.TextMetadata{Source: "rules.pdf", Page: 3}),
	}

	out, err := a.AssignAll(in)
	if err != nil {
		t.Fatalf("AssignAll() error = %v", err)
	}

	want := []string{"rules.pdf:0:0", "rules.pdf:0:1", "rules.pdf:3:2"}
	for i, c := range out {
		if c.ID != want[i] {
			t.Errorf("out[%d].ID = %q, want %q", i, c.ID, want[i])
		}
		if c.Content != in[i].Content {
			t.Errorf("out[%d].Content changed", i)
		}
	}
	if in[0].ID != "" {
		t.Error("AssignAll() modified its input")
	}

	// A fresh assigner restarts the counter, so a rerun yields the same ids.
	again, err := NewAssigner().AssignAll(in)
	if err != nil {
		t.Fatalf("AssignAll() error = %v", err)
	}
	for i := range again {
		if again[i].ID != out[i].ID {
			t.Errorf("rerun id %q, want %q", again[i].ID, out[i].ID)
		}
	}
}

func TestAssigner_UnknownMetadata(t *testing.T) {
	if _, err := NewAssigner().Assign(chunk.Chunk{Content: "orphan"}); err == nil {
		t.Error("Assign() expected error for chunk without metadata")
	}
}
