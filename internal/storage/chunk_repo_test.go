package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"hybridrag/internal/chunk"
)

func textChunk(t *testing.T, id, content string, page int) chunk.Chunk {
	t.Helper()
	c, err := chunk.New(content, chunk.TextMetadata{Source: "rules.pdf", Page: page})
	if err != nil {
		t.Fatalf("chunk.New() error = %v", err)
	}
	return c.WithID(id)
}

func rowChunk(t *testing.T, start, end int) chunk.Chunk {
	t.Helper()
	meta := chunk.StructuredMetadata{
		Source:       "prices.xlsx",
		Sheet:        "2021",
		RowStart:     start,
		RowEnd:       end,
		ValueColumns: []string{"Price", "Rent"},
		DateColumns:  []string{"Year"},
		Description:  "Hornsgatan, Ringvägen",
	}
	c, err := chunk.New("Value (Price): 1,200", meta)
	if err != nil {
		t.Fatalf("chunk.New() error = %v", err)
	}
	return c.WithID("prices.xlsx:2021:" + string(rune('0'+start)) + "-" + string(rune('0'+end)))
}

func TestChunkRepo_AddAndGetAll(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepo(newTestDB(t))

	in := []chunk.Chunk{
		textChunk(t, "rules.pdf:0:0", "Pass go and collect.", 0),
		rowChunk(t, 1, 5),
		textChunk(t, "rules.pdf:1:1", "Jail costs fifty.", 1),
	}
	if err := repo.Add(ctx, in); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Errorf("GetAll() = %+v, want %+v", got, in)
	}
}

func TestChunkRepo_Add_UpsertKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepo(newTestDB(t))

	first := textChunk(t, "rules.pdf:0:0", "Old text.", 0)
	second := textChunk(t, "rules.pdf:0:1", "Second.", 0)
	if err := repo.Add(ctx, []chunk.Chunk{first, second}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	replaced := textChunk(t, "rules.pdf:0:0", "New text.", 0)
	if err := repo.Add(ctx, []chunk.Chunk{replaced}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetAll() returned %d chunks, want 2", len(got))
	}
	if got[0].ID != "rules.pdf:0:0" || got[0].Content != "New text." {
		t.Errorf("got[0] = %+v", got[0])
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
}

func TestChunkRepo_Add_RequiresID(t *testing.T) {
	repo := NewChunkRepo(newTestDB(t))
	c := textChunk(t, "", "No id.", 0)
	if err := repo.Add(context.Background(), []chunk.Chunk{c}); err == nil {
		t.Fatal("Add() expected error for chunk without id")
	}
}

func TestChunkRepo_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepo(newTestDB(t))

	want := rowChunk(t, 1, 5)
	if err := repo.Add(ctx, []chunk.Chunk{want}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err := repo.GetByID(ctx, want.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetByID() = %+v, want %+v", got, want)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(missing) error = %v, want ErrNotFound", err)
	}
}

func TestChunkRepo_GetByID_ColumnNamesWithCommas(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepo(newTestDB(t))

	c, err := chunk.New("Value (Revenue, SEK): 1,200", chunk.StructuredMetadata{
		Source:       "report.xlsx",
		Sheet:        "Q1",
		RowStart:     1,
		RowEnd:       1,
		ValueColumns: []string{"Revenue, SEK", "Cost"},
	})
	if err != nil {
		t.Fatalf("chunk.New() error = %v", err)
	}
	want := c.WithID("report.xlsx:Q1:1-1")
	if err := repo.Add(ctx, []chunk.Chunk{want}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err := repo.GetByID(ctx, want.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	meta, ok := got.Metadata.(chunk.StructuredMetadata)
	if !ok {
		t.Fatalf("GetByID() metadata = %T, want StructuredMetadata", got.Metadata)
	}
	if !reflect.DeepEqual(meta.ValueColumns, []string{"Revenue, SEK", "Cost"}) {
		t.Errorf("ValueColumns = %q", meta.ValueColumns)
	}
	if meta.DateColumns != nil {
		t.Errorf("DateColumns = %q, want nil", meta.DateColumns)
	}
}

func TestChunkRepo_Sources(t *testing.T) {
	ctx := context.Background()
	repo := NewChunkRepo(newTestDB(t))

	if err := repo.Add(ctx, []chunk.Chunk{
		textChunk(t, "rules.pdf:0:0", "One.", 0),
		textChunk(t, "rules.pdf:0:1", "Two.", 0),
		rowChunk(t, 1, 5),
	}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	sources, err := repo.Sources(ctx)
	if err != nil {
		t.Fatalf("Sources() error = %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("Sources() returned %d records, want 2", len(sources))
	}
	if sources[0].Name != "prices.xlsx" || sources[0].Kind != chunk.KindStructured || sources[0].Chunks != 1 {
		t.Errorf("sources[0] = %+v", sources[0])
	}
	if sources[1].Name != "rules.pdf" || sources[1].Kind != chunk.KindText || sources[1].Chunks != 2 {
		t.Errorf("sources[1] = %+v", sources[1])
	}
	if sources[1].IndexedAt.IsZero() {
		t.Error("IndexedAt not set")
	}
}

func TestChunkRepo_Clear(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewChunkRepo(db)
	vectors := NewVectorRepo(db, "test-embedding-model")

	c := textChunk(t, "rules.pdf:0:0", "One.", 0)
	if err := repo.Add(ctx, []chunk.Chunk{c}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := vectors.PutVectors(ctx, []chunk.Chunk{c}, [][]float32{{1, 2}}); err != nil {
		t.Fatalf("PutVectors() error = %v", err)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	got, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("GetAll() after Clear returned %d chunks", len(got))
	}
	sources, err := repo.Sources(ctx)
	if err != nil {
		t.Fatalf("Sources() error = %v", err)
	}
	if len(sources) != 0 {
		t.Errorf("Sources() after Clear returned %d records", len(sources))
	}
	cached, err := vectors.Vectors(ctx, []string{c.ID})
	if err != nil {
		t.Fatalf("Vectors() error = %v", err)
	}
	if len(cached) != 0 {
		t.Error("vectors survived Clear")
	}
}
