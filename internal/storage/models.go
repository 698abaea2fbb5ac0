package storage

import (
	"time"

	"hybridrag/internal/chunk"
)

// SourceRecord is one ingested file as tracked in the sources table.
type SourceRecord struct {
	Name      string     `json:"name"`
	Kind      chunk.Kind `json:"kind"`
	Chunks    int        `json:"chunks"`
	IndexedAt time.Time  `json:"indexed_at"`
}
