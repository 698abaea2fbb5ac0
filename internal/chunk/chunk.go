// Package chunk defines the unit of retrieval shared by ingestion, storage and ranking.
package chunk

import (
	"fmt"
	"strconv"
	"strings"

	"hybridrag/internal/service"
)

// Kind identifies which metadata shape a chunk carries.
type Kind string

const (
	// KindText marks prose chunks produced by the sentence chunker.
	KindText Kind = "Text"
	// KindStructured marks row-window chunks produced from tabular data.
	KindStructured Kind = "Structured"
)

// Flat metadata keys used when a chunk crosses a storage boundary.
const (
	KeySource       = "source"
	KeyKind         = "kind"
	KeyPage         = "page"
	KeySheet        = "sheet"
	KeyRowStart     = "row_start"
	KeyRowEnd       = "row_end"
	KeyValueColumns = "value_columns"
	KeyDateColumns  = "date_columns"
	KeyDescription  = "description"
)

// Metadata is implemented by TextMetadata and StructuredMetadata only.
type Metadata interface {
	Kind() Kind
	SourceName() string
	// Flatten renders the metadata as primitive values keyed by the flat keys above.
	Flatten() map[string]any
	validate() error
}

// TextMetadata describes a chunk cut from prose.
type TextMetadata struct {
	Source string
	Page   int
}

// Kind implements Metadata.
func (m TextMetadata) Kind() Kind { return KindText }

// SourceName implements Metadata.
func (m TextMetadata) SourceName() string { return m.Source }

// Flatten implements Metadata.
func (m TextMetadata) Flatten() map[string]any {
	return map[string]any{
		KeySource: m.Source,
		KeyKind:   string(KindText),
		KeyPage:   m.Page,
	}
}

func (m TextMetadata) validate() error {
	if strings.TrimSpace(m.Source) == "" {
		return &service.ValidationError{Field: KeySource, Message: "is required"}
	}
	if m.Page < 0 {
		return &service.ValidationError{Field: KeyPage, Message: "must not be negative"}
	}
	return nil
}

// StructuredMetadata describes a window of rows from one sheet.
type StructuredMetadata struct {
	Source       string
	Sheet        string
	RowStart     int // 1-based
	RowEnd       int // inclusive
	ValueColumns []string
	DateColumns  []string
	Description  string
}

// Kind implements Metadata.
func (m StructuredMetadata) Kind() Kind { return KindStructured }

// SourceName implements Metadata.
func (m StructuredMetadata) SourceName() string { return m.Source }

// Flatten implements Metadata.
func (m StructuredMetadata) Flatten() map[string]any {
	return map[string]any{
		KeySource:       m.Source,
		KeyKind:         string(KindStructured),
		KeySheet:        m.Sheet,
		KeyRowStart:     m.RowStart,
		KeyRowEnd:       m.RowEnd,
		KeyValueColumns: Coerce(m.ValueColumns),
		KeyDateColumns:  Coerce(m.DateColumns),
		KeyDescription:  m.Description,
	}
}

func (m StructuredMetadata) validate() error {
	if strings.TrimSpace(m.Source) == "" {
		return &service.ValidationError{Field: KeySource, Message: "is required"}
	}
	if m.Sheet == "" {
		return &service.ValidationError{Field: KeySheet, Message: "is required"}
	}
	if m.RowStart < 1 || m.RowEnd < m.RowStart {
		return &service.ValidationError{
			Field:   KeyRowStart,
			Message: fmt.Sprintf("invalid row range %d-%d", m.RowStart, m.RowEnd),
		}
	}
	return nil
}

// Chunk is the unit of retrieval. Chunks are not mutated after creation;
// WithID returns a copy.
type Chunk struct {
	ID       string
	Content  string
	Metadata Metadata
}

// New validates content and metadata and returns a chunk without an id.
func New(content string, meta Metadata) (Chunk, error) {
	if meta == nil {
		return Chunk{}, &service.ValidationError{Field: "metadata", Message: "is required"}
	}
	if strings.TrimSpace(content) == "" {
		return Chunk{}, &service.ValidationError{Field: "content", Message: "cannot be empty"}
	}
	if err := meta.validate(); err != nil {
		return Chunk{}, err
	}
	return Chunk{Content: content, Metadata: meta}, nil
}

// Kind returns the chunk's metadata kind.
func (c Chunk) Kind() Kind {
	if c.Metadata == nil {
		return ""
	}
	return c.Metadata.Kind()
}

// WithID returns a copy of c carrying id.
func (c Chunk) WithID(id string) Chunk {
	c.ID = id
	return c
}

// Scored pairs a chunk with the score one index gave it.
type Scored struct {
	Chunk Chunk
	Score float64
}

// Coerce renders an arbitrary metadata value as a primitive. Lists are joined
// with ", " and anything non-primitive falls back to its string form.
func Coerce(v any) any {
	switch val := v.(type) {
	case nil:
		return ""
	case string, bool, int, int64, float64:
		return val
	case int32:
		return int64(val)
	case float32:
		return float64(val)
	case []string:
		return strings.Join(val, ", ")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = fmt.Sprint(Coerce(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}

// Record flattens m for a store that keeps JSON: like Flatten, but list
// fields stay lists so names containing ", " survive the round trip.
func Record(m Metadata) map[string]any {
	flat := m.Flatten()
	if sm, ok := m.(StructuredMetadata); ok {
		flat[KeyValueColumns] = nonNil(sm.ValueColumns)
		flat[KeyDateColumns] = nonNil(sm.DateColumns)
	}
	return flat
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// FromFlat rebuilds a chunk from stored content and flat metadata. List fields
// may be lists or ", "-joined strings.
func FromFlat(id, content string, flat map[string]any) (Chunk, error) {
	var meta Metadata
	switch Kind(asString(flat[KeyKind])) {
	case KindText:
		meta = TextMetadata{
			Source: asString(flat[KeySource]),
			Page:   asInt(flat[KeyPage]),
		}
	case KindStructured:
		meta = StructuredMetadata{
			Source:       asString(flat[KeySource]),
			Sheet:        asString(flat[KeySheet]),
			RowStart:     asInt(flat[KeyRowStart]),
			RowEnd:       asInt(flat[KeyRowEnd]),
			ValueColumns: asList(flat[KeyValueColumns]),
			DateColumns:  asList(flat[KeyDateColumns]),
			Description:  asString(flat[KeyDescription]),
		}
	default:
		return Chunk{}, &service.ValidationError{
			Field:   KeyKind,
			Message: fmt.Sprintf("unknown kind %q", flat[KeyKind]),
		}
	}

	c, err := New(content, meta)
	if err != nil {
		return Chunk{}, err
	}
	return c.WithID(id), nil
}

func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func asInt(v any) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		n, _ := strconv.Atoi(val)
		return n
	default:
		return 0
	}
}

func asList(v any) []string {
	switch val := v.(type) {
	case []string:
		if len(val) == 0 {
			return nil
		}
		return val
	case []any:
		if len(val) == 0 {
			return nil
		}
		out := make([]string, len(val))
		for i, item := range val {
			out[i] = asString(item)
		}
		return out
	default:
		s := asString(val)
		if s == "" {
			return nil
		}
		return strings.Split(s, ", ")
	}
}
