package indexer

import (
	"fmt"

	"hybridrag/internal/chunk"
)

// Assigner derives chunk ids. Structured ids come from the row window alone;
// text ids carry a counter, so an Assigner must be created per ingestion run
// and never shared between concurrent runs.
type Assigner struct {
	next int
}

// NewAssigner returns an assigner whose text counter starts at zero.
func NewAssigner() *Assigner {
	return &Assigner{}
}

// Assign returns c with its id set.
func (a *Assigner) Assign(c chunk.Chunk) (chunk.Chunk, error) {
	switch m := c.Metadata.(type) {
	case chunk.StructuredMetadata:
		return c.WithID(fmt.Sprintf("%s:%s:%d-%d", m.Source, m.Sheet, m.RowStart, m.RowEnd)), nil
	case chunk.TextMetadata:
		id := fmt.Sprintf("%s:%d:%d", m.Source, m.Page, a.next)
		a.next++
		return c.WithID(id), nil
	default:
		return chunk.Chunk{}, fmt.Errorf("cannot assign id to chunk of kind %q", c.Kind())
	}
}

// AssignAll assigns ids in order.
func (a *Assigner) AssignAll(chunks []chunk.Chunk) ([]chunk.Chunk, error) {
	out := make([]chunk.Chunk, 0, len(chunks))
	for _, c := range chunks {
		assigned, err := a.Assign(c)
		if err != nil {
			return nil, err
		}
		out = append(out, assigned)
	}
	return out, nil
}

// Assigned returns how many text ids this assigner has handed out.
func (a *Assigner) Assigned() int {
	return a.next
}
