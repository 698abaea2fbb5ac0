package indexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"hybridrag/internal/chunk"
)

const (
	// DefaultMinLen is the buffer length (runes) a chunk must reach before it may be flushed.
	DefaultMinLen = 150
	// DefaultMaxLen is the length (runes) past which the buffer is flushed.
	DefaultMaxLen = 250
)

// SentenceChunker packs sentences into chunks of roughly MinLen..MaxLen runes,
// repeating the last sentence of each chunk at the start of the next.
type SentenceChunker struct {
	splitter SentenceSplitter
	minLen   int
	maxLen   int
}

// NewSentenceChunker creates a chunker. Non-positive bounds fall back to the defaults.
func NewSentenceChunker(splitter SentenceSplitter, minLen, maxLen int) *SentenceChunker {
	if minLen <= 0 {
		minLen = DefaultMinLen
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &SentenceChunker{splitter: splitter, minLen: minLen, maxLen: maxLen}
}

// Chunk splits doc into chunks carrying doc's metadata.
// Lengths count sentence runes only; the joining spaces are not counted.
func (c *SentenceChunker) Chunk(doc Document) ([]chunk.Chunk, error) {
	if strings.TrimSpace(doc.Content) == "" {
		return nil, nil
	}

	sentences, err := c.splitter.Split(doc.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to split sentences: %w", err)
	}

	var (
		chunks []chunk.Chunk
		buf    []string
		length int
		last   string
	)
	flush := func() error {
		ch, err := chunk.New(strings.Join(buf, " "), doc.Metadata)
		if err != nil {
			return err
		}
		chunks = append(chunks, ch)
		return nil
	}

	for _, sentence := range sentences {
		n := utf8.RuneCountInString(sentence)

		switch {
		case length+n <= c.maxLen:
			buf = append(buf, sentence)
			length += n
		case length >= c.minLen:
			if err := flush(); err != nil {
				return nil, err
			}
			// Overlap: the new chunk opens with the flushed chunk's final sentence.
			buf = []string{last, sentence}
			length = utf8.RuneCountInString(last) + n
		default:
			// Too small to flush yet; overshoot MaxLen instead.
			buf = append(buf, sentence)
			length += n
		}
		last = sentence
	}

	if len(buf) > 0 {
		if err := flush(); err != nil {
			return nil, err
		}
	}

	return chunks, nil
}
