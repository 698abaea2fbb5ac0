package indexer

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"hybridrag/internal/chunk"
)

// ChunkStats summarizes the chunks of an ingestion run.
type ChunkStats struct {
	Count         int         `json:"count"`
	Text          int         `json:"text"`
	Structured    int         `json:"structured"`
	Length        LengthStats `json:"length"`
	MeanSentences float64     `json:"mean_sentences"`
}

// LengthStats contains rune-length statistics across chunks.
type LengthStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

// ComputeStats computes counts, length statistics and the mean number of
// sentences per chunk. splitter may be nil, in which case sentences are not counted.
func ComputeStats(chunks []chunk.Chunk, splitter SentenceSplitter) ChunkStats {
	stats := ChunkStats{Count: len(chunks)}
	if len(chunks) == 0 {
		return stats
	}

	lengths := make([]int, 0, len(chunks))
	sentenceTotal := 0
	for _, c := range chunks {
		switch c.Kind() {
		case chunk.KindText:
			stats.Text++
		case chunk.KindStructured:
			stats.Structured++
		}
		lengths = append(lengths, utf8.RuneCountInString(c.Content))
		if splitter != nil {
			if sentences, err := splitter.Split(c.Content); err == nil {
				sentenceTotal += len(sentences)
			}
		}
	}

	stats.Length = computeLengthStats(lengths)
	if splitter != nil {
		stats.MeanSentences = math.Round(float64(sentenceTotal)/float64(len(chunks))*10) / 10
	}
	return stats
}

// computeLengthStats computes min, max, mean, and p95 from chunk lengths.
func computeLengthStats(lengths []int) LengthStats {
	if len(lengths) == 0 {
		return LengthStats{}
	}

	sorted := make([]int, len(lengths))
	copy(sorted, lengths)
	sort.Ints(sorted)

	sum := 0
	for _, n := range lengths {
		sum += n
	}
	mean := float64(sum) / float64(len(lengths))

	p95Index := int(math.Ceil(float64(len(sorted)) * 0.95))
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}

	return LengthStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*10) / 10,
		P95:  sorted[p95Index],
	}
}

// WriteInspection prints the first samples chunks sentence by sentence, followed by statistics.
func WriteInspection(w io.Writer, chunks []chunk.Chunk, samples int, splitter SentenceSplitter) error {
	rule := strings.Repeat("-", 50)
	var b strings.Builder

	fmt.Fprintf(&b, "\n=== Chunk inspection (showing %d samples) ===\n", min(samples, len(chunks)))
	fmt.Fprintf(&b, "Total chunks: %d\n", len(chunks))

	for i, c := range chunks[:min(samples, len(chunks))] {
		fmt.Fprintf(&b, "\nChunk %d: %s\n", i+1, c.ID)
		fmt.Fprintf(&b, "Metadata: %v\n", c.Metadata.Flatten())
		fmt.Fprintf(&b, "Length (runes): %d\n", utf8.RuneCountInString(c.Content))
		b.WriteString(rule + "\n")
		lines := strings.Split(c.Content, "\n")
		if splitter != nil && c.Kind() == chunk.KindText {
			if sentences, err := splitter.Split(c.Content); err == nil {
				lines = sentences
			}
		}
		for j, line := range lines {
			fmt.Fprintf(&b, "%d. %s\n", j+1, line)
		}
		b.WriteString(rule + "\n")
	}

	stats := ComputeStats(chunks, splitter)
	b.WriteString("\nStatistics for all chunks:\n")
	fmt.Fprintf(&b, "Text chunks: %d, structured chunks: %d\n", stats.Text, stats.Structured)
	fmt.Fprintf(&b, "Mean length: %.1f runes\n", stats.Length.Mean)
	fmt.Fprintf(&b, "Min length: %d runes\n", stats.Length.Min)
	fmt.Fprintf(&b, "Max length: %d runes\n", stats.Length.Max)
	fmt.Fprintf(&b, "P95 length: %d runes\n", stats.Length.P95)
	if splitter != nil {
		fmt.Fprintf(&b, "Mean sentences per chunk: %.1f\n", stats.MeanSentences)
	}
	b.WriteString(strings.Repeat("=", 50) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
