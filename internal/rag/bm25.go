package rag

import (
	"math"
	"sort"

	"hybridrag/internal/chunk"
)

// DefaultK is the number of candidates each index returns.
const DefaultK = 6

// BM25 parameters.
const (
	bm25K1      = 1.5
	bm25B       = 0.75
	bm25Epsilon = 0.25
)

// LexicalIndex ranks chunks by Okapi BM25 relevance to a query.
// The corpus statistics are rebuilt on every search.
type LexicalIndex struct {
	k int
}

// NewLexicalIndex creates a lexical index returning at most k results (DefaultK if non-positive).
func NewLexicalIndex(k int) *LexicalIndex {
	if k <= 0 {
		k = DefaultK
	}
	return &LexicalIndex{k: k}
}

// Search returns the top k chunks with a positive score, best first.
// Equal scores keep corpus order.
func (l *LexicalIndex) Search(corpus []chunk.Chunk, query string) []chunk.Scored {
	terms := tokenize(query)
	if len(corpus) == 0 || len(terms) == 0 {
		return nil
	}
	scores := bm25Scores(corpus, terms)
	return topK(corpus, scores, l.k)
}

func bm25Scores(corpus []chunk.Chunk, terms []string) []float64 {
	n := len(corpus)
	freqs := make([]map[string]int, n)
	lengths := make([]int, n)
	docFreq := make(map[string]int)
	total := 0
	for i, c := range corpus {
		tokens := tokenize(c.Content)
		lengths[i] = len(tokens)
		total += len(tokens)

		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		for tok := range tf {
			docFreq[tok]++
		}
		freqs[i] = tf
	}

	scores := make([]float64, n)
	if total == 0 {
		return scores
	}
	avgLen := float64(total) / float64(n)
	idf := inverseDocFreq(n, docFreq)

	for _, term := range terms {
		w, ok := idf[term]
		if !ok {
			continue
		}
		for i := range corpus {
			tf := float64(freqs[i][term])
			if tf == 0 {
				continue
			}
			norm := bm25K1 * (1 - bm25B + bm25B*float64(lengths[i])/avgLen)
			scores[i] += w * tf * (bm25K1 + 1) / (tf + norm)
		}
	}
	return scores
}

// inverseDocFreq computes ln((N-n+0.5)/(n+0.5)) per term. Terms found in more
// than half the corpus would score negatively; they get epsilon times the mean idf instead.
func inverseDocFreq(n int, docFreq map[string]int) map[string]float64 {
	idf := make(map[string]float64, len(docFreq))
	var sum float64
	var negative []string
	for term, df := range docFreq {
		v := math.Log(float64(n)-float64(df)+0.5) - math.Log(float64(df)+0.5)
		idf[term] = v
		sum += v
		if v < 0 {
			negative = append(negative, term)
		}
	}
	floor := bm25Epsilon * sum / float64(len(docFreq))
	for _, term := range negative {
		idf[term] = floor
	}
	return idf
}

// topK pairs chunks with their scores, drops non-positive ones and keeps the best k.
func topK(corpus []chunk.Chunk, scores []float64, k int) []chunk.Scored {
	var out []chunk.Scored
	for i, s := range scores {
		if s > 0 {
			out = append(out, chunk.Scored{Chunk: corpus[i], Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}
