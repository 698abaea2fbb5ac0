package indexer

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybridrag/internal/chunk"
)

// dotSplitter treats every "." as a sentence end.
type dotSplitter struct {
	err   error
	calls int
}

func (s *dotSplitter) Split(text string) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	var out []string
	for _, part := range strings.SplitAfter(text, ".") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

// sentence builds a sentence of exactly n runes.
func sentence(n int, r rune) string {
	return strings.Repeat(string(r), n-1) + "."
}

func textDoc(content string) Document {
	return Document{Content: content, Metadata: chunk.TextMetadata{Source: "rules.pdf", Page: 2}}
}

func TestSentenceChunker_ThreeSentenceTrace(t *testing.T) {
	s1, s2, s3 := sentence(80, 'a'), sentence(90, 'b'), sentence(100, 'c')
	c := NewSentenceChunker(&dotSplitter{}, 150, 250)

	chunks, err := c.Chunk(textDoc(strings.Join([]string{s1, s2, s3}, " ")))
	require.NoError(t, err)

	// 80+90 fits; adding 100 would reach 270 > 250 with 170 >= 150 buffered,
	// so the buffer flushes and the last sentence opens the next chunk.
	require.Len(t, chunks, 2)
	assert.Equal(t, s1+" "+s2, chunks[0].Content)
	assert.Equal(t, s2+" "+s3, chunks[1].Content)
}

func TestSentenceChunker_Properties(t *testing.T) {
	lengths := []int{40, 60, 70, 30, 90, 120, 20, 50, 80, 100, 260, 30, 45, 15}
	var original []string
	for i, n := range lengths {
		original = append(original, sentence(n, rune('a'+i)))
	}

	splitter := &dotSplitter{}
	c := NewSentenceChunker(splitter, 150, 250)
	chunks, err := c.Chunk(textDoc(strings.Join(original, " ")))
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	var perChunk [][]string
	for _, ch := range chunks {
		sents, err := splitter.Split(ch.Content)
		require.NoError(t, err)
		perChunk = append(perChunk, sents)
	}

	t.Run("flushed chunks reach the lower bound", func(t *testing.T) {
		for i, sents := range perChunk[:len(perChunk)-1] {
			total := 0
			for _, s := range sents {
				total += utf8.RuneCountInString(s)
			}
			assert.GreaterOrEqual(t, total, 150, "chunk %d", i)
		}
	})

	t.Run("each chunk opens with the previous chunk's last sentence", func(t *testing.T) {
		for i := 1; i < len(perChunk); i++ {
			prev := perChunk[i-1]
			assert.Equal(t, prev[len(prev)-1], perChunk[i][0], "chunk %d", i)
			assert.True(t, strings.HasPrefix(chunks[i].Content, prev[len(prev)-1]))
		}
	})

	t.Run("non-overlap sentences reconstruct the document", func(t *testing.T) {
		rebuilt := append([]string{}, perChunk[0]...)
		for _, sents := range perChunk[1:] {
			rebuilt = append(rebuilt, sents[1:]...)
		}
		assert.Equal(t, original, rebuilt)
	})

	t.Run("metadata copied verbatim", func(t *testing.T) {
		for _, ch := range chunks {
			assert.Equal(t, chunk.TextMetadata{Source: "rules.pdf", Page: 2}, ch.Metadata)
			assert.Empty(t, ch.ID)
		}
	})
}

func TestSentenceChunker_EdgeCases(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		splitter := &dotSplitter{}
		chunks, err := NewSentenceChunker(splitter, 150, 250).Chunk(textDoc("   \n "))
		require.NoError(t, err)
		assert.Empty(t, chunks)
		assert.Zero(t, splitter.calls)
	})

	t.Run("long sentence becomes its own chunk", func(t *testing.T) {
		long, short := sentence(300, 'x'), sentence(50, 'y')
		chunks, err := NewSentenceChunker(&dotSplitter{}, 150, 250).Chunk(textDoc(long + " " + short))
		require.NoError(t, err)
		require.Len(t, chunks, 2)
		assert.Equal(t, long, chunks[0].Content)
		assert.Equal(t, long+" "+short, chunks[1].Content)
	})

	t.Run("single long sentence", func(t *testing.T) {
		long := sentence(400, 'z')
		chunks, err := NewSentenceChunker(&dotSplitter{}, 150, 250).Chunk(textDoc(long))
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, long, chunks[0].Content)
	})

	t.Run("short buffer overshoots instead of flushing", func(t *testing.T) {
		s1, s2 := sentence(100, 'a'), sentence(200, 'b')
		chunks, err := NewSentenceChunker(&dotSplitter{}, 150, 250).Chunk(textDoc(s1 + " " + s2))
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, s1+" "+s2, chunks[0].Content)
	})

	t.Run("splitter failure fails the document", func(t *testing.T) {
		boom := errors.New("tokenizer exploded")
		chunks, err := NewSentenceChunker(&dotSplitter{err: boom}, 150, 250).Chunk(textDoc("Some text."))
		require.ErrorIs(t, err, boom)
		assert.Nil(t, chunks)
	})

	t.Run("defaults for non-positive bounds", func(t *testing.T) {
		c := NewSentenceChunker(&dotSplitter{}, 0, -1)
		assert.Equal(t, DefaultMinLen, c.minLen)
		assert.Equal(t, DefaultMaxLen, c.maxLen)
	})
}

func TestPunktSplitter(t *testing.T) {
	splitter, err := NewPunktSplitter()
	require.NoError(t, err)

	got, err := splitter.Split("The bank pays two hundred when you pass go. Players roll two dice. Doubles roll again.")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"The bank pays two hundred when you pass go.",
		"Players roll two dice.",
		"Doubles roll again.",
	}, got)

	empty, err := splitter.Split("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
