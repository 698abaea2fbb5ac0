package indexer

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// SentenceSplitter breaks prose into sentences.
type SentenceSplitter interface {
	Split(text string) ([]string, error)
}

// PunktSplitter splits sentences with a pre-trained Punkt model.
type PunktSplitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktSplitter loads the bundled English Punkt parameters.
func NewPunktSplitter() (*PunktSplitter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load sentence tokenizer: %w", err)
	}
	return &PunktSplitter{tokenizer: tokenizer}, nil
}

// Split returns the trimmed, non-empty sentences of text.
func (s *PunktSplitter) Split(text string) (out []string, err error) {
	// A tokenizer panic fails this text only.
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("sentence tokenization failed: %v", r)
		}
	}()

	for _, sentence := range s.tokenizer.Tokenize(text) {
		trimmed := strings.TrimSpace(sentence.Text)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out, nil
}
