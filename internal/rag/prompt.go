package rag

import (
	"fmt"
	"sort"
	"strings"

	"hybridrag/internal/chunk"
	"hybridrag/internal/llm"
)

// NoAnswer is what the model is told to reply when the context lacks the answer.
const NoAnswer = "I can't find any information about this in the context"

const contextSeparator = "\n\n---\n\n"

const systemPrompt = `You are a helpful assistant that answers questions using the provided context.

IMPORTANT:
1. Give ONE clear answer based ONLY on the information in the context.
2. If the information is not in the context, reply only: "` + NoAnswer + `"
3. Do not guess or fill in with your own knowledge, do not give several alternative answers and do not answer questions that were not asked.
4. Quote relevant text from the context when possible.
5. When the answer contains numbers or table data, use thousands separators, round decimals to two places and name the columns and rows it came from.`

var templateMarkers = strings.NewReplacer("<|im_start|>", "", "<|im_end|>", "")

// buildMessages renders the candidates, the history and the question as a chat prompt.
func buildMessages(question string, candidates []chunk.Scored, history []Turn) []llm.Message {
	blocks := make([]string, len(candidates))
	for i, c := range candidates {
		blocks[i] = c.Chunk.Content
	}

	turns := make([]string, len(history))
	for i, t := range history {
		turns[i] = fmt.Sprintf("User: %s\nAssistant: %s", t.Question, t.Answer)
	}

	user := fmt.Sprintf("Context:\n%s\n\nHistory:\n%s\n\nUser: %s\nAssistant:",
		strings.Join(blocks, contextSeparator),
		strings.Join(turns, "\n"),
		question,
	)
	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: user},
	}
}

// cleanAnswer trims the reply and removes leaked chat template markers.
func cleanAnswer(s string) string {
	return strings.TrimSpace(templateMarkers.Replace(strings.TrimSpace(s)))
}

// FormatSource renders where a chunk came from.
func FormatSource(c chunk.Chunk) string {
	switch m := c.Metadata.(type) {
	case chunk.StructuredMetadata:
		return fmt.Sprintf("- %s (Sheet: %s, Rows: %d-%d)", m.Source, m.Sheet, m.RowStart, m.RowEnd)
	case chunk.TextMetadata:
		return fmt.Sprintf("- %s (page %d)", m.Source, m.Page)
	default:
		return "- unknown"
	}
}

// Sources returns the distinct formatted sources of candidates, sorted.
func Sources(candidates []chunk.Scored) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		s := FormatSource(c.Chunk)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
