package loader

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "heading and paragraph",
			input: "# House rules\n\nRent is **due** on\narrival.\n",
			want:  "House rules\nRent is due on arrival.",
		},
		{
			name:  "list",
			input: "- Pass *go*\n- Collect money\n",
			want:  "Pass go\nCollect money",
		},
		{
			name:  "link text only",
			input: "See [the board](https://example.com/board).\n",
			want:  "See the board.",
		},
		{
			name:  "code block",
			input: "Example:\n\n```\nroll dice\n```\n",
			want:  "Example:\nroll dice",
		},
		{
			name:  "table",
			input: "| Street | Price |\n| --- | --- |\n| Hornsgatan | 450 |\n",
			want:  "Street | Price\nHornsgatan | 450",
		},
	}
	l := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.plainText([]byte(tt.input)))
		})
	}
}

func TestLoader_LoadMarkdown(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "board.md"), []byte("# Board\n\nFree parking pays nothing.\n"))
	writeFile(t, filepath.Join(dir, "blank.md"), []byte("\n\n"))

	l := New()
	loaded, err := l.Load(context.Background(), filepath.Join(dir, "board.md"))
	require.NoError(t, err)
	require.Len(t, loaded.Documents, 1)
	assert.Equal(t, "Board\nFree parking pays nothing.", loaded.Documents[0].Content)

	blank, err := l.Load(context.Background(), filepath.Join(dir, "blank.md"))
	require.NoError(t, err)
	assert.Empty(t, blank.Documents)
}
