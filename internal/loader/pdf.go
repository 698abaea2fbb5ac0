package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"hybridrag/internal/chunk"
	"hybridrag/internal/contextutil"
	"hybridrag/internal/indexer"
)

// loadPDF extracts the plain text of every page. Pages are numbered from 0
// and pages without text are skipped.
func loadPDF(ctx context.Context, path, source string) (*indexer.Loaded, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", source, err)
	}
	defer func() {
		_ = f.Close()
	}()

	logger := contextutil.LoggerFromContext(ctx)
	loaded := &indexer.Loaded{}
	for i := 1; i <= r.NumPage(); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.WarnContext(ctx, "failed to extract pdf page", "source", source, "page", i-1, "error", err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		loaded.Documents = append(loaded.Documents, indexer.Document{
			Content:  text,
			Metadata: chunk.TextMetadata{Source: source, Page: i - 1},
		})
	}
	return loaded, nil
}
