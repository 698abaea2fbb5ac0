// Package loader reads source files from disk into documents and tables for ingestion.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"hybridrag/internal/chunk"
	"hybridrag/internal/indexer"
	"hybridrag/internal/service"
)

// loadFunc reads one file. source is the name recorded in chunk metadata.
type loadFunc func(ctx context.Context, path, source string) (*indexer.Loaded, error)

// Loader implements indexer.Source for a directory of PDF, spreadsheet and text files.
type Loader struct {
	markdown goldmark.Markdown
	loaders  map[string]loadFunc

	mu   sync.Mutex
	root string
}

var _ indexer.Source = (*Loader)(nil)

// New creates a Loader.
func New() *Loader {
	l := &Loader{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
	l.loaders = map[string]loadFunc{
		".pdf":      loadPDF,
		".csv":      loadCSV,
		".xlsx":     loadXLSX,
		".xlsm":     loadXLSX,
		".md":       l.loadMarkdown,
		".markdown": l.loadMarkdown,
		".txt":      loadText,
	}
	return l
}

// Supported reports whether path has an extension the loader can read.
func (l *Loader) Supported(path string) bool {
	_, ok := l.loaders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Scan walks dir and returns every supported file in lexical order.
// Hidden files and directories are skipped.
func (l *Loader) Scan(ctx context.Context, dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, &service.ValidationError{Field: "dir", Message: fmt.Sprintf("%s is not a directory", dir)}
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		hidden := strings.HasPrefix(d.Name(), ".") && path != dir
		if d.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden || !l.Supported(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)

	l.mu.Lock()
	l.root = dir
	l.mu.Unlock()
	return files, nil
}

// Load reads one file. Files under the last scanned directory are named by
// their slash-separated path relative to it; others by their base name.
func (l *Loader) Load(ctx context.Context, path string) (*indexer.Loaded, error) {
	load, ok := l.loaders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), service.ErrUnsupported)
	}
	return load(ctx, path, l.sourceName(path))
}

func (l *Loader) sourceName(path string) string {
	l.mu.Lock()
	root := l.root
	l.mu.Unlock()

	if root != "" {
		if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.Base(path)
}

// loadText reads a plain text file as a single page.
func loadText(_ context.Context, path, source string) (*indexer.Loaded, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	content, err := decodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", source, err)
	}
	return singlePage(source, content), nil
}

func singlePage(source, content string) *indexer.Loaded {
	loaded := &indexer.Loaded{}
	if strings.TrimSpace(content) == "" {
		return loaded
	}
	loaded.Documents = []indexer.Document{{
		Content:  content,
		Metadata: chunk.TextMetadata{Source: source, Page: 0},
	}}
	return loaded
}
