package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"hybridrag/internal/indexer"
)

// loadCSV reads a comma-separated file with a header row into a single unnamed
// sheet. Cells stay strings; column roles are decided by the record chunker.
func loadCSV(_ context.Context, path, source string) (*indexer.Loaded, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	text, err := decodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", source, err)
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.Comma = sniffDelimiter(text)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", source, err)
	}

	sheet := toSheet("", records)
	if sheet == nil {
		return &indexer.Loaded{}, nil
	}
	return &indexer.Loaded{Table: &indexer.Table{Source: source, Sheets: []indexer.Sheet{*sheet}}}, nil
}

// sniffDelimiter picks ';' or tab over ',' when the header row clearly uses it,
// as European spreadsheet exports do.
func sniffDelimiter(text string) rune {
	header := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		header = text[:i]
	}
	best, count := ',', strings.Count(header, ",")
	for _, d := range []rune{';', '\t'} {
		if n := strings.Count(header, string(d)); n > count {
			best, count = d, n
		}
	}
	return best
}

// toSheet turns rows of strings into a sheet. The first row names the columns;
// blank names become "Unnamed: i" and blank rows are dropped.
func toSheet(name string, records [][]string) *indexer.Sheet {
	if len(records) == 0 {
		return nil
	}
	cells := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(rec))
		for j, v := range rec {
			row[j] = v
		}
		cells[i] = row
	}
	return toTypedSheet(name, records[0], cells[1:])
}

func toTypedSheet(name string, header []string, rows [][]any) *indexer.Sheet {
	columns := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		columns[i] = h
	}

	var kept [][]any
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		// Cells beyond the header have no column to land in.
		if len(row) > len(columns) {
			row = row[:len(columns)]
		}
		kept = append(kept, row)
	}
	if len(kept) == 0 {
		return nil
	}
	return &indexer.Sheet{Name: name, Columns: columns, Rows: kept}
}

func blankRow(row []any) bool {
	for _, v := range row {
		switch val := v.(type) {
		case nil:
		case string:
			if strings.TrimSpace(val) != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}
