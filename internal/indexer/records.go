package indexer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"hybridrag/internal/chunk"
)

const (
	// DefaultRowWindow is the number of rows rendered into one structured chunk.
	DefaultRowWindow = 5
	// DefaultSheetName names a table that is not partitioned into sheets.
	DefaultSheetName = "main"
)

// RecordChunker renders windows of table rows as text chunks.
type RecordChunker struct {
	window  int
	printer *message.Printer
}

// NewRecordChunker creates a chunker with the given row window (DefaultRowWindow if non-positive).
func NewRecordChunker(window int) *RecordChunker {
	if window <= 0 {
		window = DefaultRowWindow
	}
	return &RecordChunker{
		window:  window,
		printer: message.NewPrinter(language.English),
	}
}

type classifiedColumn struct {
	index int
	name  string
}

// Chunk renders every sheet of table into row-window chunks.
func (c *RecordChunker) Chunk(table Table) ([]chunk.Chunk, error) {
	var chunks []chunk.Chunk
	for _, sheet := range partitionSheets(table.Sheets) {
		sheetChunks, err := c.chunkSheet(table.Source, sheet)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet.Name, err)
		}
		chunks = append(chunks, sheetChunks...)
	}
	return chunks, nil
}

func (c *RecordChunker) chunkSheet(source string, sheet Sheet) ([]chunk.Chunk, error) {
	// Roles are decided once per sheet and shared by all of its windows.
	var dates, values, descriptive []classifiedColumn
	for j, name := range sheet.Columns {
		col := classifiedColumn{index: j, name: name}
		switch ClassifyColumn(name, columnValues(sheet.Rows, j)) {
		case RoleNumeric:
			values = append(values, col)
		case RoleDate:
			dates = append(dates, col)
		case RoleDescriptive:
			descriptive = append(descriptive, col)
		}
	}

	var chunks []chunk.Chunk
	for start := 0; start < len(sheet.Rows); start += c.window {
		end := min(start+c.window, len(sheet.Rows))
		rows := sheet.Rows[start:end]

		description := describe(rows, descriptive)

		var lines []string
		if description != "" {
			lines = append(lines, "Description: "+description)
		}
		for _, row := range rows {
			if line := c.renderRow(row, dates, values); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) == 0 {
			continue
		}

		ch, err := chunk.New(strings.Join(lines, "\n"), chunk.StructuredMetadata{
			Source:       source,
			Sheet:        sheet.Name,
			RowStart:     start + 1,
			RowEnd:       end,
			ValueColumns: names(values),
			DateColumns:  names(dates),
			Description:  description,
		})
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, ch)
	}
	return chunks, nil
}

func (c *RecordChunker) renderRow(row []any, dates, values []classifiedColumn) string {
	var parts []string
	for _, col := range dates {
		v := cell(row, col.index)
		if isNull(v) {
			continue
		}
		parts = append(parts, fmt.Sprintf("Date (%s): %s", col.name, cellString(v)))
	}
	for _, col := range values {
		v := cell(row, col.index)
		if isNull(v) {
			continue
		}
		n, ok := toNumber(v)
		if !ok {
			parts = append(parts, fmt.Sprintf("Text (%s): %s", col.name, cellString(v)))
			continue
		}
		parts = append(parts, fmt.Sprintf("Value (%s): %s", col.name, c.formatNumber(n)))
	}
	return strings.Join(parts, " | ")
}

func (c *RecordChunker) formatNumber(n number) string {
	if n.whole {
		return c.printer.Sprintf("%d", n.i)
	}
	return c.printer.Sprintf("%.2f", n.f)
}

// describe collects the distinct descriptive values of a window, column by column.
func describe(rows [][]any, columns []classifiedColumn) string {
	seen := make(map[string]struct{})
	var out []string
	for _, col := range columns {
		for _, row := range rows {
			v := cell(row, col.index)
			if isNull(v) {
				continue
			}
			s := cellString(v)
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return strings.Join(out, ", ")
}

// partitionSheets names unnamed sheets and splits one that carries a Sheet column.
func partitionSheets(sheets []Sheet) []Sheet {
	var out []Sheet
	for _, sheet := range sheets {
		if sheet.Name != "" {
			out = append(out, sheet)
			continue
		}
		idx := -1
		for j, name := range sheet.Columns {
			if strings.TrimSpace(name) == sheetColumn {
				idx = j
				break
			}
		}
		if idx < 0 {
			sheet.Name = DefaultSheetName
			out = append(out, sheet)
			continue
		}

		groups := make(map[string][][]any)
		for _, row := range sheet.Rows {
			v := cell(row, idx)
			if isNull(v) {
				continue
			}
			key := cellString(v)
			groups[key] = append(groups[key], row)
		}
		keys := make([]string, 0, len(groups))
		for k := range groups {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, Sheet{Name: k, Columns: sheet.Columns, Rows: groups[k]})
		}
	}
	return out
}

func columnValues(rows [][]any, j int) []any {
	out := make([]any, len(rows))
	for i, row := range rows {
		out[i] = cell(row, j)
	}
	return out
}

func cell(row []any, j int) any {
	if j < len(row) {
		return row[j]
	}
	return nil
}

func cellString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.DateTime)
	default:
		return fmt.Sprint(val)
	}
}

func names(cols []classifiedColumn) []string {
	if len(cols) == 0 {
		return nil
	}
	out := make([]string, len(cols))
	for i, col := range cols {
		out[i] = col.name
	}
	return out
}
