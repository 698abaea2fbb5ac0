package loader

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"hybridrag/internal/contextutil"
	"hybridrag/internal/indexer"
)

// builtinDateFormats are the built-in number format ids that render dates or times.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// formatLiteral matches the parts of a number format that never carry date tokens:
// quoted text, bracketed colors or locales, and escaped, padded or repeated characters.
var formatLiteral = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|[\\_*].`)

// loadXLSX reads every non-empty worksheet. Each sheet's first row names the
// columns. Numeric cells become float64 and date-formatted cells time.Time;
// everything else stays as displayed text.
func loadXLSX(ctx context.Context, path, source string) (*indexer.Loaded, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", source, err)
	}
	defer func() {
		_ = f.Close()
	}()

	logger := contextutil.LoggerFromContext(ctx)
	table := &indexer.Table{Source: source}
	for _, name := range f.GetSheetList() {
		sheet, err := readSheet(f, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s of %s: %w", name, source, err)
		}
		if sheet == nil {
			logger.DebugContext(ctx, "skipping empty sheet", "source", source, "sheet", name)
			continue
		}
		table.Sheets = append(table.Sheets, *sheet)
	}

	if len(table.Sheets) == 0 {
		return &indexer.Loaded{}, nil
	}
	return &indexer.Loaded{Table: table}, nil
}

func readSheet(f *excelize.File, name string) (*indexer.Sheet, error) {
	formatted, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(formatted) == 0 {
		return nil, nil
	}

	dates := dateStyles{file: f, known: map[int]bool{}}
	rows := make([][]any, 0, len(formatted)-1)
	for i := 1; i < len(formatted); i++ {
		row := make([]any, len(formatted[i]))
		for j, display := range formatted[i] {
			isDate, err := dates.cell(name, j+1, i+1)
			if err != nil {
				return nil, err
			}
			row[j] = typedCell(rawCell(raw, i, j), display, isDate)
		}
		rows = append(rows, row)
	}
	return toTypedSheet(name, formatted[0], rows), nil
}

// dateStyles remembers which cell styles carry a date or time number format.
type dateStyles struct {
	file  *excelize.File
	known map[int]bool
}

func (d dateStyles) cell(sheet string, col, row int) (bool, error) {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return false, err
	}
	id, err := d.file.GetCellStyle(sheet, ref)
	if err != nil {
		return false, err
	}
	if isDate, ok := d.known[id]; ok {
		return isDate, nil
	}
	style, err := d.file.GetStyle(id)
	if err != nil {
		return false, err
	}
	isDate := false
	if style != nil {
		isDate = builtinDateFormats[style.NumFmt]
		if style.CustomNumFmt != nil {
			isDate = isDateFormat(*style.CustomNumFmt)
		}
	}
	d.known[id] = isDate
	return isDate, nil
}

// isDateFormat reports whether a custom number format renders a date or time.
func isDateFormat(format string) bool {
	stripped := strings.ToLower(formatLiteral.ReplaceAllString(format, ""))
	if stripped == "general" {
		return false
	}
	return strings.ContainsAny(stripped, "ydmhs")
}

func rawCell(raw [][]string, i, j int) string {
	if i < len(raw) && j < len(raw[i]) {
		return raw[i][j]
	}
	return ""
}

// typedCell recovers a cell's value from its stored and displayed forms.
// dateFormat marks a cell whose number format renders a date or time.
func typedCell(raw, display string, dateFormat bool) any {
	raw, display = strings.TrimSpace(raw), strings.TrimSpace(display)
	if raw == "" && display == "" {
		return nil
	}
	if strings.EqualFold(display, "TRUE") || strings.EqualFold(display, "FALSE") {
		return display
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return display
	}
	if dateFormat && f >= 0 {
		if t, err := excelize.ExcelDateToTime(f, false); err == nil {
			return t
		}
	}
	// Currency, percentages and other decorated numbers keep their value.
	return f
}
