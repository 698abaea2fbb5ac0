package indexer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ColumnRole is how a tabular column is rendered into chunk text.
type ColumnRole int

const (
	// RoleIgnored marks index or unnamed artifact columns and columns with no values.
	RoleIgnored ColumnRole = iota
	RoleNumeric
	RoleDate
	RoleDescriptive
)

func (r ColumnRole) String() string {
	switch r {
	case RoleNumeric:
		return "Numeric"
	case RoleDate:
		return "Date"
	case RoleDescriptive:
		return "Descriptive"
	default:
		return "Ignored"
	}
}

// sheetColumn partitions a single table into sheets when present.
const sheetColumn = "Sheet"

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`), // YYYY-MM-DD, optionally followed by a time
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`), // DD/MM/YYYY or MM/DD/YYYY
	regexp.MustCompile(`^\d{4}$`),            // bare year
	regexp.MustCompile(`^\d{4}[Qq]\d$`),      // year and quarter
}

// ClassifyColumn labels a column from its name and its first non-null value.
// Only one sample is inspected, so a column whose first value is atypical is
// misclassified; that is accepted.
func ClassifyColumn(name string, values []any) ColumnRole {
	if isArtifactColumn(name) {
		return RoleIgnored
	}
	sample, ok := firstSample(values)
	if !ok {
		return RoleIgnored
	}
	return classifySample(sample)
}

func classifySample(sample any) ColumnRole {
	switch v := sample.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return RoleNumeric
	case time.Time:
		return RoleDate
	case string:
		s := strings.TrimSpace(v)
		// Dates first: a bare year also parses as a number.
		for _, p := range datePatterns {
			if p.MatchString(s) {
				return RoleDate
			}
		}
		if _, ok := parseNumber(s); ok {
			return RoleNumeric
		}
		return RoleDescriptive
	default:
		return RoleDescriptive
	}
}

func isArtifactColumn(name string) bool {
	trimmed := strings.TrimSpace(name)
	return trimmed == "" || trimmed == sheetColumn || strings.HasPrefix(trimmed, "Unnamed:")
}

func firstSample(values []any) (any, bool) {
	for _, v := range values {
		if !isNull(v) {
			return v, true
		}
	}
	return nil, false
}

func isNull(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case float64:
		return math.IsNaN(val)
	case time.Time:
		return val.IsZero()
	default:
		return false
	}
}

// number is a parsed numeric cell; whole values render without decimals.
type number struct {
	f     float64
	i     int64
	whole bool
}

// parseNumber accepts integers and decimals, as a spreadsheet export would write them.
func parseNumber(s string) (number, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return number{}, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return number{f: float64(i), i: i, whole: true}, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return number{}, false
	}
	return number{f: f}, true
}

// toNumber converts a numeric-column cell. Floats with no fraction render as integers.
func toNumber(v any) (number, bool) {
	switch val := v.(type) {
	case int:
		return number{f: float64(val), i: int64(val), whole: true}, true
	case int8:
		return toNumber(int64(val))
	case int16:
		return toNumber(int64(val))
	case int32:
		return toNumber(int64(val))
	case int64:
		return number{f: float64(val), i: val, whole: true}, true
	case uint:
		return toNumber(int64(val))
	case uint8:
		return toNumber(int64(val))
	case uint16:
		return toNumber(int64(val))
	case uint32:
		return toNumber(int64(val))
	case uint64:
		return toNumber(int64(val))
	case float32:
		return toNumber(float64(val))
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return number{}, false
		}
		if isWhole(val) {
			return number{f: val, i: int64(val), whole: true}, true
		}
		return number{f: val}, true
	case string:
		n, ok := parseNumber(val)
		if ok && !n.whole && isWhole(n.f) {
			n.i, n.whole = int64(n.f), true
		}
		return n, ok
	default:
		return number{}, false
	}
}

func isWhole(f float64) bool {
	return math.Abs(f) < 1e15 && f == math.Trunc(f)
}
