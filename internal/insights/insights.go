// Package insights summarizes the numeric columns of parsed spreadsheet rows.
package insights

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/MKhiriev/sheet-viz/models"
)

// Placeholder lines returned instead of column summaries.
const (
	NotEnoughData = "Not enough data."
	NoNumericData = "No numeric data found for insights."
)

// Compute summarizes every column of the first row. Column order is lexical
// since a row mapping carries no header order.
func Compute(rows []models.Row) []string {
	return ComputeOrdered(nil, rows)
}

// ComputeOrdered is Compute with an explicit column order. Keys of the first
// row missing from columns are appended in lexical order; names in columns
// absent from the first row are ignored.
func ComputeOrdered(columns []string, rows []models.Row) []string {
	if len(rows) < 2 {
		return []string{NotEnoughData}
	}

	insights := make([]string, 0, len(rows[0]))
	for _, column := range columnOrder(columns, rows[0]) {
		if line, ok := summarize(column, rows); ok {
			insights = append(insights, line)
		}
	}

	if len(insights) == 0 {
		return []string{NoNumericData}
	}

	return insights
}

func columnOrder(columns []string, first models.Row) []string {
	ordered := make([]string, 0, len(first))
	seen := make(map[string]struct{}, len(first))

	for _, column := range columns {
		if _, ok := first[column]; !ok {
			continue
		}
		if _, dup := seen[column]; dup {
			continue
		}
		seen[column] = struct{}{}
		ordered = append(ordered, column)
	}

	rest := make([]string, 0, len(first)-len(ordered))
	for key := range first {
		if _, ok := seen[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)

	return append(ordered, rest...)
}

func summarize(column string, rows []models.Row) (string, bool) {
	var (
		count  int
		sum    float64
		lo, hi float64
	)

	for _, row := range rows {
		value, ok := numeric(row[column])
		if !ok {
			continue
		}

		if count == 0 || value < lo {
			lo = value
		}
		if count == 0 || value > hi {
			hi = value
		}
		sum += value
		count++
	}

	if count == 0 {
		return "", false
	}

	// %.2f rounds ties to even; averages round half away from zero
	mean := math.Round(sum/float64(count)*100) / 100

	return fmt.Sprintf("Column \"%s\": Average = %.2f, Min = %s, Max = %s, Count = %d",
		column, mean, formatNumber(lo), formatNumber(hi), count), true
}

// numeric coerces a cell to float64. Booleans, NaN and infinities are not numbers.
func numeric(value any) (float64, bool) {
	var f float64

	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
