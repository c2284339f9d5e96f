package sheet

import (
	"math"
	"strconv"
	"strings"
)

// inferValue converts cell text to float64 or bool when it reads as one.
// NaN and infinities stay strings.
func inferValue(cell string) any {
	trimmed := strings.TrimSpace(cell)

	if isDecimal(trimmed) {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}

	switch {
	case strings.EqualFold(trimmed, "true"):
		return true
	case strings.EqualFold(trimmed, "false"):
		return false
	}

	return cell
}

// isDecimal rejects the Go literal forms ParseFloat accepts but spreadsheets
// treat as text: hex mantissas ("0x1p3") and digit separators ("1_000").
func isDecimal(s string) bool {
	if strings.ContainsRune(s, '_') {
		return false
	}

	unsigned := strings.TrimLeft(s, "+-")
	return !strings.HasPrefix(unsigned, "0x") && !strings.HasPrefix(unsigned, "0X")
}
