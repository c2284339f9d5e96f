// Package sheet turns the first sheet of an uploaded spreadsheet into
// header-keyed row records.
//
// The first non-blank row is the header. Blank header cells are named
// "__EMPTY", "__EMPTY_1", ... and repeated names get "_1", "_2" suffixes.
// Fully blank data rows are skipped and blank cells are omitted from the
// row mapping. Cell text is inferred as a number, then a boolean, and
// otherwise kept as a string.
package sheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/sheet-viz/models"
)

// Supported extensions.
const (
	ExtXLSX = ".xlsx"
	ExtXLS  = ".xls"
	ExtCSV  = ".csv"
)

// Table is the parsed content of one sheet.
type Table struct {
	// Sheet is the sheet name; "" for csv input.
	Sheet string
	// Columns lists the row keys in header order.
	Columns []string
	Rows    []models.Row
}

// Extension returns the lower-cased extension of name.
func Extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// IsSupported reports whether name has a parseable extension.
func IsSupported(name string) bool {
	switch Extension(name) {
	case ExtXLSX, ExtXLS, ExtCSV:
		return true
	default:
		return false
	}
}

// ContentType returns the canonical MIME type for a supported extension and
// "application/octet-stream" otherwise.
func ContentType(name string) string {
	switch Extension(name) {
	case ExtXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ExtXLS:
		return "application/vnd.ms-excel"
	case ExtCSV:
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}

// Parse decodes content according to the extension of name and converts the
// first sheet to a [Table]. Later sheets are ignored.
func Parse(name string, content []byte) (Table, error) {
	var (
		sheetName string
		grid      [][]string
		err       error
	)

	switch Extension(name) {
	case ExtXLSX:
		sheetName, grid, err = readXLSX(content)
	case ExtXLS:
		sheetName, grid, err = readXLS(content)
	case ExtCSV:
		grid, err = readCSV(content)
	default:
		return Table{}, fmt.Errorf("%w: %q", ErrUnsupportedExtension, Extension(name))
	}
	if err != nil {
		return Table{}, err
	}

	table := fromGrid(grid)
	table.Sheet = sheetName
	if len(table.Rows) == 0 {
		return Table{}, ErrEmptySheet
	}

	return table, nil
}

// fromGrid builds a Table from raw cell text.
func fromGrid(grid [][]string) Table {
	headerIdx := -1
	width := 0
	for i, row := range grid {
		if headerIdx < 0 && !isBlankRow(row) {
			headerIdx = i
		}
		if headerIdx >= 0 && len(row) > width {
			width = len(row)
		}
	}
	if headerIdx < 0 {
		return Table{}
	}

	header := make([]string, width)
	copy(header, grid[headerIdx])
	keys := headerKeys(header)

	used := make([]bool, width)
	for i := range header {
		used[i] = header[i] != ""
	}

	rows := make([]models.Row, 0, len(grid)-headerIdx-1)
	for _, cells := range grid[headerIdx+1:] {
		if isBlankRow(cells) {
			continue
		}

		row := make(models.Row, len(cells))
		for i, cell := range cells {
			if cell == "" {
				continue
			}
			row[keys[i]] = inferValue(cell)
			used[i] = true
		}
		rows = append(rows, row)
	}

	columns := make([]string, 0, width)
	for i, key := range keys {
		if used[i] {
			columns = append(columns, key)
		}
	}

	return Table{Columns: columns, Rows: rows}
}

func isBlankRow(cells []string) bool {
	for _, cell := range cells {
		if cell != "" {
			return false
		}
	}
	return true
}

// headerKeys names every header cell, filling blanks and de-duplicating.
func headerKeys(header []string) []string {
	keys := make([]string, len(header))
	counts := make(map[string]int, len(header))

	for i, raw := range header {
		base := raw
		if base == "" {
			base = "__EMPTY"
		}

		key := base
		if n, seen := counts[base]; !seen {
			counts[base] = 1
		} else {
			for {
				key = fmt.Sprintf("%s_%d", base, n)
				n++
				if _, taken := counts[key]; !taken {
					break
				}
			}
			counts[base] = n
			counts[key] = 1
		}

		keys[i] = key
	}

	return keys
}
