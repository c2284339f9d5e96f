package sheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readXLSX returns the first sheet's cells as raw values. Boolean cells are
// rendered as TRUE/FALSE so they are not mistaken for 1/0.
func readXLSX(content []byte) (string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, ErrNoSheet
	}
	name := sheets[0]

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	for r, row := range rows {
		for c, value := range row {
			if value != "0" && value != "1" {
				continue
			}

			cell, cellErr := excelize.CoordinatesToCellName(c+1, r+1)
			if cellErr != nil {
				continue
			}

			if typ, typeErr := f.GetCellType(name, cell); typeErr == nil && typ == excelize.CellTypeBool {
				if value == "1" {
					row[c] = "TRUE"
				} else {
					row[c] = "FALSE"
				}
			}
		}
	}

	return name, rows, nil
}
