package sheet

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
)

// readXLS reads legacy BIFF workbooks.
func readXLS(content []byte) (name string, grid [][]string, err error) {
	// the decoder panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			name, grid, err = "", nil, fmt.Errorf("%w: %v", ErrParse, r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(content), "utf-8")
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if wb.NumSheets() == 0 {
		return "", nil, ErrNoSheet
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return "", nil, ErrNoSheet
	}

	grid = make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}

		cells := make([]string, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			cells[c] = row.Col(c)
		}
		grid = append(grid, cells)
	}

	return sheet.Name, grid, nil
}
