package sheet

import "errors"

var (
	// ErrUnsupportedExtension is returned for files other than .xlsx, .xls and .csv.
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	// ErrNoSheet is returned when a workbook contains no sheets.
	ErrNoSheet = errors.New("no sheet found in workbook")
	// ErrEmptySheet is returned when the first sheet has no data rows.
	ErrEmptySheet = errors.New("sheet has no data")
	// ErrParse wraps decoder failures of the underlying format library.
	ErrParse = errors.New("failed to parse spreadsheet")
)
