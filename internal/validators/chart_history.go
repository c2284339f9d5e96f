package validators

import (
	"context"
	"slices"

	"github.com/MKhiriev/sheet-viz/internal/utils"
	"github.com/MKhiriev/sheet-viz/models"
)

// validateChartHistoryEntry checks a chart record before it is written.
//
// Default validated fields: UserID, FileID, Dimension, XAxis. Presence of
// all required fields is checked first so that a half-filled body reports
// ErrMissingRequiredField rather than a format error.
func (v *RequestValidator) validateChartHistoryEntry(ctx context.Context, entry models.ChartHistoryEntry, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldFileID, FieldDimension, FieldXAxis}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
		case FieldFileID:
			if entry.FileID == "" {
				return ErrMissingRequiredField
			}
		case FieldDimension:
			if entry.Dimension == "" {
				return ErrMissingRequiredField
			}
		case FieldXAxis:
			if entry.XAxis == "" {
				return ErrMissingRequiredField
			}
		default:
			return ErrUnknownField
		}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if entry.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldFileID:
			if !utils.IsValidUUID(entry.FileID) {
				return ErrInvalidFileIDFormat
			}
		case FieldDimension:
			if !slices.Contains(models.Dimensions, entry.Dimension) {
				return ErrInvalidDimension
			}
		}
	}

	return nil
}
