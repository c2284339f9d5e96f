package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sheet-viz/internal/sheet"
	"github.com/MKhiriev/sheet-viz/models"
)

// validateUploadRequest checks an upload before it is parsed.
//
// Default validated fields: UserID, File, FileExtension, FileSize.
func (v *RequestValidator) validateUploadRequest(ctx context.Context, request models.UploadRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldFile, FieldFileExtension, FieldFileSize}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if request.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldFile:
			if request.FileName == "" || len(request.Content) == 0 {
				return ErrNoFileProvided
			}
		case FieldFileExtension:
			if !sheet.IsSupported(request.FileName) {
				return fmt.Errorf("%w: %q", sheet.ErrUnsupportedExtension, sheet.Extension(request.FileName))
			}
		case FieldFileSize:
			if v.maxUploadSize > 0 && (int64(len(request.Content)) > v.maxUploadSize || request.Size > v.maxUploadSize) {
				return ErrSizeLimitExceeded
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
