package validators

import (
	"context"

	"github.com/MKhiriev/sheet-viz/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldUserID targets the owner identifier of a request.
	FieldUserID = "user_id"

	// FieldCredentialsPresent only checks that email and password are non-empty.
	FieldCredentialsPresent = "credentials_present"

	// FieldEmail requires a parseable email address.
	FieldEmail = "email"

	// FieldPassword enforces MinPasswordLength.
	FieldPassword = "password"

	// FieldRole restricts the requested role.
	FieldRole = "role"

	// FieldFile requires non-empty upload content.
	FieldFile = "file"

	// FieldFileExtension requires a supported spreadsheet extension.
	FieldFileExtension = "file_extension"

	// FieldFileSize enforces the upload size limit.
	FieldFileSize = "file_size"

	FieldFileID    = "file_id"
	FieldDimension = "dimension"
	FieldXAxis     = "x_axis"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// RequestValidator validates credentials, uploads and chart history entries.
type RequestValidator struct {
	maxUploadSize    int64
	allowAdminSignup bool
}

// NewRequestValidator returns a Validator enforcing maxUploadSize (bytes, 0
// disables the check). Registration with the admin role is accepted only
// when allowAdminSignup is set.
func NewRequestValidator(maxUploadSize int64, allowAdminSignup bool) Validator {
	return &RequestValidator{
		maxUploadSize:    maxUploadSize,
		allowAdminSignup: allowAdminSignup,
	}
}

// Validate dispatches on the dynamic type of obj. Value and pointer forms of
// models.Credentials, models.UploadRequest and models.ChartHistoryEntry are
// supported; anything else yields ErrUnsupportedType.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(ctx, value, fields...)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value, fields...)

	case models.UploadRequest:
		return v.validateUploadRequest(ctx, value, fields...)
	case *models.UploadRequest:
		return v.validateUploadRequest(ctx, *value, fields...)

	case models.ChartHistoryEntry:
		return v.validateChartHistoryEntry(ctx, value, fields...)
	case *models.ChartHistoryEntry:
		return v.validateChartHistoryEntry(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}
