package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/internal/service"
	"github.com/MKhiriev/sheet-viz/internal/sheet"
	"github.com/MKhiriev/sheet-viz/internal/store"
	"github.com/MKhiriev/sheet-viz/internal/utils"
	"github.com/MKhiriev/sheet-viz/internal/validators"
)

var errorStatusMap = map[error]int{
	ErrNoToken:                    http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrAccessDenied:               http.StatusForbidden,
	ErrInvalidJSON:                http.StatusBadRequest,
	ErrInvalidMultipart:           http.StatusBadRequest,
	ErrIntegrityCheckFailed:       http.StatusBadRequest,
	ErrInvalidUserID:              http.StatusNotFound,
	ErrRouteNotFound:              http.StatusNotFound,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	validators.ErrMissingCredentials:   http.StatusBadRequest,
	validators.ErrMissingRequiredField: http.StatusBadRequest,
	validators.ErrInvalidFileIDFormat:  http.StatusBadRequest,
	validators.ErrInvalidDimension:     http.StatusBadRequest,
	validators.ErrNoFileProvided:       http.StatusBadRequest,
	validators.ErrSizeLimitExceeded:    http.StatusBadRequest,

	sheet.ErrUnsupportedExtension: http.StatusBadRequest,
	sheet.ErrNoSheet:              http.StatusBadRequest,
	sheet.ErrEmptySheet:           http.StatusBadRequest,
	sheet.ErrParse:                http.StatusBadRequest,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrFileNotFound:       http.StatusNotFound,
	store.ErrPartialDelete:      http.StatusInternalServerError,
	store.ErrFileNotSaved:       http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// errorMessages is checked in order; the first match names the failure in
// the response body. Specific causes come before the wrappers that carry them.
var errorMessages = []struct {
	target  error
	message string
}{
	{validators.ErrMissingCredentials, "All fields are required"},
	{validators.ErrMissingRequiredField, "Missing required fields"},
	{validators.ErrInvalidFileIDFormat, "Invalid fileId format"},
	{validators.ErrInvalidDimension, "Invalid dimension"},
	{validators.ErrInvalidEmail, "Invalid email"},
	{validators.ErrPasswordTooShort, "Password must be at least 6 characters"},
	{validators.ErrInvalidRole, "Invalid role"},
	{validators.ErrAdminSignupDisabled, "Admin registration is disabled"},
	{validators.ErrNoFileProvided, "No file uploaded"},
	{validators.ErrSizeLimitExceeded, "File is too large"},
	{sheet.ErrUnsupportedExtension, "Only .xlsx, .xls and .csv files are allowed"},
	{sheet.ErrNoSheet, "No sheet found in Excel file."},
	{sheet.ErrEmptySheet, "Excel sheet has no data."},
	{sheet.ErrParse, "Could not parse the uploaded file"},
	{store.ErrEmailAlreadyExists, "User already exists"},
	{store.ErrNoUserWasFound, "User not found"},
	{store.ErrFileNotFound, "File not found"},
	{service.ErrInvalidCredentials, "Invalid credentials"},
	{service.ErrTokenIsExpiredOrInvalid, "Invalid or expired token"},
	{ErrNoToken, "Unauthorized: No token"},
	{ErrInvalidAuthorizationHeader, "Unauthorized: No token"},
	{ErrAccessDenied, "Access denied"},
	{ErrInvalidJSON, "Invalid JSON was passed"},
	{ErrInvalidMultipart, "No file uploaded"},
	{ErrIntegrityCheckFailed, "Integrity check failed"},
	{ErrInvalidUserID, "User not found"},
	{ErrRouteNotFound, "Route not found"},
	{service.ErrInvalidDataProvided, "Invalid data provided"},
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func messageFromError(err error, fallback string) string {
	for _, m := range errorMessages {
		if errors.Is(err, m.target) {
			return m.message
		}
	}
	return fallback
}

// writeError logs err and writes the {message, error?} envelope. The error
// text is exposed for client errors only; 5xx bodies carry fallback alone.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusFromError(err)
	log := logger.FromRequest(r)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg(fallback)
		utils.WriteError(w, fallback, "", status)
		return
	}

	log.Warn().Err(err).Int("status", status).Send()
	utils.WriteError(w, messageFromError(err, fallback), err.Error(), status)
}
