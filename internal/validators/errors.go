package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID       = errors.New("invalid user ID")
	ErrMissingCredentials  = errors.New("all fields are required")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrInvalidRole         = errors.New("invalid role")
	ErrAdminSignupDisabled = errors.New("admin signup is disabled")

	ErrNoFileProvided    = errors.New("no file uploaded")
	ErrSizeLimitExceeded = errors.New("file exceeds the upload size limit")

	ErrMissingRequiredField = errors.New("missing required fields")
	ErrInvalidFileIDFormat  = errors.New("invalid fileId format")
	ErrInvalidDimension     = errors.New("invalid dimension")
)
