package validators

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/MKhiriev/sheet-viz/models"
)

// validateCredentials checks registration and login bodies.
//
// Default validated fields: CredentialsPresent, Email, Password, Role.
// Login uses FieldCredentialsPresent alone.
func (v *RequestValidator) validateCredentials(ctx context.Context, creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCredentialsPresent, FieldEmail, FieldPassword, FieldRole}
	}

	for _, f := range fields {
		switch f {
		case FieldCredentialsPresent:
			if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
				return ErrMissingCredentials
			}
		case FieldEmail:
			email := strings.TrimSpace(creds.Email)
			if email == "" {
				return ErrMissingCredentials
			}
			addr, err := mail.ParseAddress(email)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidEmail, err)
			}
			// reject display-name forms like "Bob <bob@example.com>"
			if addr.Address != email {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if len(creds.Password) < MinPasswordLength {
				return ErrPasswordTooShort
			}
		case FieldRole:
			switch creds.Role {
			case "", models.RoleUser:
			case models.RoleAdmin:
				if !v.allowAdminSignup {
					return ErrAdminSignupDisabled
				}
			default:
				return ErrInvalidRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
