package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/internal/utils"
	"github.com/MKhiriev/sheet-viz/models"
)

// tokenCookieName is the cookie set on login and cleared on logout.
const tokenCookieName = "token"

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// The token is read from "Authorization: Bearer <token>" and, when that
// header is absent, from the "token" cookie. On success the caller's id and
// role are stored in the request context via [utils.WithPrincipal].
//
// Missing, malformed, expired or otherwise invalid tokens are rejected with
// HTTP 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := tokenFromRequest(r)
		if err != nil {
			writeError(w, r, err, "Unauthorized")
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err, "Unauthorized")
			return
		}

		ctx = utils.WithPrincipal(ctx, token.UserID, token.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly must be chained after auth. Callers without the admin role get
// HTTP 403 Forbidden.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := utils.GetRoleFromContext(r.Context())
		if !ok || role != models.RoleAdmin {
			logger.FromRequest(r).Warn().Str("role", string(role)).Msg("non-admin access to admin route")
			writeError(w, r, ErrAccessDenied, "Access denied")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// tokenFromRequest returns the bearer token of r, falling back to the
// "token" cookie when no Authorization header is sent.
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] if the header is present but is not
//     "Bearer <token>".
//   - [ErrNoToken] if neither the header nor the cookie carry a token.
func tokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return "", ErrInvalidAuthorizationHeader
		}
		return token, nil
	}

	if cookie, err := r.Cookie(tokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", ErrNoToken
}
