package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/sheet-viz/internal/service"
	"github.com/MKhiriev/sheet-viz/internal/sheet"
	"github.com/MKhiriev/sheet-viz/internal/store"
	"github.com/MKhiriev/sheet-viz/internal/validators"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"no token", ErrNoToken, http.StatusUnauthorized},
		{"access denied", ErrAccessDenied, http.StatusForbidden},
		{"wrapped validation", fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrInvalidDimension), http.StatusBadRequest},
		{"sheet error", fmt.Errorf("%w: bad zip", sheet.ErrParse), http.StatusBadRequest},
		{"duplicate email", store.ErrEmailAlreadyExists, http.StatusConflict},
		{"file not found", fmt.Errorf("get: %w", store.ErrFileNotFound), http.StatusNotFound},
		{"storage", fmt.Errorf("%w: %w", store.ErrExecutingQuery, errors.New("pg")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestMessageFromError_PrefersSpecificCause(t *testing.T) {
	err := fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrMissingRequiredField)

	assert.Equal(t, "Missing required fields", messageFromError(err, "fallback"))
	assert.Equal(t, "fallback", messageFromError(errors.New("x"), "fallback"))
}

func TestWriteError(t *testing.T) {
	t.Run("client error exposes detail", func(t *testing.T) {
		rec := httptest.NewRecorder()

		writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), store.ErrFileNotFound, "Could not load")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "File not found", body.Message)
		assert.Equal(t, store.ErrFileNotFound.Error(), body.Error)
	})

	t.Run("server error hides detail", func(t *testing.T) {
		rec := httptest.NewRecorder()

		writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("secret dsn"), "Could not load")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"message":"Could not load"}`, rec.Body.String())
	})
}
