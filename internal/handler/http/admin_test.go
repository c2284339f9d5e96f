package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/sheet-viz/internal/service"
	"github.com/MKhiriev/sheet-viz/internal/store"
	"github.com/MKhiriev/sheet-viz/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminOverview(t *testing.T) {
	admin := &mockAdminService{
		overviewFn: func(_ context.Context) ([]models.UserOverview, error) {
			return []models.UserOverview{{
				UserID:         5,
				Name:           "N/A",
				Email:          "bob@example.com",
				Role:           models.RoleUser,
				Status:         models.StatusOffline,
				TotalFiles:     2,
				WorkedFiles:    []string{"a.csv"},
				UntouchedFiles: []string{"b.xlsx"},
			}}, nil
		},
	}
	h := newTestHandler(t, service.Services{AdminService: admin})

	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/admin/overview", nil), testAdminToken)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[[]models.UserOverview](t, rec.Body)
	require.Len(t, got, 1)
	assert.Equal(t, "N/A", got[0].Name)
	assert.Equal(t, []string{"a.csv"}, got[0].WorkedFiles)
	assert.Equal(t, []string{"b.xlsx"}, got[0].UntouchedFiles)
}

func TestAdminOverview_EmptyIsArray(t *testing.T) {
	admin := &mockAdminService{
		overviewFn: func(_ context.Context) ([]models.UserOverview, error) { return nil, nil },
	}
	h := newTestHandler(t, service.Services{AdminService: admin})

	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/admin/overview", nil), testAdminToken)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestAdminUserFiles(t *testing.T) {
	admin := &mockAdminService{
		userFilesFn: func(_ context.Context, userID int64) ([]models.File, error) {
			assert.Equal(t, int64(5), userID)
			return []models.File{{ID: testFileID, UserID: 5}}, nil
		},
	}
	h := newTestHandler(t, service.Services{AdminService: admin})

	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/admin/user-files/5", nil), testAdminToken)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[[]models.File](t, rec.Body)
	require.Len(t, got, 1)
	assert.Equal(t, testFileID, got[0].ID)
}

func TestAdminUserFiles_NotFound(t *testing.T) {
	admin := &mockAdminService{
		userFilesFn: func(_ context.Context, _ int64) ([]models.File, error) {
			return nil, store.ErrNoUserWasFound
		},
	}
	h := newTestHandler(t, service.Services{AdminService: admin})

	for _, path := range []string{"/api/admin/user-files/42", "/api/admin/user-files/abc", "/api/admin/user-files/-1"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(t, h, httptest.NewRequest(http.MethodGet, path, nil), testAdminToken)

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "User not found", decodeError(t, rec).Message)
		})
	}
}
