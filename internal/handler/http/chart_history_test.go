package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/sheet-viz/internal/service"
	"github.com/MKhiriev/sheet-viz/internal/store"
	"github.com/MKhiriev/sheet-viz/internal/validators"
	"github.com/MKhiriev/sheet-viz/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordChart_Success(t *testing.T) {
	var recorded models.ChartHistoryEntry
	charts := &mockChartHistoryService{
		recordFn: func(_ context.Context, e models.ChartHistoryEntry) (models.ChartHistoryEntry, error) {
			recorded = e
			e.ID = 1
			return e, nil
		},
	}
	h := newTestHandler(t, service.Services{ChartHistoryService: charts})

	// a user id in the body is ignored in favour of the token
	body := `{"user":99,"fileId":"` + testFileID + `","chartType":"bar","dimension":"2D","xAxis":"month","yAxis":"sales"}`
	rec := serve(t, h, httptest.NewRequest(http.MethodPost, "/api/chart-history", strings.NewReader(body)), testUserToken)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Chart history saved", decodeBody[models.MessageResponse](t, rec.Body).Message)
	assert.Equal(t, testUserID, recorded.UserID)
	assert.Equal(t, testFileID, recorded.FileID)
	assert.Equal(t, models.Dimension2D, recorded.Dimension)
	assert.Equal(t, "sales", recorded.YAxis)
}

func TestRecordChart_Errors(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "invalid JSON",
			body:        `{"fileId":`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid JSON was passed",
		},
		{
			name:        "missing fields",
			body:        `{}`,
			err:         errors.Join(service.ErrInvalidDataProvided, validators.ErrMissingRequiredField),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing required fields",
		},
		{
			name:        "bad file id",
			body:        `{"fileId":"123","dimension":"2D","xAxis":"a"}`,
			err:         errors.Join(service.ErrInvalidDataProvided, validators.ErrInvalidFileIDFormat),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid fileId format",
		},
		{
			name:        "file not owned",
			body:        `{"fileId":"` + testFileID + `","dimension":"2D","xAxis":"a"}`,
			err:         store.ErrFileNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "File not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			charts := &mockChartHistoryService{
				recordFn: func(_ context.Context, _ models.ChartHistoryEntry) (models.ChartHistoryEntry, error) {
					return models.ChartHistoryEntry{}, tt.err
				},
			}
			h := newTestHandler(t, service.Services{ChartHistoryService: charts})

			rec := serve(t, h, httptest.NewRequest(http.MethodPost, "/api/chart-history", strings.NewReader(tt.body)), testUserToken)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMessage, decodeError(t, rec).Message)
		})
	}
}

func TestListCharts(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	charts := &mockChartHistoryService{
		listFn: func(_ context.Context, userID int64) ([]models.ChartHistoryEntry, error) {
			assert.Equal(t, testUserID, userID)
			return []models.ChartHistoryEntry{
				{ID: 2, FileID: testFileID, FileName: "sales.xlsx", Dimension: models.Dimension3D, CreatedAt: created},
				{ID: 1, FileID: testFileID, Dimension: models.Dimension1D, CreatedAt: created},
			}, nil
		},
	}
	h := newTestHandler(t, service.Services{ChartHistoryService: charts})

	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/chart-history", nil), testUserToken)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[[]models.ChartHistoryEntry](t, rec.Body)
	require.Len(t, got, 2)
	assert.Equal(t, "sales.xlsx", got[0].FileName)
	assert.Empty(t, got[1].FileName)
}

func TestListCharts_EmptyIsArray(t *testing.T) {
	charts := &mockChartHistoryService{
		listFn: func(_ context.Context, _ int64) ([]models.ChartHistoryEntry, error) { return nil, nil },
	}
	h := newTestHandler(t, service.Services{ChartHistoryService: charts})

	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/chart-history", nil), testUserToken)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCountCharts(t *testing.T) {
	charts := &mockChartHistoryService{
		countFn: func(_ context.Context, userID int64) (int64, error) {
			assert.Equal(t, testUserID, userID)
			return 4, nil
		},
	}
	h := newTestHandler(t, service.Services{ChartHistoryService: charts})

	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/chart-history/count", nil), testUserToken)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":4}`, rec.Body.String())
}

func TestCountCharts_Failure(t *testing.T) {
	charts := &mockChartHistoryService{
		countFn: func(_ context.Context, _ int64) (int64, error) { return 0, store.ErrExecutingQuery },
	}
	h := newTestHandler(t, service.Services{ChartHistoryService: charts})

	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/chart-history/count", nil), testUserToken)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Could not count chart history", decodeError(t, rec).Message)
}

// ─────────────────────────────────────────────
// upload history
// ─────────────────────────────────────────────

func TestUploadHistory(t *testing.T) {
	history := &mockUploadHistoryService{
		listFn: func(_ context.Context, userID int64) ([]models.UploadHistoryEntry, error) {
			assert.Equal(t, testUserID, userID)
			return []models.UploadHistoryEntry{{ID: 1, FileID: testFileID, FileName: "a.csv"}}, nil
		},
	}
	h := newTestHandler(t, service.Services{UploadHistoryService: history})

	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/dashboard/history", nil), testUserToken)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[[]models.UploadHistoryEntry](t, rec.Body)
	require.Len(t, got, 1)
	assert.Equal(t, "a.csv", got[0].FileName)
}

func TestUploadHistory_EmptyIsArray(t *testing.T) {
	history := &mockUploadHistoryService{
		listFn: func(_ context.Context, _ int64) ([]models.UploadHistoryEntry, error) { return nil, nil },
	}
	h := newTestHandler(t, service.Services{UploadHistoryService: history})

	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/dashboard/history", nil), testUserToken)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
