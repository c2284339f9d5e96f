// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/sheet-viz/internal/config"
	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/internal/utils"
	"github.com/MKhiriev/sheet-viz/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashKey = "testhashkey"

// newTestAdapter builds an httpServerAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL}
	appCfg := config.ClientApp{HashKey: testHashKey}

	a, err := NewHTTPServerAdapter(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── construction ─────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: "https://viz.example.com/", want: "https://viz.example.com"},
		{raw: "  http://127.0.0.1:9000  ", want: "http://127.0.0.1:9000"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_TokenFromConfig(t *testing.T) {
	a, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: "localhost:1", Token: " tok "}, config.ClientApp{}, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, "tok", a.Token())
}

// ── auth ─────────────────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice@example.com", creds.Email)

		w.Header().Set("Authorization", "Bearer header-token")
		writeJSON(t, w, http.StatusCreated, models.AuthResponse{
			Message: "User registered successfully",
			Token:   "header-token",
			User:    models.UserInfo{ID: 1, Email: creds.Email, Role: models.RoleUser},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Register(context.Background(), models.Credentials{Email: "alice@example.com", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), got.User.ID)
	assert.Equal(t, "header-token", a.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, models.ErrorResponse{Message: "User already exists", Error: "email already exists"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.Credentials{Email: "alice@example.com"})

	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "User already exists")
	assert.Empty(t, a.Token())
}

func TestLogin_TokenFromBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.AuthResponse{Message: "Login successful", Token: "body-token"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "body-token", got.Token)
	assert.Equal(t, "body-token", a.Token())
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusInternalServerError, ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, models.ErrorResponse{Message: "nope"})
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			_, err := a.Login(context.Background(), models.Credentials{})

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogout_ClearsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/logout", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, models.MessageResponse{Message: "Logged out"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")

	require.NoError(t, a.Logout(context.Background()))
	assert.Empty(t, a.Token())
}

// ── files ────────────────────────────────────────────────────────────────────

func TestUploadFile_SendsMultipartAndHash(t *testing.T) {
	content := []byte("a,b\n1,2\n")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/files/upload", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, utils.HashBytes(content, testHashKey), r.Header.Get(hashHeader))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		got, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, content, got)
		assert.Equal(t, "data.csv", header.Filename)

		writeJSON(t, w, http.StatusOK, models.UploadResponse{
			Message:    "File uploaded and parsed successfully",
			File:       models.File{ID: "f1", OriginalName: "data.csv"},
			ParsedRows: 1,
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")

	got, err := a.UploadFile(context.Background(), "data.csv", content)

	require.NoError(t, err)
	assert.Equal(t, "f1", got.File.ID)
	assert.Equal(t, 1, got.ParsedRows)
}

func TestListFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/files", r.URL.Path)
		writeJSON(t, w, http.StatusOK, []models.File{{ID: "f2"}, {ID: "f1"}})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).ListFiles(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "f2", got[0].ID)
}

func TestFileData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/files/filedata/f1", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.ParsedRowsResponse{Data: []models.Row{{"x": 1.0}}})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).FileData(context.Background(), "f1")

	require.NoError(t, err)
	assert.Equal(t, []models.Row{{"x": 1.0}}, got)
}

func TestDownloadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/files/download/f1", r.URL.Path)
		w.Header().Set("Content-Disposition", `attachment; filename="q1 sales.csv"`)
		w.Header().Set("Content-Type", "text/csv")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("a\n1\n"))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).DownloadFile(context.Background(), "f1")

	require.NoError(t, err)
	assert.Equal(t, "q1 sales.csv", got.FileName)
	assert.Equal(t, "text/csv", got.MimeType)
	assert.Equal(t, []byte("a\n1\n"), got.Content)
}

func TestDownloadFile_NameFallsBackToID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte{1, 2})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).DownloadFile(context.Background(), "f1")

	require.NoError(t, err)
	assert.Equal(t, "f1", got.FileName)
}

func TestDeleteFile_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/files/f1", r.URL.Path)
		writeJSON(t, w, http.StatusNotFound, models.ErrorResponse{Message: "File not found"})
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).DeleteFile(context.Background(), "f1")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsights(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/files/ai-insights/f1", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.InsightsResponse{Insights: []string{"Not enough data."}})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Insights(context.Background(), "f1")

	require.NoError(t, err)
	assert.Equal(t, []string{"Not enough data."}, got)
}

// ── chart history / dashboard ────────────────────────────────────────────────

func TestRecordChart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chart-history", r.URL.Path)

		var entry models.ChartHistoryEntry
		require.NoError(t, json.NewDecoder(r.Body).Decode(&entry))
		assert.Equal(t, models.Dimension3D, entry.Dimension)

		writeJSON(t, w, http.StatusCreated, models.MessageResponse{Message: "Chart history saved"})
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).RecordChart(context.Background(), models.ChartHistoryEntry{
		FileID: "f1", ChartType: "scatter", Dimension: models.Dimension3D, XAxis: "a", YAxis: "b", ZAxis: "c",
	})

	assert.NoError(t, err)
}

func TestChartHistoryAndCount(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chart-history", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []models.ChartHistoryEntry{{ID: 2}, {ID: 1}})
	})
	mux.HandleFunc("/api/chart-history/count", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.CountResponse{Count: 2})
	})
	mux.HandleFunc("/api/dashboard/history", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []models.UploadHistoryEntry{{ID: 9, FileName: "a.csv"}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	entries, err := a.ChartHistory(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	count, err := a.ChartCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	uploads, err := a.UploadHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, uploads, 1)
	assert.Equal(t, "a.csv", uploads[0].FileName)
}

// ── admin / version ──────────────────────────────────────────────────────────

func TestAdminEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/overview", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []models.UserOverview{{UserID: 5, Name: "N/A"}})
	})
	mux.HandleFunc("/api/admin/user-files/5", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []models.File{{ID: "f1", UserID: 5}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	overview, err := a.AdminOverview(context.Background())
	require.NoError(t, err)
	require.Len(t, overview, 1)
	assert.Equal(t, "N/A", overview[0].Name)

	files, err := a.AdminUserFiles(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "f1", files[0].ID)
}

func TestAdminOverview_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusForbidden, models.ErrorResponse{Message: "Access denied"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).AdminOverview(context.Background())

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestServerVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version/", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("1.4.0"))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).ServerVersion(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.4.0", got)
}

// ── error mapping ────────────────────────────────────────────────────────────

func TestErrorText(t *testing.T) {
	assert.Equal(t, "File not found (file not found)", errorText([]byte(`{"message":"File not found","error":"file not found"}`)))
	assert.Equal(t, "Upload failed", errorText([]byte(`{"message":"Upload failed"}`)))
	assert.Equal(t, "plain body", errorText([]byte("  plain body \n")))
}
