package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/sheet-viz/internal/config"
	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/internal/service"
	"github.com/MKhiriev/sheet-viz/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, creds models.Credentials) (models.User, error)
	loginFn        func(ctx context.Context, creds models.Credentials) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
	getProfileFn   func(ctx context.Context, userID int64) (models.Profile, error)
	logoutFn       func(ctx context.Context, userID int64) error
	tokenDuration  time.Duration
}

func (m *mockAuthService) RegisterUser(ctx context.Context, creds models.Credentials) (models.User, error) {
	return m.registerUserFn(ctx, creds)
}

func (m *mockAuthService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	return m.loginFn(ctx, creds)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn == nil {
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockAuthService) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	return m.getProfileFn(ctx, userID)
}

func (m *mockAuthService) Logout(ctx context.Context, userID int64) error {
	if m.logoutFn == nil {
		return nil
	}
	return m.logoutFn(ctx, userID)
}

func (m *mockAuthService) TokenDuration() time.Duration {
	return m.tokenDuration
}

type mockFileService struct {
	uploadFn        func(ctx context.Context, request models.UploadRequest) (models.UploadResult, error)
	listFn          func(ctx context.Context, userID int64) ([]models.File, error)
	getParsedRowsFn func(ctx context.Context, fileID string, userID int64) (models.ParsedData, error)
	downloadFn      func(ctx context.Context, fileID string, userID int64) (models.FileContent, error)
	deleteFn        func(ctx context.Context, fileID string, userID int64) error
	insightsFn      func(ctx context.Context, fileID string, userID int64) ([]string, error)
}

func (m *mockFileService) Upload(ctx context.Context, request models.UploadRequest) (models.UploadResult, error) {
	return m.uploadFn(ctx, request)
}

func (m *mockFileService) List(ctx context.Context, userID int64) ([]models.File, error) {
	return m.listFn(ctx, userID)
}

func (m *mockFileService) GetParsedRows(ctx context.Context, fileID string, userID int64) (models.ParsedData, error) {
	return m.getParsedRowsFn(ctx, fileID, userID)
}

func (m *mockFileService) Download(ctx context.Context, fileID string, userID int64) (models.FileContent, error) {
	return m.downloadFn(ctx, fileID, userID)
}

func (m *mockFileService) Delete(ctx context.Context, fileID string, userID int64) error {
	return m.deleteFn(ctx, fileID, userID)
}

func (m *mockFileService) Insights(ctx context.Context, fileID string, userID int64) ([]string, error) {
	return m.insightsFn(ctx, fileID, userID)
}

type mockChartHistoryService struct {
	recordFn func(ctx context.Context, entry models.ChartHistoryEntry) (models.ChartHistoryEntry, error)
	listFn   func(ctx context.Context, userID int64) ([]models.ChartHistoryEntry, error)
	countFn  func(ctx context.Context, userID int64) (int64, error)
}

func (m *mockChartHistoryService) Record(ctx context.Context, entry models.ChartHistoryEntry) (models.ChartHistoryEntry, error) {
	return m.recordFn(ctx, entry)
}

func (m *mockChartHistoryService) List(ctx context.Context, userID int64) ([]models.ChartHistoryEntry, error) {
	return m.listFn(ctx, userID)
}

func (m *mockChartHistoryService) Count(ctx context.Context, userID int64) (int64, error) {
	return m.countFn(ctx, userID)
}

type mockUploadHistoryService struct {
	listFn func(ctx context.Context, userID int64) ([]models.UploadHistoryEntry, error)
}

func (m *mockUploadHistoryService) List(ctx context.Context, userID int64) ([]models.UploadHistoryEntry, error) {
	return m.listFn(ctx, userID)
}

type mockAdminService struct {
	overviewFn  func(ctx context.Context) ([]models.UserOverview, error)
	userFilesFn func(ctx context.Context, userID int64) ([]models.File, error)
}

func (m *mockAdminService) Overview(ctx context.Context) ([]models.UserOverview, error) {
	return m.overviewFn(ctx)
}

func (m *mockAdminService) UserFiles(ctx context.Context, userID int64) ([]models.File, error) {
	return m.userFilesFn(ctx, userID)
}

// mockAppInfoService implements service.AppInfoService for testing.
type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const (
	testUserToken  = "user-token"
	testAdminToken = "admin-token"
	testUserID     = int64(7)
	testAdminID    = int64(1)
)

// tokenParser accepts the two fixed test tokens and rejects everything else.
func tokenParser(_ context.Context, s string) (models.Token, error) {
	switch s {
	case testUserToken:
		return models.Token{UserID: testUserID, Role: models.RoleUser}, nil
	case testAdminToken:
		return models.Token{UserID: testAdminID, Role: models.RoleAdmin}, nil
	}
	return models.Token{}, service.ErrTokenIsExpiredOrInvalid
}

func testConfig() config.StructuredConfig {
	var cfg config.StructuredConfig
	cfg.Storage.Files.MaxUploadSize = 1 << 20
	return cfg
}

// newTestHandler fills every missing service with an empty mock, so routes
// that are not under test still resolve.
func newTestHandler(t *testing.T, svcs service.Services) *Handler {
	t.Helper()
	return newTestHandlerWithConfig(t, svcs, testConfig())
}

func newTestHandlerWithConfig(t *testing.T, svcs service.Services, cfg config.StructuredConfig) *Handler {
	t.Helper()

	if svcs.AuthService == nil {
		svcs.AuthService = &mockAuthService{parseTokenFn: tokenParser}
	}
	if svcs.FileService == nil {
		svcs.FileService = &mockFileService{}
	}
	if svcs.ChartHistoryService == nil {
		svcs.ChartHistoryService = &mockChartHistoryService{}
	}
	if svcs.UploadHistoryService == nil {
		svcs.UploadHistoryService = &mockUploadHistoryService{}
	}
	if svcs.AdminService == nil {
		svcs.AdminService = &mockAdminService{}
	}
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &mockAppInfoService{version: "test"}
	}

	return NewHandler(&svcs, cfg, logger.Nop())
}

// serve runs req through the full router, with a bearer token when given.
func serve(t *testing.T, h *Handler, req *http.Request, token string) *httptest.ResponseRecorder {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(body).Decode(&v))
	return v
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	return decodeBody[models.ErrorResponse](t, rec.Body)
}
