package adapter

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/sheet-viz/internal/config"
	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/internal/utils"
	"github.com/MKhiriev/sheet-viz/models"
	"github.com/go-resty/resty/v2"
)

// hashHeader carries hex(HMAC-SHA256(hashKey, file bytes)) on uploads.
const hashHeader = "HashSHA256"

type httpServerAdapter struct {
	client *utils.HTTPClient

	hashKey string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises the base URL from adapterCfg.HTTPAddress and configures the
// underlying resty client with it and the request timeout. A token from the
// configuration is stored right away.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	a := &httpServerAdapter{
		client:  utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		hashKey: appCfg.HashKey,
		logger:  logger,
	}
	a.SetToken(adapterCfg.Token)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs creds to /api/auth/register
// and keeps the token from the response body.
func (h *httpServerAdapter) Register(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/register", creds)
}

// Login implements [ServerAdapter]. It POSTs creds to /api/auth/login. The
// Authorization header is preferred over the body token when both are sent.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/login", creds)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, creds models.Credentials) (models.AuthResponse, error) {
	var result models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		SetResult(&result).
		Post(path)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	if token, err := utils.ParseBearerToken(resp.Header().Get("Authorization")); err == nil {
		result.Token = token
	}
	h.SetToken(result.Token)

	return result, nil
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

func (h *httpServerAdapter) Profile(ctx context.Context) (models.Profile, error) {
	var profile models.Profile
	err := h.getJSON(ctx, "/api/auth/profile", &profile)
	return profile, err
}

// UploadFile implements [ServerAdapter]. It POSTs content as the "file" part
// of a multipart form to /api/files/upload.
func (h *httpServerAdapter) UploadFile(ctx context.Context, fileName string, content []byte) (models.UploadResponse, error) {
	var result models.UploadResponse

	req := h.authedRequest(ctx).
		SetFileReader("file", fileName, bytes.NewReader(content)).
		SetResult(&result)
	if h.hashKey != "" {
		req.SetHeader(hashHeader, utils.HashBytes(content, h.hashKey))
	}

	resp, err := req.Post("/api/files/upload")
	if err != nil {
		return models.UploadResponse{}, fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UploadResponse{}, err
	}

	return result, nil
}

func (h *httpServerAdapter) ListFiles(ctx context.Context) ([]models.File, error) {
	var files []models.File
	err := h.getJSON(ctx, "/api/files", &files)
	return files, err
}

func (h *httpServerAdapter) FileData(ctx context.Context, fileID string) ([]models.Row, error) {
	var result models.ParsedRowsResponse
	err := h.getJSON(ctx, "/api/files/filedata/"+url.PathEscape(fileID), &result)
	return result.Data, err
}

// DownloadFile implements [ServerAdapter]. The file name comes from
// Content-Disposition and falls back to the file id.
func (h *httpServerAdapter) DownloadFile(ctx context.Context, fileID string) (models.FileContent, error) {
	resp, err := h.authedRequest(ctx).Get("/api/files/download/" + url.PathEscape(fileID))
	if err != nil {
		return models.FileContent{}, fmt.Errorf("download request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.FileContent{}, err
	}

	name := fileID
	if _, params, err := mime.ParseMediaType(resp.Header().Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}

	return models.FileContent{
		FileName: name,
		MimeType: resp.Header().Get("Content-Type"),
		Content:  resp.Body(),
	}, nil
}

func (h *httpServerAdapter) DeleteFile(ctx context.Context, fileID string) error {
	resp, err := h.authedRequest(ctx).Delete("/api/files/" + url.PathEscape(fileID))
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Insights(ctx context.Context, fileID string) ([]string, error) {
	var result models.InsightsResponse
	err := h.getJSON(ctx, "/api/files/ai-insights/"+url.PathEscape(fileID), &result)
	return result.Insights, err
}

func (h *httpServerAdapter) RecordChart(ctx context.Context, entry models.ChartHistoryEntry) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(entry).
		Post("/api/chart-history")
	if err != nil {
		return fmt.Errorf("record chart request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) ChartHistory(ctx context.Context) ([]models.ChartHistoryEntry, error) {
	var entries []models.ChartHistoryEntry
	err := h.getJSON(ctx, "/api/chart-history", &entries)
	return entries, err
}

func (h *httpServerAdapter) ChartCount(ctx context.Context) (int64, error) {
	var result models.CountResponse
	err := h.getJSON(ctx, "/api/chart-history/count", &result)
	return result.Count, err
}

func (h *httpServerAdapter) UploadHistory(ctx context.Context) ([]models.UploadHistoryEntry, error) {
	var entries []models.UploadHistoryEntry
	err := h.getJSON(ctx, "/api/dashboard/history", &entries)
	return entries, err
}

func (h *httpServerAdapter) AdminOverview(ctx context.Context) ([]models.UserOverview, error) {
	var overview []models.UserOverview
	err := h.getJSON(ctx, "/api/admin/overview", &overview)
	return overview, err
}

func (h *httpServerAdapter) AdminUserFiles(ctx context.Context, userID int64) ([]models.File, error) {
	var files []models.File
	err := h.getJSON(ctx, "/api/admin/user-files/"+strconv.FormatInt(userID, 10), &files)
	return files, err
}

func (h *httpServerAdapter) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

// getJSON performs an authenticated GET and decodes the body into result.
func (h *httpServerAdapter) getJSON(ctx context.Context, path string, result any) error {
	resp, err := h.authedRequest(ctx).
		SetResult(result).
		Get(path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
