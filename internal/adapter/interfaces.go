// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the Go client of the sheet-viz REST API.
//
// [ServerAdapter] hides the transport from the command-line client. The
// package ships an HTTP implementation built on resty
// ([NewHTTPServerAdapter]).
//
// Non-2xx responses are mapped by mapHTTPError to the sentinel errors of
// errors.go, so callers can use [errors.Is] (e.g. [ErrNotFound] for 404,
// [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/sheet-viz/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the sheet-viz server.
// Implementations handle serialisation, the bearer token and error mapping.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" when none is set.
	Token() string

	// Register creates an account and stores the returned token.
	Register(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)

	// Login authenticates and stores the returned token.
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)

	// Logout marks the session owner offline.
	Logout(ctx context.Context) error

	Profile(ctx context.Context) (models.Profile, error)

	// UploadFile sends a spreadsheet as a multipart upload. When a hash key is
	// configured the HashSHA256 integrity header is attached.
	UploadFile(ctx context.Context, fileName string, content []byte) (models.UploadResponse, error)

	ListFiles(ctx context.Context) ([]models.File, error)
	FileData(ctx context.Context, fileID string) ([]models.Row, error)

	// DownloadFile returns the original bytes with the name and type taken
	// from the response headers.
	DownloadFile(ctx context.Context, fileID string) (models.FileContent, error)

	DeleteFile(ctx context.Context, fileID string) error
	Insights(ctx context.Context, fileID string) ([]string, error)

	RecordChart(ctx context.Context, entry models.ChartHistoryEntry) error
	ChartHistory(ctx context.Context) ([]models.ChartHistoryEntry, error)
	ChartCount(ctx context.Context) (int64, error)

	UploadHistory(ctx context.Context) ([]models.UploadHistoryEntry, error)

	AdminOverview(ctx context.Context) ([]models.UserOverview, error)
	AdminUserFiles(ctx context.Context, userID int64) ([]models.File, error)

	ServerVersion(ctx context.Context) (string, error)
}
