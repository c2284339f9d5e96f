package service

import (
	"context"
	"time"

	"github.com/MKhiriev/sheet-viz/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, creds models.Credentials) (models.User, error)
	Login(ctx context.Context, creds models.Credentials) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	GetProfile(ctx context.Context, userID int64) (models.Profile, error)
	Logout(ctx context.Context, userID int64) error
	// TokenDuration is the lifetime shared by bearer tokens and the auth cookie.
	TokenDuration() time.Duration
}

// FileService covers upload, owner-scoped reads, download, delete and
// insights of spreadsheet files.
type FileService interface {
	Upload(ctx context.Context, request models.UploadRequest) (models.UploadResult, error)
	List(ctx context.Context, userID int64) ([]models.File, error)
	GetParsedRows(ctx context.Context, fileID string, userID int64) (models.ParsedData, error)
	Download(ctx context.Context, fileID string, userID int64) (models.FileContent, error)
	Delete(ctx context.Context, fileID string, userID int64) error
	Insights(ctx context.Context, fileID string, userID int64) ([]string, error)
}

type ChartHistoryService interface {
	Record(ctx context.Context, entry models.ChartHistoryEntry) (models.ChartHistoryEntry, error)
	List(ctx context.Context, userID int64) ([]models.ChartHistoryEntry, error)
	Count(ctx context.Context, userID int64) (int64, error)
}

type UploadHistoryService interface {
	List(ctx context.Context, userID int64) ([]models.UploadHistoryEntry, error)
}

// AdminService builds the admin roll-ups over all regular users.
type AdminService interface {
	Overview(ctx context.Context) ([]models.UserOverview, error)
	UserFiles(ctx context.Context, userID int64) ([]models.File, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// AuthServiceWrapper decorates an AuthService with additional behavior such
// as validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// FileServiceWrapper decorates a FileService.
type FileServiceWrapper interface {
	Wrap(FileService) FileService
}

// ChartHistoryServiceWrapper decorates a ChartHistoryService.
type ChartHistoryServiceWrapper interface {
	Wrap(ChartHistoryService) ChartHistoryService
}
