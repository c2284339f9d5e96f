package store

import (
	"context"
	"time"

	"github.com/MKhiriev/sheet-viz/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts, presence and first-login notes.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	// RegisterLogin marks the user online and seeds the first-login notes
	// exactly once, in one transaction.
	RegisterLogin(ctx context.Context, userID int64) (models.User, error)
	SetStatus(ctx context.Context, userID int64, status models.Status) error
	// ExpireSessions marks offline every online user last seen before the
	// given instant and returns how many rows changed.
	ExpireSessions(ctx context.Context, seenBefore time.Time) (int64, error)
	ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error)
	GetNotes(ctx context.Context, userID int64) ([]models.Note, error)
}

// FileRepository is the relational part of file persistence.
type FileRepository interface {
	// SaveFile inserts the file row, its parsed data and an upload history
	// row in one transaction.
	SaveFile(ctx context.Context, file models.File, parsed models.ParsedData) (models.File, error)
	ListFiles(ctx context.Context, userID int64) ([]models.File, error)
	GetFile(ctx context.Context, fileID string, userID int64) (models.File, error)
	GetParsedData(ctx context.Context, fileID string, userID int64) (models.ParsedData, error)
	// DeleteFile removes parsed data and the file row in one transaction and
	// returns the deleted row.
	DeleteFile(ctx context.Context, fileID string, userID int64) (models.File, error)
}

// ChartHistoryRepository is the append-only chart log.
type ChartHistoryRepository interface {
	Record(ctx context.Context, entry models.ChartHistoryEntry) (models.ChartHistoryEntry, error)
	List(ctx context.Context, userID int64) ([]models.ChartHistoryEntry, error)
	Count(ctx context.Context, userID int64) (int64, error)
	ListReferencedFileIDs(ctx context.Context, userID int64) ([]string, error)
}

// UploadHistoryRepository reads the append-only upload log.
type UploadHistoryRepository interface {
	List(ctx context.Context, userID int64) ([]models.UploadHistoryEntry, error)
}

// BlobStorage keeps raw uploaded bytes outside the database.
type BlobStorage interface {
	Put(ctx context.Context, key string, content []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// FileStorage combines [FileRepository] with an optional [BlobStorage].
type FileStorage interface {
	Save(ctx context.Context, file models.File, parsed models.ParsedData) (models.File, error)
	List(ctx context.Context, userID int64) ([]models.File, error)
	Get(ctx context.Context, fileID string, userID int64) (models.File, error)
	GetParsedData(ctx context.Context, fileID string, userID int64) (models.ParsedData, error)
	Delete(ctx context.Context, fileID string, userID int64) error
}
