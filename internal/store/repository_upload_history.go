package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/models"
)

// uploadHistoryRepository reads "upload_history". Rows are appended by
// [fileRepository.SaveFile] inside the upload transaction.
type uploadHistoryRepository struct {
	*DB
}

func NewUploadHistoryRepository(db *DB) UploadHistoryRepository {
	return &uploadHistoryRepository{DB: db}
}

func (u *uploadHistoryRepository) List(ctx context.Context, userID int64) ([]models.UploadHistoryEntry, error) {
	query, args, err := buildListUploadHistoryQuery(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := u.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "uploadHistoryRepository.List").
			Int64("user_id", userID).
			Msg("failed to list upload history")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.UploadHistoryEntry, 0, 16)
	for rows.Next() {
		var entry models.UploadHistoryEntry
		if err = rows.Scan(&entry.ID, &entry.UserID, &entry.FileID, &entry.FileName, &entry.UploadedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}
