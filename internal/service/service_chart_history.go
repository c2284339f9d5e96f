package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/internal/store"
	"github.com/MKhiriev/sheet-viz/models"
)

type chartHistoryService struct {
	repository store.ChartHistoryRepository
	logger     *logger.Logger
}

func NewChartHistoryService(repository store.ChartHistoryRepository, logger *logger.Logger) ChartHistoryService {
	return &chartHistoryService{
		repository: repository,
		logger:     logger,
	}
}

// Record appends entry to the caller's log and flags the file as charted.
// Files the caller does not own yield store.ErrFileNotFound.
func (c *chartHistoryService) Record(ctx context.Context, entry models.ChartHistoryEntry) (models.ChartHistoryEntry, error) {
	recorded, err := c.repository.Record(ctx, entry)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Int64("user_id", entry.UserID).
			Str("file_id", entry.FileID).
			Msg("recording chart history failed")
		return models.ChartHistoryEntry{}, fmt.Errorf("recording chart history failed: %w", err)
	}

	return recorded, nil
}

func (c *chartHistoryService) List(ctx context.Context, userID int64) ([]models.ChartHistoryEntry, error) {
	entries, err := c.repository.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing chart history failed: %w", err)
	}

	return entries, nil
}

func (c *chartHistoryService) Count(ctx context.Context, userID int64) (int64, error) {
	count, err := c.repository.Count(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("counting chart history failed: %w", err)
	}

	return count, nil
}
