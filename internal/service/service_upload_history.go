package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/internal/store"
	"github.com/MKhiriev/sheet-viz/models"
)

type uploadHistoryService struct {
	repository store.UploadHistoryRepository
	logger     *logger.Logger
}

func NewUploadHistoryService(repository store.UploadHistoryRepository, logger *logger.Logger) UploadHistoryService {
	return &uploadHistoryService{
		repository: repository,
		logger:     logger,
	}
}

func (u *uploadHistoryService) List(ctx context.Context, userID int64) ([]models.UploadHistoryEntry, error) {
	entries, err := u.repository.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing upload history failed: %w", err)
	}

	return entries, nil
}
