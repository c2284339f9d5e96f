package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/internal/mock"
	"github.com/MKhiriev/sheet-viz/internal/store"
	"github.com/MKhiriev/sheet-viz/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestChartHistoryService_Record(t *testing.T) {
	repo := mock.NewMockChartHistoryRepository(gomock.NewController(t))
	svc := NewChartHistoryService(repo, logger.Nop())

	entry := models.ChartHistoryEntry{UserID: 1, FileID: testFileID, Dimension: models.Dimension2D, XAxis: "x"}
	recorded := entry
	recorded.ID = 10
	recorded.CreatedAt = time.Now()

	repo.EXPECT().Record(gomock.Any(), entry).Return(recorded, nil)

	got, err := svc.Record(context.Background(), entry)

	require.NoError(t, err)
	assert.Equal(t, recorded, got)
}

func TestChartHistoryService_Record_NotOwned(t *testing.T) {
	repo := mock.NewMockChartHistoryRepository(gomock.NewController(t))
	svc := NewChartHistoryService(repo, logger.Nop())

	repo.EXPECT().Record(gomock.Any(), gomock.Any()).Return(models.ChartHistoryEntry{}, store.ErrFileNotFound)

	_, err := svc.Record(context.Background(), models.ChartHistoryEntry{UserID: 1, FileID: testFileID})

	assert.ErrorIs(t, err, store.ErrFileNotFound)
}

func TestChartHistoryService_ListAndCount(t *testing.T) {
	repo := mock.NewMockChartHistoryRepository(gomock.NewController(t))
	svc := NewChartHistoryService(repo, logger.Nop())
	entries := []models.ChartHistoryEntry{{ID: 2, FileName: ""}, {ID: 1, FileName: "a.csv"}}

	repo.EXPECT().List(gomock.Any(), int64(1)).Return(entries, nil)
	repo.EXPECT().Count(gomock.Any(), int64(1)).Return(int64(2), nil)

	got, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	count, err := svc.Count(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUploadHistoryService_List_SingleEntry(t *testing.T) {
	repo := mock.NewMockUploadHistoryRepository(gomock.NewController(t))
	svc := NewUploadHistoryService(repo, logger.Nop())
	entries := []models.UploadHistoryEntry{{ID: 1, FileName: "a.csv"}}

	repo.EXPECT().List(gomock.Any(), int64(3)).Return(entries, nil)

	got, err := svc.List(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, entries, got)
}
