package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChartRepo(t *testing.T) (ChartHistoryRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock := newTestDB(t)
	return NewChartHistoryRepository(newDBFromSQL(sqlDB), logger.Nop()), mock
}

func TestChartHistoryRecord_Success(t *testing.T) {
	repo, mock := newTestChartRepo(t)
	now := time.Now()

	entry := models.ChartHistoryEntry{
		UserID:    42,
		FileID:    testFileID,
		ChartType: "bar",
		Dimension: models.Dimension2D,
		XAxis:     "month",
		YAxis:     "revenue",
	}

	mock.ExpectQuery("WITH owned AS").
		WithArgs(testFileID, int64(42), "bar", "2D", "month", "revenue", "").
		WillReturnRows(sqlmock.NewRows([]string{"chart_id", "created_at"}).AddRow(int64(11), now))

	saved, err := repo.Record(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, int64(11), saved.ID)
	assert.Equal(t, now, saved.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChartHistoryRecord_NotOwned(t *testing.T) {
	repo, mock := newTestChartRepo(t)
	mock.ExpectQuery("WITH owned AS").WillReturnError(sql.ErrNoRows)

	_, err := repo.Record(context.Background(), models.ChartHistoryEntry{FileID: testFileID, UserID: 1, Dimension: "1D", XAxis: "x"})
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestChartHistoryRecord_DBError(t *testing.T) {
	repo, mock := newTestChartRepo(t)
	mock.ExpectQuery("WITH owned AS").WillReturnError(errors.New("boom"))

	_, err := repo.Record(context.Background(), models.ChartHistoryEntry{FileID: testFileID, UserID: 1, Dimension: "1D", XAxis: "x"})
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestChartHistoryList_JoinsFileName(t *testing.T) {
	repo, mock := newTestChartRepo(t)
	now := time.Now()

	mock.ExpectQuery("LEFT JOIN files f ON f.file_id = ch.file_id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"chart_id", "user_id", "file_id", "original_name", "chart_type", "dimension", "x_axis", "y_axis", "z_axis", "created_at",
		}).
			AddRow(int64(2), int64(42), testFileID, "sales.csv", "line", "2D", "m", "r", "", now).
			AddRow(int64(1), int64(42), "deleted-id", "", "pie", "1D", "c", "", "", now.Add(-time.Minute)))

	entries, err := repo.List(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "sales.csv", entries[0].FileName)
	assert.Empty(t, entries[1].FileName)
	assert.Equal(t, models.Dimension1D, entries[1].Dimension)
}

func TestChartHistoryCount(t *testing.T) {
	repo, mock := newTestChartRepo(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM chart_history WHERE user_id = \\$1").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	count, err := repo.Count(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestChartHistoryListReferencedFileIDs(t *testing.T) {
	repo, mock := newTestChartRepo(t)

	mock.ExpectQuery("SELECT DISTINCT file_id::text FROM chart_history").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"file_id"}).AddRow("f1").AddRow("f2"))

	ids, err := repo.ListReferencedFileIDs(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, []string{"f1", "f2"}, ids)
}

func TestUploadHistoryList(t *testing.T) {
	sqlDB, mock := newTestDB(t)
	repo := NewUploadHistoryRepository(newDBFromSQL(sqlDB))
	now := time.Now()

	mock.ExpectQuery("FROM upload_history WHERE user_id = \\$1 ORDER BY uploaded_at DESC").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"upload_id", "user_id", "file_id", "file_name", "uploaded_at"}).
			AddRow(int64(5), int64(42), testFileID, "sales.csv", now))

	entries, err := repo.List(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sales.csv", entries[0].FileName)
}

func TestUploadHistoryList_QueryError(t *testing.T) {
	sqlDB, mock := newTestDB(t)
	repo := NewUploadHistoryRepository(newDBFromSQL(sqlDB))

	mock.ExpectQuery("FROM upload_history").WillReturnError(errors.New("boom"))

	_, err := repo.List(context.Background(), 42)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}
