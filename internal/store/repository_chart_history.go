package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/models"
)

// chartHistoryRepository appends to and reads the "chart_history" table.
// No statement in this file updates or deletes a log row.
type chartHistoryRepository struct {
	*DB
	logger *logger.Logger
}

func NewChartHistoryRepository(db *DB, logger *logger.Logger) ChartHistoryRepository {
	return &chartHistoryRepository{
		DB:     db,
		logger: logger,
	}
}

// Record appends an entry and sets files.chart_generated in the same
// statement. A file the user does not own yields [ErrFileNotFound] and
// nothing is written.
func (c *chartHistoryRepository) Record(ctx context.Context, entry models.ChartHistoryEntry) (models.ChartHistoryEntry, error) {
	log := logger.FromContext(ctx)

	err := c.DB.QueryRowContext(ctx, recordChartHistory,
		entry.FileID,
		entry.UserID,
		entry.ChartType,
		string(entry.Dimension),
		entry.XAxis,
		entry.YAxis,
		entry.ZAxis,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		if isNotFound(err) {
			return models.ChartHistoryEntry{}, ErrFileNotFound
		}
		c.classify(log.Err(err), err).
			Str("func", "chartHistoryRepository.Record").
			Str("file_id", entry.FileID).
			Msg("failed to record chart history")
		return models.ChartHistoryEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return entry, nil
}

func (c *chartHistoryRepository) List(ctx context.Context, userID int64) ([]models.ChartHistoryEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListChartHistoryQuery(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		c.classify(log.Err(err), err).Str("func", "chartHistoryRepository.List").Int64("user_id", userID).Msg("failed to list chart history")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.ChartHistoryEntry, 0, 16)
	for rows.Next() {
		var entry models.ChartHistoryEntry
		err = rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.FileID,
			&entry.FileName,
			&entry.ChartType,
			&entry.Dimension,
			&entry.XAxis,
			&entry.YAxis,
			&entry.ZAxis,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func (c *chartHistoryRepository) Count(ctx context.Context, userID int64) (int64, error) {
	query, args, err := buildCountChartHistoryQuery(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = c.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		logger.FromContext(ctx).Err(err).Str("func", "chartHistoryRepository.Count").Msg("failed to count chart history")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// ListReferencedFileIDs returns the distinct file ids the user has charted.
func (c *chartHistoryRepository) ListReferencedFileIDs(ctx context.Context, userID int64) ([]string, error) {
	query, args, err := buildReferencedFileIDsQuery(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "chartHistoryRepository.ListReferencedFileIDs").Msg("query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make([]string, 0, 16)
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ids, nil
}
