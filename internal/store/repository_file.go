// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/models"
	"github.com/jackc/pgerrcode"
)

// fileRepository is the PostgreSQL-backed implementation of
// [FileRepository]. It owns the "files", "parsed_data" and
// "upload_history" tables.
//
// Every query is scoped by user_id, so a file that exists but belongs to
// someone else is indistinguishable from a missing one.
type fileRepository struct {
	*DB
	logger *logger.Logger
}

// NewFileRepository constructs a [FileRepository] backed by db.
func NewFileRepository(db *DB, logger *logger.Logger) FileRepository {
	return &fileRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveFile inserts the file row, its parsed data and an upload history row
// inside a single transaction. Either all three rows exist afterwards or
// none does.
func (f *fileRepository) SaveFile(ctx context.Context, file models.File, parsed models.ParsedData) (models.File, error) {
	log := logger.FromContext(ctx).With().
		Str("file_id", file.ID).
		Int64("user_id", file.UserID).
		Logger()

	columnsJSON, err := json.Marshal(nonNilColumns(parsed.Columns))
	if err != nil {
		return models.File{}, fmt.Errorf("%w: %w", ErrEncodingJSON, err)
	}
	rowsJSON, err := json.Marshal(nonNilRows(parsed.Rows))
	if err != nil {
		return models.File{}, fmt.Errorf("%w: %w", ErrEncodingJSON, err)
	}

	tx, err := f.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "fileRepository.SaveFile").Msg("failed to begin transaction")
		return models.File{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, insertFile,
		file.ID,
		file.UserID,
		file.OriginalName,
		file.MimeType,
		file.Size,
		file.Content,
		file.StorageKey,
	).Scan(&file.CreatedAt, &file.UpdatedAt)
	if err != nil {
		f.classify(log.Err(err), err).Str("func", "fileRepository.SaveFile").Msg("failed to insert file")
		return models.File{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	result, err := tx.ExecContext(ctx, insertParsedData, file.ID, file.UserID, string(columnsJSON), string(rowsJSON), len(parsed.Rows))
	if err != nil {
		f.classify(log.Err(err), err).Str("func", "fileRepository.SaveFile").Msg("failed to insert parsed data")
		return models.File{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		log.Error().Str("func", "fileRepository.SaveFile").Msg("parsed data was not saved")
		return models.File{}, ErrFileNotSaved
	}

	if _, err = tx.ExecContext(ctx, insertUploadHistory, file.UserID, file.ID, file.OriginalName); err != nil {
		f.classify(log.Err(err), err).Str("func", "fileRepository.SaveFile").Msg("failed to insert upload history")
		return models.File{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "fileRepository.SaveFile").Msg("failed to commit transaction")
		return models.File{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "fileRepository.SaveFile").
		Int("rows", len(parsed.Rows)).
		Msg("file saved")

	file.Content = nil
	return file, nil
}

// ListFiles returns file metadata owned by userID, newest first.
func (f *fileRepository) ListFiles(ctx context.Context, userID int64) ([]models.File, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListFilesQuery(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "fileRepository.ListFiles").Int64("user_id", userID).Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := f.DB.QueryContext(ctx, query, args...)
	if err != nil {
		f.classify(log.Err(err), err).
			Str("func", "fileRepository.ListFiles").
			Int64("user_id", userID).
			Msg("failed to execute query for listing files")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	files := make([]models.File, 0, 16)
	for rows.Next() {
		var file models.File
		if scanErr := rows.Scan(fileScanTargets(&file)...); scanErr != nil {
			log.Err(scanErr).Str("func", "fileRepository.ListFiles").Msg("failed to scan file row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		files = append(files, file)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "fileRepository.ListFiles").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return files, nil
}

// GetFile returns one owned file including the inline content column.
func (f *fileRepository) GetFile(ctx context.Context, fileID string, userID int64) (models.File, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetFileQuery(ctx, fileID, userID)
	if err != nil {
		return models.File{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var file models.File
	err = f.DB.QueryRowContext(ctx, query, args...).Scan(append(fileScanTargets(&file), &file.Content)...)
	if err != nil {
		if isNotFound(err) {
			return models.File{}, ErrFileNotFound
		}
		f.classify(log.Err(err), err).Str("func", "fileRepository.GetFile").Str("file_id", fileID).Msg("failed to get file")
		return models.File{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return file, nil
}

// GetParsedData reads the parsed rows with one owner-scoped query.
func (f *fileRepository) GetParsedData(ctx context.Context, fileID string, userID int64) (models.ParsedData, error) {
	log := logger.FromContext(ctx)

	var (
		parsed      models.ParsedData
		columnsJSON []byte
		rowsJSON    []byte
	)

	err := f.DB.QueryRowContext(ctx, getParsedData, fileID, userID).Scan(
		&parsed.ID,
		&parsed.FileID,
		&parsed.UserID,
		&columnsJSON,
		&rowsJSON,
		&parsed.CreatedAt,
	)
	if err != nil {
		if isNotFound(err) {
			return models.ParsedData{}, ErrFileNotFound
		}
		f.classify(log.Err(err), err).Str("func", "fileRepository.GetParsedData").Str("file_id", fileID).Msg("failed to get parsed data")
		return models.ParsedData{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = json.Unmarshal(columnsJSON, &parsed.Columns); err != nil {
		return models.ParsedData{}, fmt.Errorf("%w: %w", ErrEncodingJSON, err)
	}
	if err = json.Unmarshal(rowsJSON, &parsed.Rows); err != nil {
		return models.ParsedData{}, fmt.Errorf("%w: %w", ErrEncodingJSON, err)
	}
	parsed.Rows = nonNilRows(parsed.Rows)

	return parsed, nil
}

// DeleteFile removes the parsed data and then the file row in a single
// transaction. It returns the deleted row so the caller can clean up any
// blob referenced by StorageKey.
func (f *fileRepository) DeleteFile(ctx context.Context, fileID string, userID int64) (models.File, error) {
	log := logger.FromContext(ctx).With().
		Str("file_id", fileID).
		Int64("user_id", userID).
		Logger()

	tx, err := f.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "fileRepository.DeleteFile").Msg("failed to begin transaction")
		return models.File{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteParsedData, fileID, userID); err != nil {
		if isNotFound(err) {
			return models.File{}, ErrFileNotFound
		}
		log.Err(err).Str("func", "fileRepository.DeleteFile").Msg("failed to delete parsed data")
		return models.File{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	var deleted models.File
	if err = tx.QueryRowContext(ctx, deleteFile, fileID, userID).Scan(fileScanTargets(&deleted)...); err != nil {
		if isNotFound(err) {
			log.Warn().Str("func", "fileRepository.DeleteFile").Msg("file not found")
			return models.File{}, ErrFileNotFound
		}
		log.Err(err).Str("func", "fileRepository.DeleteFile").Msg("failed to delete file")
		return models.File{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "fileRepository.DeleteFile").Msg("failed to commit transaction")
		return models.File{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().Str("func", "fileRepository.DeleteFile").Msg("file deleted")
	return deleted, nil
}

func fileScanTargets(file *models.File) []any {
	return []any{
		&file.ID,
		&file.UserID,
		&file.OriginalName,
		&file.MimeType,
		&file.Size,
		&file.StorageKey,
		&file.ChartGenerated,
		&file.CreatedAt,
		&file.UpdatedAt,
	}
}

// isNotFound treats an empty result and a malformed uuid literal alike.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || postgresError(err) == pgerrcode.InvalidTextRepresentation
}

func nonNilColumns(columns []string) []string {
	if columns == nil {
		return []string{}
	}
	return columns
}

func nonNilRows(rows []models.Row) []models.Row {
	if rows == nil {
		return []models.Row{}
	}
	return rows
}
