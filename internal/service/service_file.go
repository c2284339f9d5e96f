// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sheet-viz/internal/insights"
	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/internal/sheet"
	"github.com/MKhiriev/sheet-viz/internal/store"
	"github.com/MKhiriev/sheet-viz/internal/utils"
	"github.com/MKhiriev/sheet-viz/models"
)

// IDGenerator issues identifiers for new files.
type IDGenerator interface {
	Generate() string
}

// fileService is the concrete implementation of FileService.
//
// Every read and delete is owner-scoped: a file that does not exist and a
// file owned by somebody else are both reported as store.ErrFileNotFound.
type fileService struct {
	fileStorage store.FileStorage
	ids         IDGenerator

	logger *logger.Logger
}

func NewFileService(fileStorage store.FileStorage, ids IDGenerator, logger *logger.Logger) FileService {
	return &fileService{
		fileStorage: fileStorage,
		ids:         ids,
		logger:      logger,
	}
}

// Upload parses the first sheet of the request and stores the file, its
// parsed rows and an upload history entry atomically.
func (s *fileService) Upload(ctx context.Context, request models.UploadRequest) (models.UploadResult, error) {
	log := logger.FromContext(ctx).With().
		Int64("user_id", request.UserID).
		Str("file_name", request.FileName).
		Logger()

	table, err := sheet.Parse(request.FileName, request.Content)
	if err != nil {
		log.Warn().Err(err).Msg("spreadsheet parsing failed")
		return models.UploadResult{}, fmt.Errorf("spreadsheet parsing failed: %w", err)
	}

	mimeType := request.MimeType
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = sheet.ContentType(request.FileName)
	}

	file := models.File{
		ID:           s.ids.Generate(),
		UserID:       request.UserID,
		OriginalName: request.FileName,
		MimeType:     mimeType,
		Size:         int64(len(request.Content)),
		Content:      request.Content,
	}
	parsed := models.ParsedData{
		FileID:  file.ID,
		UserID:  request.UserID,
		Columns: table.Columns,
		Rows:    table.Rows,
	}

	saved, err := s.fileStorage.Save(ctx, file, parsed)
	if err != nil {
		log.Err(err).Str("file_id", file.ID).Msg("saving uploaded file failed")
		return models.UploadResult{}, fmt.Errorf("saving uploaded file failed: %w", err)
	}

	log.Info().Str("file_id", saved.ID).Int("rows", len(table.Rows)).Msg("file uploaded")
	return models.UploadResult{File: saved, ParsedRows: len(table.Rows)}, nil
}

// List returns the caller's files, newest first.
func (s *fileService) List(ctx context.Context, userID int64) ([]models.File, error) {
	files, err := s.fileStorage.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing files failed: %w", err)
	}

	return files, nil
}

func (s *fileService) GetParsedRows(ctx context.Context, fileID string, userID int64) (models.ParsedData, error) {
	if !utils.IsValidUUID(fileID) {
		return models.ParsedData{}, store.ErrFileNotFound
	}

	parsed, err := s.fileStorage.GetParsedData(ctx, fileID, userID)
	if err != nil {
		return models.ParsedData{}, fmt.Errorf("reading parsed data failed: %w", err)
	}

	return parsed, nil
}

// Download returns the original bytes of an owned file.
func (s *fileService) Download(ctx context.Context, fileID string, userID int64) (models.FileContent, error) {
	if !utils.IsValidUUID(fileID) {
		return models.FileContent{}, store.ErrFileNotFound
	}

	file, err := s.fileStorage.Get(ctx, fileID, userID)
	if err != nil {
		return models.FileContent{}, fmt.Errorf("reading file failed: %w", err)
	}

	mimeType := file.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return models.FileContent{
		FileName: file.OriginalName,
		MimeType: mimeType,
		Content:  file.Content,
	}, nil
}

// Delete removes an owned file together with its parsed data. Chart and
// upload history entries are kept.
func (s *fileService) Delete(ctx context.Context, fileID string, userID int64) error {
	if !utils.IsValidUUID(fileID) {
		return store.ErrFileNotFound
	}

	if err := s.fileStorage.Delete(ctx, fileID, userID); err != nil {
		return fmt.Errorf("deleting file failed: %w", err)
	}

	logger.FromContext(ctx).Info().Str("file_id", fileID).Int64("user_id", userID).Msg("file deleted")
	return nil
}

// Insights summarizes the numeric columns of an owned file.
func (s *fileService) Insights(ctx context.Context, fileID string, userID int64) ([]string, error) {
	parsed, err := s.GetParsedRows(ctx, fileID, userID)
	if err != nil {
		return nil, err
	}

	return insights.ComputeOrdered(parsed.Columns, parsed.Rows), nil
}
