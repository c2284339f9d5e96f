// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/models"
)

// fileStorage is the default implementation of [FileStorage].
//
// It orchestrates a [FileRepository] and an optional [BlobStorage]. When
// blobs is nil the raw bytes travel inside the files row (backend "db").
type fileStorage struct {
	repository FileRepository
	blobs      BlobStorage
	logger     *logger.Logger
}

// NewFileStorage wires repository and blobs together. A nil blobs keeps
// file content in the database.
func NewFileStorage(repository FileRepository, blobs BlobStorage, logger *logger.Logger) FileStorage {
	logger.Debug().Bool("external_blobs", blobs != nil).Msg("creating file storage")

	return &fileStorage{
		repository: repository,
		blobs:      blobs,
		logger:     logger,
	}
}

// Save persists the file and its parsed data atomically.
//
// With an external blob store the bytes are written first under the file
// id; if the database transaction then fails the blob is removed again.
func (s *fileStorage) Save(ctx context.Context, file models.File, parsed models.ParsedData) (models.File, error) {
	log := logger.FromContext(ctx)

	if s.blobs == nil {
		return s.repository.SaveFile(ctx, file, parsed)
	}

	file.StorageKey = file.ID
	if err := s.blobs.Put(ctx, file.StorageKey, file.Content, file.MimeType); err != nil {
		log.Err(err).Str("func", "fileStorage.Save").Str("file_id", file.ID).Msg("failed to store blob")
		return models.File{}, err
	}

	file.Content = nil

	saved, err := s.repository.SaveFile(ctx, file, parsed)
	if err != nil {
		// compensate: the rows were rolled back, drop the orphan blob
		if delErr := s.blobs.Delete(context.WithoutCancel(ctx), file.StorageKey); delErr != nil {
			log.Err(delErr).Str("func", "fileStorage.Save").Str("file_id", file.ID).Msg("failed to remove orphan blob")
		}
		return models.File{}, err
	}

	return saved, nil
}

func (s *fileStorage) List(ctx context.Context, userID int64) ([]models.File, error) {
	return s.repository.ListFiles(ctx, userID)
}

// Get returns the owned file with Content populated from whichever backend
// holds it.
func (s *fileStorage) Get(ctx context.Context, fileID string, userID int64) (models.File, error) {
	file, err := s.repository.GetFile(ctx, fileID, userID)
	if err != nil {
		return models.File{}, err
	}

	if file.StorageKey == "" || s.blobs == nil {
		return file, nil
	}

	content, err := s.blobs.Get(ctx, file.StorageKey)
	if errors.Is(err, ErrBlobNotFound) {
		logger.FromContext(ctx).Warn().Str("file_id", fileID).Msg("file row exists but blob is missing")
		return models.File{}, ErrFileNotFound
	}
	if err != nil {
		return models.File{}, err
	}

	file.Content = content
	return file, nil
}

func (s *fileStorage) GetParsedData(ctx context.Context, fileID string, userID int64) (models.ParsedData, error) {
	return s.repository.GetParsedData(ctx, fileID, userID)
}

// Delete removes the rows transactionally, then the blob. A blob that
// cannot be removed after the commit yields [ErrPartialDelete].
func (s *fileStorage) Delete(ctx context.Context, fileID string, userID int64) error {
	deleted, err := s.repository.DeleteFile(ctx, fileID, userID)
	if err != nil {
		return err
	}

	if deleted.StorageKey == "" || s.blobs == nil {
		return nil
	}

	if err = s.blobs.Delete(ctx, deleted.StorageKey); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "fileStorage.Delete").
			Str("file_id", fileID).
			Msg("rows deleted but blob removal failed")
		return fmt.Errorf("%w: %w", ErrPartialDelete, err)
	}

	return nil
}
