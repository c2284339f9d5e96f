package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sheet-viz/internal/config"
	"github.com/MKhiriev/sheet-viz/internal/logger"
)

// Storages groups every persistence component used by the service layer.
type Storages struct {
	UserRepository          UserRepository
	FileStorage             FileStorage
	ChartHistoryRepository  ChartHistoryRepository
	UploadHistoryRepository UploadHistoryRepository

	db *DB
}

// NewStorages connects to Postgres, applies migrations and builds the
// files backend selected by cfg.Files.Backend.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	blobs, err := newBlobStorage(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository:          NewUserRepository(db, log),
		FileStorage:             NewFileStorage(NewFileRepository(db, log), blobs, log),
		ChartHistoryRepository:  NewChartHistoryRepository(db, log),
		UploadHistoryRepository: NewUploadHistoryRepository(db),
		db:                      db,
	}, nil
}

// newBlobStorage returns nil for the "db" backend.
func newBlobStorage(ctx context.Context, cfg config.Storage) (BlobStorage, error) {
	switch cfg.Files.Backend {
	case "", config.FilesBackendDB:
		return nil, nil
	case config.FilesBackendFS:
		return NewFSBlobStorage(cfg.Files.BinaryDataDir)
	case config.FilesBackendMinIO:
		return NewMinIOBlobStorage(ctx, cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown files backend %q", cfg.Files.Backend)
	}
}

// Close releases the database connection pool.
func (s *Storages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
