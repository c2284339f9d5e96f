// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Defaults applied to zero fields after all sources are merged.
const (
	DefaultTokenIssuer      = "sheet-viz"
	DefaultTokenDuration    = 24 * time.Hour
	DefaultPasswordHashCost = 10
	DefaultVersion          = "dev"
	DefaultLogLevel         = "debug"
	DefaultHTTPAddress      = "localhost:8080"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultShutdownTimeout  = 10 * time.Second
	DefaultMaxUploadSize    = 10 << 20
	DefaultAdminFanout      = 8
	DefaultSweepInterval    = time.Minute
)

func (cfg *StructuredConfig) setDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.PasswordHashCost == 0 {
		cfg.App.PasswordHashCost = DefaultPasswordHashCost
	}
	if cfg.App.Version == "" {
		cfg.App.Version = DefaultVersion
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}
	if cfg.Storage.Files.Backend == "" {
		cfg.Storage.Files.Backend = FilesBackendDB
	}
	if cfg.Storage.Files.MaxUploadSize == 0 {
		cfg.Storage.Files.MaxUploadSize = DefaultMaxUploadSize
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Workers.AdminFanout == 0 {
		cfg.Workers.AdminFanout = DefaultAdminFanout
	}
	if cfg.Workers.PresenceSweepInterval == 0 {
		cfg.Workers.PresenceSweepInterval = DefaultSweepInterval
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// server settings before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Files.MaxUploadSize < 0 {
		return fmt.Errorf("%w: negative upload size limit", ErrInvalidStorageConfigs)
	}

	switch cfg.Storage.Files.Backend {
	case FilesBackendDB:
	case FilesBackendFS:
		if cfg.Storage.Files.BinaryDataDir == "" {
			return fmt.Errorf("%w: fs backend requires a binary data directory", ErrInvalidStorageConfigs)
		}
	case FilesBackendMinIO:
		if cfg.Storage.MinIO.Endpoint == "" || cfg.Storage.MinIO.Bucket == "" {
			return fmt.Errorf("%w: minio backend requires endpoint and bucket", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown files backend %q", ErrInvalidStorageConfigs, cfg.Storage.Files.Backend)
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: empty token sign key", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration < 0 {
		return fmt.Errorf("%w: negative token duration", ErrInvalidAppConfigs)
	}
	if cfg.App.PasswordHashCost < 4 || cfg.App.PasswordHashCost > 31 {
		return fmt.Errorf("%w: password hash cost out of range", ErrInvalidAppConfigs)
	}

	if cfg.Server.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidServerConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
