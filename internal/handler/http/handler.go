package http

import (
	"time"

	"github.com/MKhiriev/sheet-viz/internal/config"
	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/internal/service"
	"github.com/MKhiriev/sheet-viz/internal/utils"
)

type Handler struct {
	services *service.Services

	// hashKey enables the optional HashSHA256 upload check when non-empty.
	hashKey        string
	maxUploadSize  int64
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	if cfg.App.HashKey != "" {
		utils.InitHasherPool(cfg.App.HashKey)
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		hashKey:        cfg.App.HashKey,
		maxUploadSize:  cfg.Storage.Files.MaxUploadSize,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
}
