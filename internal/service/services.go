package service

import (
	"github.com/MKhiriev/sheet-viz/internal/config"
	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/internal/store"
	"github.com/MKhiriev/sheet-viz/internal/utils"
	"github.com/MKhiriev/sheet-viz/internal/validators"
)

type Services struct {
	AuthService          AuthService
	FileService          FileService
	ChartHistoryService  ChartHistoryService
	UploadHistoryService UploadHistoryService
	AdminService         AdminService
	AppInfoService       AppInfoService
}

// NewServices builds every service over storages. Auth, file and chart
// history services are wrapped with request validation.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	validator := validators.NewRequestValidator(cfg.Storage.Files.MaxUploadSize, cfg.App.AllowAdminSignup)

	authService := NewAuthService(storages.UserRepository, storages.FileStorage, cfg.App, logger)
	fileService := NewFileService(storages.FileStorage, utils.NewUUIDGenerator(), logger)
	chartHistoryService := NewChartHistoryService(storages.ChartHistoryRepository, logger)

	return &Services{
		AuthService:          NewAuthValidationService(validator).Wrap(authService),
		FileService:          NewFileValidationService(validator).Wrap(fileService),
		ChartHistoryService:  NewChartHistoryValidationService(validator).Wrap(chartHistoryService),
		UploadHistoryService: NewUploadHistoryService(storages.UploadHistoryRepository, logger),
		AdminService: NewAdminService(
			storages.UserRepository,
			storages.FileStorage,
			storages.ChartHistoryRepository,
			cfg.App.TokenDuration,
			cfg.Workers.AdminFanout,
			logger,
		),
		AppInfoService: appInfoService,
	}, nil
}
