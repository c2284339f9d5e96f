package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/sheet-viz/internal/validators"
	"github.com/MKhiriev/sheet-viz/models"
)

// AuthValidationService validates credentials before they reach the
// wrapped AuthService.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService(validator validators.Validator) AuthServiceWrapper {
	return &AuthValidationService{validator: validator}
}

func (v *AuthValidationService) RegisterUser(ctx context.Context, creds models.Credentials) (models.User, error) {
	if err := v.validator.Validate(ctx, creds); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.RegisterUser(ctx, creds)
}

func (v *AuthValidationService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	if err := v.validator.Validate(ctx, creds, validators.FieldCredentialsPresent); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Login(ctx, creds)
}

func (v *AuthValidationService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return v.inner.CreateToken(ctx, user)
}

func (v *AuthValidationService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return v.inner.ParseToken(ctx, tokenString)
}

func (v *AuthValidationService) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	return v.inner.GetProfile(ctx, userID)
}

func (v *AuthValidationService) Logout(ctx context.Context, userID int64) error {
	return v.inner.Logout(ctx, userID)
}

func (v *AuthValidationService) TokenDuration() time.Duration {
	return v.inner.TokenDuration()
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}

// FileValidationService rejects uploads without content, with an
// unsupported extension or above the size limit before any parsing happens.
type FileValidationService struct {
	inner     FileService
	validator validators.Validator
}

func NewFileValidationService(validator validators.Validator) FileServiceWrapper {
	return &FileValidationService{validator: validator}
}

func (v *FileValidationService) Upload(ctx context.Context, request models.UploadRequest) (models.UploadResult, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.UploadResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Upload(ctx, request)
}

func (v *FileValidationService) List(ctx context.Context, userID int64) ([]models.File, error) {
	return v.inner.List(ctx, userID)
}

func (v *FileValidationService) GetParsedRows(ctx context.Context, fileID string, userID int64) (models.ParsedData, error) {
	return v.inner.GetParsedRows(ctx, fileID, userID)
}

func (v *FileValidationService) Download(ctx context.Context, fileID string, userID int64) (models.FileContent, error) {
	return v.inner.Download(ctx, fileID, userID)
}

func (v *FileValidationService) Delete(ctx context.Context, fileID string, userID int64) error {
	return v.inner.Delete(ctx, fileID, userID)
}

func (v *FileValidationService) Insights(ctx context.Context, fileID string, userID int64) ([]string, error) {
	return v.inner.Insights(ctx, fileID, userID)
}

func (v *FileValidationService) Wrap(inner FileService) FileService {
	v.inner = inner
	return v
}

// ChartHistoryValidationService checks required fields, the file id format
// and the dimension before anything is written.
type ChartHistoryValidationService struct {
	inner     ChartHistoryService
	validator validators.Validator
}

func NewChartHistoryValidationService(validator validators.Validator) ChartHistoryServiceWrapper {
	return &ChartHistoryValidationService{validator: validator}
}

func (v *ChartHistoryValidationService) Record(ctx context.Context, entry models.ChartHistoryEntry) (models.ChartHistoryEntry, error) {
	if err := v.validator.Validate(ctx, entry); err != nil {
		return models.ChartHistoryEntry{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Record(ctx, entry)
}

func (v *ChartHistoryValidationService) List(ctx context.Context, userID int64) ([]models.ChartHistoryEntry, error) {
	return v.inner.List(ctx, userID)
}

func (v *ChartHistoryValidationService) Count(ctx context.Context, userID int64) (int64, error) {
	return v.inner.Count(ctx, userID)
}

func (v *ChartHistoryValidationService) Wrap(inner ChartHistoryService) ChartHistoryService {
	v.inner = inner
	return v
}
