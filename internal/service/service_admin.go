package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/internal/store"
	"github.com/MKhiriev/sheet-viz/models"
	"golang.org/x/sync/errgroup"
)

// defaultAdminFanout bounds concurrent per-user lookups when no limit is configured.
const defaultAdminFanout = 8

// adminService aggregates per-user file statistics for administrators.
type adminService struct {
	userRepository         store.UserRepository
	fileStorage            store.FileStorage
	chartHistoryRepository store.ChartHistoryRepository

	// sessionTTL turns stale "online" users offline at read time.
	sessionTTL time.Duration
	fanout     int
	now        func() time.Time

	logger *logger.Logger
}

func NewAdminService(
	userRepository store.UserRepository,
	fileStorage store.FileStorage,
	chartHistoryRepository store.ChartHistoryRepository,
	sessionTTL time.Duration,
	fanout int,
	logger *logger.Logger,
) AdminService {
	if fanout <= 0 {
		fanout = defaultAdminFanout
	}

	return &adminService{
		userRepository:         userRepository,
		fileStorage:            fileStorage,
		chartHistoryRepository: chartHistoryRepository,
		sessionTTL:             sessionTTL,
		fanout:                 fanout,
		now:                    time.Now,
		logger:                 logger,
	}
}

// Overview lists every regular user with the names of files that were
// charted at least once (worked) and the rest (untouched). The order
// follows the user listing. Any failing lookup fails the whole overview.
func (a *adminService) Overview(ctx context.Context) ([]models.UserOverview, error) {
	log := logger.FromContext(ctx)

	users, err := a.userRepository.ListUsersByRole(ctx, models.RoleUser)
	if err != nil {
		log.Err(err).Str("func", "adminService.Overview").Msg("listing users failed")
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	now := a.now()
	overview := make([]models.UserOverview, len(users))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(a.fanout)

	for i, user := range users {
		g.Go(func() error {
			entry, err := a.userOverview(gCtx, user, now)
			if err != nil {
				return err
			}
			overview[i] = entry
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		log.Err(err).Str("func", "adminService.Overview").Msg("building overview failed")
		return nil, err
	}

	return overview, nil
}

func (a *adminService) userOverview(ctx context.Context, user models.User, now time.Time) (models.UserOverview, error) {
	files, err := a.fileStorage.List(ctx, user.UserID)
	if err != nil {
		return models.UserOverview{}, fmt.Errorf("listing files of user %d failed: %w", user.UserID, err)
	}

	referenced, err := a.chartHistoryRepository.ListReferencedFileIDs(ctx, user.UserID)
	if err != nil {
		return models.UserOverview{}, fmt.Errorf("listing charted files of user %d failed: %w", user.UserID, err)
	}

	charted := make(map[string]struct{}, len(referenced))
	for _, id := range referenced {
		charted[id] = struct{}{}
	}

	name := user.Name
	if name == "" {
		name = "N/A"
	}

	entry := models.UserOverview{
		UserID:         user.UserID,
		Name:           name,
		Email:          user.Email,
		Role:           user.Role,
		Status:         user.PresenceAt(now, a.sessionTTL),
		TotalFiles:     len(files),
		WorkedFiles:    make([]string, 0, len(files)),
		UntouchedFiles: make([]string, 0, len(files)),
	}
	for _, file := range files {
		if _, ok := charted[file.ID]; ok {
			entry.WorkedFiles = append(entry.WorkedFiles, file.OriginalName)
		} else {
			entry.UntouchedFiles = append(entry.UntouchedFiles, file.OriginalName)
		}
	}

	return entry, nil
}

// UserFiles returns the files of userID, newest first, or a wrapped
// store.ErrNoUserWasFound when the account does not exist.
func (a *adminService) UserFiles(ctx context.Context, userID int64) ([]models.File, error) {
	if _, err := a.userRepository.FindUserByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	files, err := a.fileStorage.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing user files failed: %w", err)
	}

	return files, nil
}
