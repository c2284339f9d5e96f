package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/sheet-viz/internal/config"
	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/internal/store"
	"github.com/MKhiriev/sheet-viz/internal/utils"
	"github.com/MKhiriev/sheet-viz/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles registration, bcrypt credential checks, presence updates and
// the JWT token lifecycle.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// fileStorage lists the caller's files for the profile view.
	fileStorage store.FileStorage

	// passwordHashCost is the bcrypt work factor used at registration.
	passwordHashCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	// The auth cookie uses the same lifetime.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with security parameters from cfg.
func NewAuthService(userRepository store.UserRepository, fileStorage store.FileStorage, cfg config.App, logger *logger.Logger) AuthService {
	cost := cfg.PasswordHashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &authService{
		userRepository:   userRepository,
		fileStorage:      fileStorage,
		passwordHashCost: cost,
		tokenSignKey:     cfg.TokenSignKey,
		tokenIssuer:      cfg.TokenIssuer,
		tokenDuration:    cfg.TokenDuration,
		logger:           logger,
	}
}

// RegisterUser creates a new account with a bcrypt password hash.
// The email is stored trimmed and lower-cased; an empty role means
// models.RoleUser.
//
// Returns store.ErrEmailAlreadyExists (wrapped) when the email is taken.
func (a *authService) RegisterUser(ctx context.Context, creds models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		log.Error().Str("func", "authService.RegisterUser").Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), a.passwordHashCost)
	if err != nil {
		log.Err(err).Str("func", "authService.RegisterUser").Msg("password hashing failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	role := creds.Role
	if role == "" {
		role = models.RoleUser
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Email:        email,
		Name:         strings.TrimSpace(creds.Name),
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", registeredUser.UserID).Str("role", string(role)).Msg("user registered")
	return registeredUser, nil
}

// Login verifies the password and registers the login: the account goes
// online and, on its very first login, gets the welcome note and the
// sample file marker.
//
// Returns a wrapped store.ErrNoUserWasFound for unknown emails and
// ErrInvalidCredentials when the password does not match.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		log.Error().Str("func", "authService.Login").Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(creds.Password)); err != nil {
		log.Warn().Int64("user_id", foundUser.UserID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	loggedIn, err := a.userRepository.RegisterLogin(ctx, foundUser.UserID)
	if err != nil {
		log.Err(err).Int64("user_id", foundUser.UserID).Msg("registering login failed")
		return models.User{}, fmt.Errorf("registering login failed: %w", err)
	}

	return loggedIn, nil
}

// CreateToken issues a signed JWT carrying the user id and role.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, user.Role, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string. Any validation failure
// (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// GetProfile returns the caller's email, role, file references and notes.
// Sample file markers seeded on first login are listed after real files.
func (a *authService) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	log := logger.FromContext(ctx).With().Int64("user_id", userID).Logger()

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Msg("profile: user lookup failed")
		return models.Profile{}, fmt.Errorf("profile user lookup failed: %w", err)
	}

	files, err := a.fileStorage.List(ctx, userID)
	if err != nil {
		log.Err(err).Msg("profile: listing files failed")
		return models.Profile{}, fmt.Errorf("profile file listing failed: %w", err)
	}

	notes, err := a.userRepository.GetNotes(ctx, userID)
	if err != nil {
		log.Err(err).Msg("profile: listing notes failed")
		return models.Profile{}, fmt.Errorf("profile notes listing failed: %w", err)
	}

	profile := models.Profile{
		Email: user.Email,
		Role:  user.Role,
		Files: make([]models.FileRef, 0, len(files)+1),
		Notes: make([]string, 0, len(notes)),
	}
	for _, file := range files {
		profile.Files = append(profile.Files, models.FileRef{ID: file.ID, Name: file.OriginalName})
	}
	for _, note := range notes {
		switch note.Kind {
		case models.NoteKindSampleFile:
			profile.Files = append(profile.Files, models.FileRef{Name: note.Body, Sample: true})
		default:
			profile.Notes = append(profile.Notes, note.Body)
		}
	}

	return profile, nil
}

// Logout marks the user offline. Unknown users are not an error.
func (a *authService) Logout(ctx context.Context, userID int64) error {
	err := a.userRepository.SetStatus(ctx, userID, models.StatusOffline)
	if err != nil && !errors.Is(err, store.ErrNoUserWasFound) {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("logout failed")
		return fmt.Errorf("logout failed: %w", err)
	}

	return nil
}

func (a *authService) TokenDuration() time.Duration {
	return a.tokenDuration
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
