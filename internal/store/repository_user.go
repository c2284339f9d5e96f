package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, presence and the first-login notes
// stored in the "users" and "user_notes" tables.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user       models.User
		lastSeenAt sql.NullTime
	)

	err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.FirstLogin,
		&lastSeenAt,
		&user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	if lastSeenAt.Valid {
		t := lastSeenAt.Time
		user.LastSeenAt = &t
	}

	return user, nil
}

// CreateUser persists a new account and returns it with server-assigned
// fields (UserID, CreatedAt, defaults for status and first_login).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Email, user.Name, user.PasswordHash, string(user.Role))

	// create user in db
	if err := row.Err(); err != nil {
		r.db.classify(log.Err(err), err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	// scan saved user from db
	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return created, nil
}

// FindUserByEmail returns [ErrNoUserWasFound] when no account has the email.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByEmail", findUserByEmail, email)
}

// FindUserByID returns [ErrNoUserWasFound] when the id is unknown.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", findUserByID, userID)
}

func (r *userRepository) findOne(ctx context.Context, funcName, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug().Str("func", funcName).Msg("user not found")
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		r.db.classify(log.Err(err), err).Str("func", funcName).Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// RegisterLogin runs in one transaction: it locks the user row, marks the
// user online and, if this is the first login, seeds the welcome note and
// the sample file marker. The notes are written at most once per account.
func (r *userRepository) RegisterLogin(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx).With().Int64("user_id", userID).Logger()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.RegisterLogin").Msg("failed to begin transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var firstLogin bool
	err = tx.QueryRowContext(ctx, lockUserForLogin, userID).Scan(&firstLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.RegisterLogin").Msg("failed to lock user row")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	user, err := scanUser(tx.QueryRowContext(ctx, markUserOnline, userID))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.RegisterLogin").Msg("failed to mark user online")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if firstLogin {
		_, err = tx.ExecContext(ctx, insertFirstLoginNotes,
			userID,
			string(models.NoteKindNote), models.WelcomeNote,
			string(models.NoteKindSampleFile), models.SampleFileMarker,
		)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.RegisterLogin").Msg("failed to seed first-login notes")
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		log.Info().Str("func", "*userRepository.RegisterLogin").Msg("first login notes created")
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.RegisterLogin").Msg("failed to commit transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return user, nil
}

func (r *userRepository) SetStatus(ctx context.Context, userID int64, status models.Status) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, setUserStatus, userID, string(status))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetStatus").Int64("user_id", userID).Msg("failed to update status")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

func (r *userRepository) ExpireSessions(ctx context.Context, seenBefore time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, expireSessions, seenBefore)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ExpireSessions").Time("seen_before", seenBefore).Msg("failed to expire sessions")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

// ListUsersByRole returns users ordered by creation time, oldest first.
func (r *userRepository) ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersByRoleQuery(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.db.classify(log.Err(err), err).Str("func", "*userRepository.ListUsersByRole").Msg("failed to list users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 16)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

func (r *userRepository) GetNotes(ctx context.Context, userID int64) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetNotesQuery(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetNotes").Int64("user_id", userID).Msg("failed to get notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, 2)
	for rows.Next() {
		var note models.Note
		if err = rows.Scan(&note.ID, &note.UserID, &note.Kind, &note.Body, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		notes = append(notes, note)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notes, nil
}
