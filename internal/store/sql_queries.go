package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/sheet-viz/models"
)

// psql builds Postgres-flavoured ($1, $2, ...) statements.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const userColumns = `user_id, email, name, password_hash, role, status, first_login, last_seen_at, created_at`

const (
	createUser = `INSERT INTO users (email, name, password_hash, role)
    VALUES ($1, $2, $3, $4)
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	lockUserForLogin = `SELECT first_login
    FROM users
    WHERE user_id = $1
    FOR UPDATE;`

	markUserOnline = `UPDATE users
    SET status = 'online', last_seen_at = now(), first_login = FALSE, updated_at = now()
    WHERE user_id = $1
    RETURNING ` + userColumns + `;`

	insertFirstLoginNotes = `INSERT INTO user_notes (user_id, kind, body)
    VALUES ($1, $2, $3), ($1, $4, $5);`

	setUserStatus = `UPDATE users
    SET status = $2, last_seen_at = CASE WHEN $2 = 'online' THEN now() ELSE last_seen_at END, updated_at = now()
    WHERE user_id = $1;`

	expireSessions = `UPDATE users
    SET status = 'offline', updated_at = now()
    WHERE status = 'online' AND (last_seen_at IS NULL OR last_seen_at < $1);`
)

const (
	insertFile = `INSERT INTO files (file_id, user_id, original_name, mime_type, size_bytes, content, storage_key)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING created_at, updated_at;`

	insertParsedData = `INSERT INTO parsed_data (file_id, user_id, columns, rows, row_count)
    VALUES ($1, $2, $3, $4, $5);`

	insertUploadHistory = `INSERT INTO upload_history (user_id, file_id, file_name)
    VALUES ($1, $2, $3);`

	getParsedData = `SELECT parsed_id, file_id::text, user_id, columns, rows, created_at
    FROM parsed_data
    WHERE file_id = $1 AND user_id = $2;`

	deleteParsedData = `DELETE FROM parsed_data
    WHERE file_id = $1 AND user_id = $2;`

	deleteFile = `DELETE FROM files
    WHERE file_id = $1 AND user_id = $2
    RETURNING file_id::text, user_id, original_name, mime_type, size_bytes, storage_key, chart_generated, created_at, updated_at;`
)

// recordChartHistory flags the owned file as charted and appends the log
// entry in one statement. A file not owned by $2 yields no row.
const recordChartHistory = `WITH owned AS (
        UPDATE files
        SET chart_generated = TRUE, updated_at = now()
        WHERE file_id = $1 AND user_id = $2
        RETURNING file_id, user_id
    )
    INSERT INTO chart_history (user_id, file_id, chart_type, dimension, x_axis, y_axis, z_axis)
    SELECT owned.user_id, owned.file_id, $3, $4, $5, NULLIF($6, ''), NULLIF($7, '')
    FROM owned
    RETURNING chart_id, created_at;`

var fileColumns = []string{
	"file_id::text",
	"user_id",
	"original_name",
	"mime_type",
	"size_bytes",
	"storage_key",
	"chart_generated",
	"created_at",
	"updated_at",
}

func buildListFilesQuery(ctx context.Context, userID int64) (string, []any, error) {
	return psql.
		Select(fileColumns...).
		From(models.File{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "file_id DESC").
		ToSql()
}

// buildGetFileQuery selects a single owned file including its inline content.
func buildGetFileQuery(ctx context.Context, fileID string, userID int64) (string, []any, error) {
	return psql.
		Select(append(append([]string{}, fileColumns...), "content")...).
		From(models.File{}.TableName()).
		Where(sq.Eq{"file_id": fileID, "user_id": userID}).
		ToSql()
}

func buildListUsersByRoleQuery(ctx context.Context, role models.Role) (string, []any, error) {
	return psql.
		Select(userColumns).
		From(models.User{}.TableName()).
		Where(sq.Eq{"role": string(role)}).
		OrderBy("created_at ASC", "user_id ASC").
		ToSql()
}

func buildGetNotesQuery(ctx context.Context, userID int64) (string, []any, error) {
	return psql.
		Select("note_id", "user_id", "kind", "body", "created_at").
		From("user_notes").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("note_id ASC").
		ToSql()
}

// buildListChartHistoryQuery resolves the file name at read time; entries
// for deleted files keep an empty name.
func buildListChartHistoryQuery(ctx context.Context, userID int64) (string, []any, error) {
	return psql.
		Select(
			"ch.chart_id",
			"ch.user_id",
			"ch.file_id::text",
			"COALESCE(f.original_name, '')",
			"ch.chart_type",
			"ch.dimension",
			"ch.x_axis",
			"COALESCE(ch.y_axis, '')",
			"COALESCE(ch.z_axis, '')",
			"ch.created_at",
		).
		From("chart_history ch").
		LeftJoin("files f ON f.file_id = ch.file_id").
		Where(sq.Eq{"ch.user_id": userID}).
		OrderBy("ch.created_at DESC", "ch.chart_id DESC").
		ToSql()
}

func buildCountChartHistoryQuery(ctx context.Context, userID int64) (string, []any, error) {
	return psql.
		Select("COUNT(*)").
		From("chart_history").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildReferencedFileIDsQuery(ctx context.Context, userID int64) (string, []any, error) {
	return psql.
		Select("DISTINCT file_id::text").
		From("chart_history").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildListUploadHistoryQuery(ctx context.Context, userID int64) (string, []any, error) {
	return psql.
		Select("upload_id", "user_id", "file_id::text", "file_name", "uploaded_at").
		From("upload_history").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("uploaded_at DESC", "upload_id DESC").
		ToSql()
}
