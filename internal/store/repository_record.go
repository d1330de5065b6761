package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bunpo-app/bunpo/internal/logger"
	"github.com/bunpo-app/bunpo/models"
	"github.com/jackc/pgerrcode"
)

var userRecordColumns = []string{
	"user_id",
	"favorites",
	"favorites_last_modified",
	"last_sync_at",
	"created_at",
	"display_name",
	"email",
	"photo_url",
}

// userRecordRepository is the SQL-backed implementation of
// [UserRecordRepository]. It works against the "user_records" table and is
// driver-agnostic: queries are built through the connection's placeholder
// format, and timestamps are stored as RFC 3339 text so PostgreSQL and SQLite
// behave identically.
type userRecordRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewUserRecordRepository constructs a [UserRecordRepository] backed by the
// provided database connection and logger.
func NewUserRecordRepository(db *DB, log *logger.Logger) UserRecordRepository {
	log.Debug().Msg("creating user record repository")
	return &userRecordRepository{
		db:     db,
		logger: log,
	}
}

// CreateRecord implements UserRecordRepository.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) or the SQLite UNIQUE constraint
//     message → [ErrUserRecordExists].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRecordRepository) CreateRecord(ctx context.Context, record models.UserRecord) (models.UserRecord, error) {
	log := logger.FromContext(ctx)

	if record.CreatedAt.IsZero() {
		record.CreatedAt = models.Now()
	}

	favorites, err := json.Marshal(record.Favorites)
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	query, args, err := r.db.builder.
		Insert("user_records").
		Columns(userRecordColumns...).
		Values(
			record.UserID,
			string(favorites),
			record.FavoritesLastModified,
			record.LastSyncAt,
			record.CreatedAt,
			record.DisplayName,
			record.Email,
			record.PhotoURL,
		).
		ToSql()
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return models.UserRecord{}, ErrUserRecordExists
		}
		log.Err(err).
			Str("func", "*userRecordRepository.CreateRecord").
			Bool("retryable", r.db.isRetryable(err)).
			Msg("error inserting user record")
		return models.UserRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return record, nil
}

// GetRecord implements UserRecordRepository.
func (r *userRecordRepository) GetRecord(ctx context.Context, userID int64) (models.UserRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(userRecordColumns...).
		From("user_records").
		Where("user_id = ?", userID).
		ToSql()
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	record, err := scanUserRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserRecord{}, ErrUserRecordNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRecordRepository.GetRecord").Msg("error scanning user record")
		return models.UserRecord{}, err
	}

	return record, nil
}

// UpdateFavorites implements UserRecordRepository. The favorite set and its
// last-modified timestamp are written in one statement so readers never see
// one without the other.
func (r *userRecordRepository) UpdateFavorites(ctx context.Context, userID int64, favoriteSet models.FavoriteSet, modified models.Timestamp) (models.UserRecord, error) {
	log := logger.FromContext(ctx)

	favorites, err := json.Marshal(favoriteSet)
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	query, args, err := r.db.builder.
		Update("user_records").
		Set("favorites", string(favorites)).
		Set("favorites_last_modified", modified).
		Set("last_sync_at", models.Now()).
		Where("user_id = ?", userID).
		ToSql()
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*userRecordRepository.UpdateFavorites").
			Bool("retryable", r.db.isRetryable(err)).
			Msg("error updating favorites")
		return models.UserRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return models.UserRecord{}, ErrUserRecordNotFound
	}

	return r.GetRecord(ctx, userID)
}

// scanUserRecord reads one user_records row. Favorites are stored as a JSON
// array of identifiers, timestamps as RFC 3339 text.
func scanUserRecord(row *sql.Row) (models.UserRecord, error) {
	var (
		record    models.UserRecord
		favorites []byte
	)

	err := row.Scan(
		&record.UserID,
		&favorites,
		&record.FavoritesLastModified,
		&record.LastSyncAt,
		&record.CreatedAt,
		&record.DisplayName,
		&record.Email,
		&record.PhotoURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserRecord{}, err
	}
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err := json.Unmarshal(favorites, &record.Favorites); err != nil {
		return models.UserRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

// isUniqueViolation recognises a duplicate-key failure from either supported
// driver.
func isUniqueViolation(err error) bool {
	if postgresError(err) == pgerrcode.UniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
