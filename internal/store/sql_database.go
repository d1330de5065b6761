package store

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/bunpo-app/bunpo/internal/logger"
	"github.com/bunpo-app/bunpo/migrations"
)

// DB wraps the raw connection together with the driver-specific pieces the
// repositories need: the placeholder format for query building, the goose
// dialect for migrations, and the retryability classifier.
type DB struct {
	*sql.DB
	builder            squirrel.StatementBuilderType
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// Migrate applies all pending schema migrations for the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// isRetryable reports whether err is a transient driver failure that may
// succeed on a second attempt. Connections without a classifier treat every
// failure as final.
func (db *DB) isRetryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}
