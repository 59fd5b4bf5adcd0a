package store

import (
	"database/sql"

	"recipebox/internal/logger"
	"recipebox/migrations"
)

// DB wraps the shared *sql.DB connection together with the error
// classificator used to annotate driver-level failures.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies all embedded schema migrations to the connected database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
