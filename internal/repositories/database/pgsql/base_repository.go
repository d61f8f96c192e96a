// Package pgsql implements the remote store of record on PostgreSQL via
// pgx/v5. Writes are idempotent upserts keyed by entity id so the sync
// service can safely retry a timed-out persist.
package pgsql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sitebook/backend/internal/apperrors"
)

// BaseRepository provides the shared connection pool for all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

const pgUniqueViolation = "23505"

// mapPgError converts driver errors to the engine's error taxonomy.
func mapPgError(err error, message string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperrors.NewAppError(409, message, apperrors.ErrDuplicate)
	}
	return apperrors.NewAppError(500, message, err)
}
