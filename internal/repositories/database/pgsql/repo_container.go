package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/sitebook/backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all remote-store repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ProfileRepo:     newPgxProfileRepository(dbPool),
		ProjectRepo:     newPgxProjectRepository(dbPool),
		AttendanceRepo:  newPgxAttendanceRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		MaterialRepo:    newPgxMaterialLogRepository(dbPool),
		WorkReportRepo:  newPgxWorkReportRepository(dbPool),
		NoticeRepo:      newPgxNoticeRepository(dbPool),
	}
}

// PoolSessionVerifier verifies the backing connection by pinging the pool.
type PoolSessionVerifier struct {
	Pool *pgxpool.Pool
}

var _ portsrepo.SessionVerifier = (*PoolSessionVerifier)(nil)

// VerifySession pings the remote store.
func (v *PoolSessionVerifier) VerifySession(ctx context.Context) error {
	return v.Pool.Ping(ctx)
}
