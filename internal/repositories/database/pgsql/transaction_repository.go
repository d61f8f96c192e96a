package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sitebook/backend/internal/apperrors"
	"github.com/sitebook/backend/internal/core/domain"
	portsrepo "github.com/sitebook/backend/internal/core/ports/repositories"
	"github.com/sitebook/backend/internal/models"
	"github.com/sitebook/backend/internal/utils/mapping"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

// SaveTransaction inserts a transaction row. Append-only; a replayed persist
// of the same id is a no-op.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, t domain.Transaction) error {
	m := mapping.ToModelTransaction(t)
	query := `
		INSERT INTO transactions (transaction_id, type, amount, description, project_id, worker_id, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (transaction_id) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query, m.TransactionID, m.Type, m.Amount, m.Description, m.ProjectID, m.WorkerID, m.Date, m.CreatedAt)
	if err != nil {
		return mapPgError(err, "failed to save transaction "+m.TransactionID)
	}
	return nil
}

// ListTransactions retrieves all transaction rows.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT transaction_id, type, amount, description, project_id, worker_id, date::text, created_at FROM transactions ORDER BY created_at, transaction_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(&m.TransactionID, &m.Type, &m.Amount, &m.Description, &m.ProjectID, &m.WorkerID, &m.Date, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating transaction rows", err)
	}
	return txns, nil
}
