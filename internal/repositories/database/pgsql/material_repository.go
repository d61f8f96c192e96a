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

type PgxMaterialLogRepository struct {
	BaseRepository
}

func newPgxMaterialLogRepository(pool *pgxpool.Pool) portsrepo.MaterialLogRepository {
	return &PgxMaterialLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MaterialLogRepository = (*PgxMaterialLogRepository)(nil)

// SaveMaterialLog inserts a material receipt row; replays are no-ops.
func (r *PgxMaterialLogRepository) SaveMaterialLog(ctx context.Context, m domain.MaterialLog) error {
	row := mapping.ToModelMaterialLog(m)
	query := `
		INSERT INTO material_logs (material_log_id, project_id, submitted_by, item_name, quantity, unit, supplier_name, challan_photo, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (material_log_id) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query, row.MaterialLogID, row.ProjectID, row.SubmittedBy, row.ItemName, row.Quantity, row.Unit, row.SupplierName, row.ChallanPhoto, row.Date, row.CreatedAt)
	if err != nil {
		return mapPgError(err, "failed to save material log "+row.MaterialLogID)
	}
	return nil
}

// ListMaterialLogs retrieves all material receipt rows.
func (r *PgxMaterialLogRepository) ListMaterialLogs(ctx context.Context) ([]domain.MaterialLog, error) {
	query := `SELECT material_log_id, project_id, submitted_by, item_name, quantity, unit, supplier_name, challan_photo, date::text, created_at FROM material_logs ORDER BY created_at, material_log_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list material logs", err)
	}
	defer rows.Close()

	logs := make([]domain.MaterialLog, 0)
	for rows.Next() {
		var m models.MaterialLog
		if err := rows.Scan(&m.MaterialLogID, &m.ProjectID, &m.SubmittedBy, &m.ItemName, &m.Quantity, &m.Unit, &m.SupplierName, &m.ChallanPhoto, &m.Date, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan material log row", err)
		}
		logs = append(logs, mapping.ToDomainMaterialLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating material log rows", err)
	}
	return logs, nil
}
