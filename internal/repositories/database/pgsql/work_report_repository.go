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

type PgxWorkReportRepository struct {
	BaseRepository
}

func newPgxWorkReportRepository(pool *pgxpool.Pool) portsrepo.WorkReportRepository {
	return &PgxWorkReportRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WorkReportRepository = (*PgxWorkReportRepository)(nil)

// SaveWorkReport inserts a work report row; replays are no-ops.
func (r *PgxWorkReportRepository) SaveWorkReport(ctx context.Context, wr domain.WorkReport) error {
	row := mapping.ToModelWorkReport(wr)
	query := `
		INSERT INTO work_reports (work_report_id, project_id, submitted_by, description, image_url, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (work_report_id) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query, row.WorkReportID, row.ProjectID, row.SubmittedBy, row.Description, row.ImageURL, row.Date, row.CreatedAt)
	if err != nil {
		return mapPgError(err, "failed to save work report "+row.WorkReportID)
	}
	return nil
}

// ListWorkReports retrieves all work report rows.
func (r *PgxWorkReportRepository) ListWorkReports(ctx context.Context) ([]domain.WorkReport, error) {
	query := `SELECT work_report_id, project_id, submitted_by, description, image_url, date::text, created_at FROM work_reports ORDER BY created_at, work_report_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list work reports", err)
	}
	defer rows.Close()

	reports := make([]domain.WorkReport, 0)
	for rows.Next() {
		var m models.WorkReport
		if err := rows.Scan(&m.WorkReportID, &m.ProjectID, &m.SubmittedBy, &m.Description, &m.ImageURL, &m.Date, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan work report row", err)
		}
		reports = append(reports, mapping.ToDomainWorkReport(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating work report rows", err)
	}
	return reports, nil
}
