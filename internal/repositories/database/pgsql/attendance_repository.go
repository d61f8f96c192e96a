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

type PgxAttendanceRepository struct {
	BaseRepository
}

func newPgxAttendanceRepository(pool *pgxpool.Pool) portsrepo.AttendanceRepository {
	return &PgxAttendanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AttendanceRepository = (*PgxAttendanceRepository)(nil)

// SaveAttendance inserts an attendance row. Financial rows are append-only:
// a replayed persist of the same id is a no-op, while a second record for the
// same (worker, project, date) trips the unique index and surfaces as a
// duplicate error.
func (r *PgxAttendanceRepository) SaveAttendance(ctx context.Context, a domain.Attendance) error {
	m := mapping.ToModelAttendance(a)
	query := `
		INSERT INTO attendance (attendance_id, worker_id, project_id, date, status, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (attendance_id) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query, m.AttendanceID, m.WorkerID, m.ProjectID, m.Date, m.Status, m.Amount, m.CreatedAt)
	if err != nil {
		return mapPgError(err, "failed to save attendance "+m.AttendanceID)
	}
	return nil
}

// ListAttendance retrieves all attendance rows.
func (r *PgxAttendanceRepository) ListAttendance(ctx context.Context) ([]domain.Attendance, error) {
	query := `SELECT attendance_id, worker_id, project_id, date::text, status, amount, created_at FROM attendance ORDER BY created_at, attendance_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list attendance", err)
	}
	defer rows.Close()

	records := make([]domain.Attendance, 0)
	for rows.Next() {
		var m models.Attendance
		if err := rows.Scan(&m.AttendanceID, &m.WorkerID, &m.ProjectID, &m.Date, &m.Status, &m.Amount, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan attendance row", err)
		}
		records = append(records, mapping.ToDomainAttendance(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating attendance rows", err)
	}
	return records, nil
}
