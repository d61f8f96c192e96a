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

type PgxNoticeRepository struct {
	BaseRepository
}

func newPgxNoticeRepository(pool *pgxpool.Pool) portsrepo.NoticeRepository {
	return &PgxNoticeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.NoticeRepository = (*PgxNoticeRepository)(nil)

// SaveNotice inserts a notice row; replays are no-ops.
func (r *PgxNoticeRepository) SaveNotice(ctx context.Context, n domain.PublicNotice) error {
	m := mapping.ToModelNotice(n)
	query := `
		INSERT INTO notices (notice_id, message, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (notice_id) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query, m.NoticeID, m.Message, m.CreatedAt)
	if err != nil {
		return mapPgError(err, "failed to save notice "+m.NoticeID)
	}
	return nil
}

// ListNotices retrieves all notices.
func (r *PgxNoticeRepository) ListNotices(ctx context.Context) ([]domain.PublicNotice, error) {
	query := `SELECT notice_id, message, created_at FROM notices ORDER BY created_at, notice_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list notices", err)
	}
	defer rows.Close()

	notices := make([]domain.PublicNotice, 0)
	for rows.Next() {
		var m models.PublicNotice
		if err := rows.Scan(&m.NoticeID, &m.Message, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan notice row", err)
		}
		notices = append(notices, mapping.ToDomainNotice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating notice rows", err)
	}
	return notices, nil
}
