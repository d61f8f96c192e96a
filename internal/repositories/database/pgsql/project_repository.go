package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sitebook/backend/internal/apperrors"
	"github.com/sitebook/backend/internal/core/domain"
	portsrepo "github.com/sitebook/backend/internal/core/ports/repositories"
	"github.com/sitebook/backend/internal/models"
	"github.com/sitebook/backend/internal/utils/mapping"
)

type PgxProjectRepository struct {
	BaseRepository
}

func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepository {
	return &PgxProjectRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProjectRepository = (*PgxProjectRepository)(nil)

// SaveProject upserts a project row. Only the status may change on conflict;
// projects are otherwise immutable once created.
func (r *PgxProjectRepository) SaveProject(ctx context.Context, p domain.Project) error {
	m := mapping.ToModelProject(p)
	query := `
		INSERT INTO projects (project_id, project_name, location, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (project_id) DO UPDATE SET status = EXCLUDED.status;
	`
	_, err := r.Pool.Exec(ctx, query, m.ProjectID, m.ProjectName, m.Location, m.Status, m.CreatedAt)
	if err != nil {
		return mapPgError(err, "failed to save project "+m.ProjectID)
	}
	return nil
}

// FindProjectByID retrieves a single project by id.
func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT project_id, project_name, location, status, created_at FROM projects WHERE project_id = $1;`
	var m models.Project
	err := r.Pool.QueryRow(ctx, query, projectID).Scan(&m.ProjectID, &m.ProjectName, &m.Location, &m.Status, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find project "+projectID, err)
	}
	d := mapping.ToDomainProject(m)
	return &d, nil
}

// ListProjects retrieves all projects.
func (r *PgxProjectRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT project_id, project_name, location, status, created_at FROM projects ORDER BY created_at, project_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list projects", err)
	}
	defer rows.Close()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		var m models.Project
		if err := rows.Scan(&m.ProjectID, &m.ProjectName, &m.Location, &m.Status, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan project row", err)
		}
		projects = append(projects, mapping.ToDomainProject(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating project rows", err)
	}
	return projects, nil
}

// UpdateProjectStatus transitions a project's status.
func (r *PgxProjectRepository) UpdateProjectStatus(ctx context.Context, projectID string, status domain.ProjectStatus) error {
	query := `UPDATE projects SET status = $2 WHERE project_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, projectID, string(status))
	if err != nil {
		return mapPgError(err, "failed to update status for project "+projectID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
