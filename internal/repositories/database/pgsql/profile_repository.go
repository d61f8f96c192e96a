package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/sitebook/backend/internal/apperrors"
	"github.com/sitebook/backend/internal/core/domain"
	portsrepo "github.com/sitebook/backend/internal/core/ports/repositories"
	"github.com/sitebook/backend/internal/models"
	"github.com/sitebook/backend/internal/utils/mapping"
)

type PgxProfileRepository struct {
	BaseRepository
}

func newPgxProfileRepository(pool *pgxpool.Pool) portsrepo.ProfileRepository {
	return &PgxProfileRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProfileRepository = (*PgxProfileRepository)(nil)

const profileColumns = `profile_id, full_name, role, phone, skill_type, assigned_project_id, balance, live_location_enabled, latitude, longitude, created_at`

// SaveProfile upserts a profile row.
func (r *PgxProfileRepository) SaveProfile(ctx context.Context, p domain.Profile) error {
	m := mapping.ToModelProfile(p)
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (profile_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			role = EXCLUDED.role,
			phone = EXCLUDED.phone,
			skill_type = EXCLUDED.skill_type,
			assigned_project_id = EXCLUDED.assigned_project_id,
			balance = EXCLUDED.balance,
			live_location_enabled = EXCLUDED.live_location_enabled,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProfileID, m.FullName, m.Role, m.Phone, m.SkillType, m.AssignedProjectID,
		m.Balance, m.LiveLocationEnabled, m.Latitude, m.Longitude, m.CreatedAt,
	)
	if err != nil {
		return mapPgError(err, "failed to save profile "+m.ProfileID)
	}
	return nil
}

// FindProfileByID retrieves a single profile by id.
func (r *PgxProfileRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE profile_id = $1;`
	row := r.Pool.QueryRow(ctx, query, profileID)

	m, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find profile "+profileID, err)
	}
	d := mapping.ToDomainProfile(*m)
	return &d, nil
}

// ListProfiles retrieves all profiles.
func (r *PgxProfileRepository) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at, profile_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list profiles", err)
	}
	defer rows.Close()

	profiles := make([]domain.Profile, 0)
	for rows.Next() {
		m, err := scanProfile(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan profile row", err)
		}
		profiles = append(profiles, mapping.ToDomainProfile(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating profile rows", err)
	}
	return profiles, nil
}

// UpdateProfileBalance writes the denormalized balance cache field.
func (r *PgxProfileRepository) UpdateProfileBalance(ctx context.Context, profileID string, balance decimal.Decimal) error {
	query := `UPDATE profiles SET balance = $2 WHERE profile_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, profileID, balance)
	if err != nil {
		return mapPgError(err, "failed to update balance for profile "+profileID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var m models.Profile
	err := row.Scan(
		&m.ProfileID, &m.FullName, &m.Role, &m.Phone, &m.SkillType, &m.AssignedProjectID,
		&m.Balance, &m.LiveLocationEnabled, &m.Latitude, &m.Longitude, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
