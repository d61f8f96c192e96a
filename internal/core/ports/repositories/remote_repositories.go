// Package repositories defines the outbound ports the engine consumes: the
// remote store of record, the local snapshot cache, the remote change feed and
// the session verifier. The engine treats the remote store purely as an async
// row store keyed by entity id with equality filters.
package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sitebook/backend/internal/core/domain"
)

// ProfileRepository persists worker/supervisor/contractor profiles remotely.
type ProfileRepository interface {
	SaveProfile(ctx context.Context, p domain.Profile) error
	FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error)
	ListProfiles(ctx context.Context) ([]domain.Profile, error)

	// UpdateProfileBalance writes the denormalized balance cache field.
	UpdateProfileBalance(ctx context.Context, profileID string, balance decimal.Decimal) error
}

// ProjectRepository persists projects remotely.
type ProjectRepository interface {
	SaveProject(ctx context.Context, p domain.Project) error
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	UpdateProjectStatus(ctx context.Context, projectID string, status domain.ProjectStatus) error
}

// AttendanceRepository persists attendance rows remotely. Rows are append-only.
type AttendanceRepository interface {
	SaveAttendance(ctx context.Context, a domain.Attendance) error
	ListAttendance(ctx context.Context) ([]domain.Attendance, error)
}

// TransactionRepository persists cash transactions remotely. Rows are append-only.
type TransactionRepository interface {
	SaveTransaction(ctx context.Context, t domain.Transaction) error
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
}

// MaterialLogRepository persists material receipts remotely.
type MaterialLogRepository interface {
	SaveMaterialLog(ctx context.Context, m domain.MaterialLog) error
	ListMaterialLogs(ctx context.Context) ([]domain.MaterialLog, error)
}

// WorkReportRepository persists work reports remotely.
type WorkReportRepository interface {
	SaveWorkReport(ctx context.Context, r domain.WorkReport) error
	ListWorkReports(ctx context.Context) ([]domain.WorkReport, error)
}

// NoticeRepository persists public notices remotely.
type NoticeRepository interface {
	SaveNotice(ctx context.Context, n domain.PublicNotice) error
	ListNotices(ctx context.Context) ([]domain.PublicNotice, error)
}

// RepositoryProvider bundles all remote-store repositories for injection.
type RepositoryProvider struct {
	ProfileRepo     ProfileRepository
	ProjectRepo     ProjectRepository
	AttendanceRepo  AttendanceRepository
	TransactionRepo TransactionRepository
	MaterialRepo    MaterialLogRepository
	WorkReportRepo  WorkReportRepository
	NoticeRepo      NoticeRepository
}
