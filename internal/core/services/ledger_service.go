package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sitebook/backend/internal/apperrors"
	"github.com/sitebook/backend/internal/core/domain"
	portssvc "github.com/sitebook/backend/internal/core/ports/services"
	"github.com/sitebook/backend/internal/store"
)

var (
	ErrDuplicateAttendance = fmt.Errorf("%w: attendance already recorded for this worker, project and date", apperrors.ErrValidation)
	ErrAmountNotPositive   = fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	ErrMissingDate         = fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	ErrMissingWorker       = fmt.Errorf("%w: worker id is required", apperrors.ErrValidation)
	ErrMissingProject      = fmt.Errorf("%w: project id is required", apperrors.ErrValidation)
	ErrUnknownTxnType      = fmt.Errorf("%w: unknown transaction type", apperrors.ErrValidation)
	ErrWorkerNotFound      = fmt.Errorf("%w: worker", apperrors.ErrNotFound)
	ErrProjectNotFound     = fmt.Errorf("%w: project", apperrors.ErrNotFound)
)

// ledgerService is the mutation gateway: the only path through which new
// attendance, transaction, material log and work report records are created.
// Each write validates, applies to the entity store synchronously, recomputes
// the affected worker's denormalized balance, then enqueues the record for
// remote persistence. Validation failures never touch the store.
type ledgerService struct {
	BaseService
	entities *store.EntityStore
	balance  portssvc.BalanceSvcFacade
	queue    portssvc.MutationQueue
}

// NewLedgerService creates the mutation gateway.
func NewLedgerService(entities *store.EntityStore, balance portssvc.BalanceSvcFacade, queue portssvc.MutationQueue) portssvc.LedgerSvcFacade {
	return &ledgerService{
		entities: entities,
		balance:  balance,
		queue:    queue,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// RecordAttendance commits a wage-accrual event for a worker on a date.
// Rejected with a validation error when a record already exists for the same
// (worker, project, date); no partial state is written on rejection.
func (s *ledgerService) RecordAttendance(ctx context.Context, a domain.Attendance) (*domain.MutationReceipt, error) {
	if a.WorkerID == "" {
		return nil, ErrMissingWorker
	}
	if a.ProjectID == "" {
		return nil, ErrMissingProject
	}
	if a.Date == "" {
		return nil, ErrMissingDate
	}
	if a.Amount.IsNegative() {
		return nil, ErrAmountNotPositive
	}
	s.fillDefaults(&a.AttendanceID, &a.CreatedAt)
	if a.Status == "" {
		a.Status = domain.AttendancePresent
	}

	// Claiming the (worker, project, date) slot and inserting is one store
	// operation, so two concurrent writes can never both commit.
	if !s.entities.PutAttendanceIfAbsent(a) {
		return nil, ErrDuplicateAttendance
	}
	s.refreshWorkerBalance(ctx, a.WorkerID)

	receipt := s.enqueue(domain.PendingMutation{
		Kind:       domain.MutationAttendance,
		RecordID:   a.AttendanceID,
		Attendance: &a,
	})
	s.LogInfo(ctx, "Attendance recorded",
		slog.String("attendance_id", a.AttendanceID),
		slog.String("worker_id", a.WorkerID),
		slog.String("date", a.Date))
	return receipt, nil
}

// RecordTransaction commits a cash-flow entry. A salary transaction lowers the
// attributed worker's computed balance; the gateway does not reject
// overpayment, it only keeps the arithmetic exact.
func (s *ledgerService) RecordTransaction(ctx context.Context, t domain.Transaction) (*domain.MutationReceipt, error) {
	switch t.Type {
	case domain.TxnIncome, domain.TxnExpense, domain.TxnSalary:
	default:
		return nil, ErrUnknownTxnType
	}
	if !t.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	if t.Date == "" {
		return nil, ErrMissingDate
	}
	if t.Type == domain.TxnSalary {
		if t.WorkerID == "" {
			return nil, ErrMissingWorker
		}
		if _, ok := s.entities.GetProfile(t.WorkerID); !ok {
			return nil, fmt.Errorf("%w %s", ErrWorkerNotFound, t.WorkerID)
		}
	}

	s.fillDefaults(&t.TransactionID, &t.CreatedAt)

	s.entities.PutTransaction(t)
	if t.Type == domain.TxnSalary {
		s.refreshWorkerBalance(ctx, t.WorkerID)
	}

	receipt := s.enqueue(domain.PendingMutation{
		Kind:        domain.MutationTransaction,
		RecordID:    t.TransactionID,
		Transaction: &t,
	})
	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", t.TransactionID),
		slog.String("type", string(t.Type)),
		slog.String("amount", t.Amount.String()))
	return receipt, nil
}

// PayWorker records a salary payment against the worker's outstanding
// balance. The recomputed balance is observable locally the moment this
// returns, even while remote persistence is still in flight.
func (s *ledgerService) PayWorker(ctx context.Context, workerID string, amount decimal.Decimal, description string) (*domain.MutationReceipt, error) {
	if workerID == "" {
		return nil, ErrMissingWorker
	}
	if _, ok := s.entities.GetProfile(workerID); !ok {
		return nil, fmt.Errorf("%w %s", ErrWorkerNotFound, workerID)
	}
	if description == "" {
		description = "Salary payment"
	}
	txn := domain.Transaction{
		Type:        domain.TxnSalary,
		Amount:      amount,
		Description: description,
		WorkerID:    workerID,
		Date:        domain.DayKey(time.Now()),
	}
	return s.RecordTransaction(ctx, txn)
}

// RecordMaterialLog appends a material receipt. No balance effect.
func (s *ledgerService) RecordMaterialLog(ctx context.Context, m domain.MaterialLog) (*domain.MutationReceipt, error) {
	if m.ProjectID == "" {
		return nil, ErrMissingProject
	}
	if m.ItemName == "" {
		return nil, fmt.Errorf("%w: item name is required", apperrors.ErrValidation)
	}
	if m.Date == "" {
		return nil, ErrMissingDate
	}

	s.fillDefaults(&m.MaterialLogID, &m.CreatedAt)
	s.entities.PutMaterialLog(m)

	receipt := s.enqueue(domain.PendingMutation{
		Kind:        domain.MutationMaterialLog,
		RecordID:    m.MaterialLogID,
		MaterialLog: &m,
	})
	s.LogInfo(ctx, "Material log recorded",
		slog.String("material_log_id", m.MaterialLogID),
		slog.String("project_id", m.ProjectID))
	return receipt, nil
}

// RecordWorkReport appends a daily work report. No balance effect.
func (s *ledgerService) RecordWorkReport(ctx context.Context, r domain.WorkReport) (*domain.MutationReceipt, error) {
	if r.ProjectID == "" {
		return nil, ErrMissingProject
	}
	if r.Description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	if r.Date == "" {
		return nil, ErrMissingDate
	}

	s.fillDefaults(&r.WorkReportID, &r.CreatedAt)
	s.entities.PutWorkReport(r)

	receipt := s.enqueue(domain.PendingMutation{
		Kind:       domain.MutationWorkReport,
		RecordID:   r.WorkReportID,
		WorkReport: &r,
	})
	s.LogInfo(ctx, "Work report recorded",
		slog.String("work_report_id", r.WorkReportID),
		slog.String("project_id", r.ProjectID))
	return receipt, nil
}

// CreateWorker registers a new profile through the same optimistic path.
func (s *ledgerService) CreateWorker(ctx context.Context, p domain.Profile) (*domain.MutationReceipt, error) {
	if p.FullName == "" {
		return nil, fmt.Errorf("%w: full name is required", apperrors.ErrValidation)
	}
	switch p.Role {
	case domain.RoleContractor, domain.RoleSupervisor, domain.RoleWorker:
	case "":
		p.Role = domain.RoleWorker
	default:
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, p.Role)
	}

	s.fillDefaults(&p.ProfileID, &p.CreatedAt)
	p.Balance = decimal.Zero
	s.entities.PutProfile(p)

	receipt := s.enqueue(domain.PendingMutation{
		Kind:     domain.MutationProfile,
		RecordID: p.ProfileID,
		Profile:  &p,
	})
	s.LogInfo(ctx, "Profile created",
		slog.String("profile_id", p.ProfileID),
		slog.String("role", string(p.Role)))
	return receipt, nil
}

// CreateProject registers a new project through the same optimistic path.
func (s *ledgerService) CreateProject(ctx context.Context, p domain.Project) (*domain.MutationReceipt, error) {
	if p.ProjectName == "" {
		return nil, fmt.Errorf("%w: project name is required", apperrors.ErrValidation)
	}
	if p.Status == "" {
		p.Status = domain.ProjectActive
	}

	s.fillDefaults(&p.ProjectID, &p.CreatedAt)
	s.entities.PutProject(p)

	receipt := s.enqueue(domain.PendingMutation{
		Kind:     domain.MutationProject,
		RecordID: p.ProjectID,
		Project:  &p,
	})
	s.LogInfo(ctx, "Project created", slog.String("project_id", p.ProjectID))
	return receipt, nil
}

// UpdateProjectStatus is the only permitted mutation of an existing project.
func (s *ledgerService) UpdateProjectStatus(ctx context.Context, projectID string, status domain.ProjectStatus) (*domain.MutationReceipt, error) {
	switch status {
	case domain.ProjectActive, domain.ProjectCompleted, domain.ProjectOnHold:
	default:
		return nil, fmt.Errorf("%w: unknown project status %q", apperrors.ErrValidation, status)
	}
	project, ok := s.entities.GetProject(projectID)
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrProjectNotFound, projectID)
	}

	project.Status = status
	s.entities.PutProject(project)

	receipt := s.enqueue(domain.PendingMutation{
		Kind:     domain.MutationProject,
		RecordID: project.ProjectID,
		Project:  &project,
	})
	s.LogInfo(ctx, "Project status updated",
		slog.String("project_id", projectID),
		slog.String("status", string(status)))
	return receipt, nil
}

// PostNotice broadcasts a public notice.
func (s *ledgerService) PostNotice(ctx context.Context, n domain.PublicNotice) (*domain.MutationReceipt, error) {
	if n.Message == "" {
		return nil, fmt.Errorf("%w: message is required", apperrors.ErrValidation)
	}

	s.fillDefaults(&n.NoticeID, &n.CreatedAt)
	s.entities.PutNotice(n)

	receipt := s.enqueue(domain.PendingMutation{
		Kind:     domain.MutationNotice,
		RecordID: n.NoticeID,
		Notice:   &n,
	})
	s.LogInfo(ctx, "Notice posted", slog.String("notice_id", n.NoticeID))
	return receipt, nil
}

// fillDefaults assigns id and creation time when the caller did not.
func (s *ledgerService) fillDefaults(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
}

// refreshWorkerBalance recomputes and caches the denormalized balance field.
// Runs inside the synchronous part of a mutation so callers observe the new
// figure immediately.
func (s *ledgerService) refreshWorkerBalance(ctx context.Context, workerID string) {
	s.entities.SetProfileBalance(workerID, s.balance.ComputeBalance(ctx, workerID))
}

// enqueue hands the applied record to the sync service. The local apply is
// already visible to readers at this point.
func (s *ledgerService) enqueue(m domain.PendingMutation) *domain.MutationReceipt {
	m.MutationID = uuid.NewString()
	s.queue.Enqueue(m)
	return &domain.MutationReceipt{
		MutationID: m.MutationID,
		Kind:       m.Kind,
		RecordID:   m.RecordID,
		State:      domain.SyncPending,
	}
}
