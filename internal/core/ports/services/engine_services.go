// Package services defines the inbound ports of the engine: the facades UI
// collaborators (HTTP handlers) call for reads and writes.
package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sitebook/backend/internal/core/domain"
)

// LedgerSvcFacade is the mutation gateway: the only path through which new
// records are created. Every write applies optimistically to the entity store
// and is queued for remote persistence; the receipt carries the sync state.
type LedgerSvcFacade interface {
	RecordAttendance(ctx context.Context, a domain.Attendance) (*domain.MutationReceipt, error)
	RecordTransaction(ctx context.Context, t domain.Transaction) (*domain.MutationReceipt, error)
	RecordMaterialLog(ctx context.Context, m domain.MaterialLog) (*domain.MutationReceipt, error)
	RecordWorkReport(ctx context.Context, r domain.WorkReport) (*domain.MutationReceipt, error)

	// PayWorker records a salary transaction against the worker's balance.
	// The recomputed balance is visible to local reads before it returns.
	PayWorker(ctx context.Context, workerID string, amount decimal.Decimal, description string) (*domain.MutationReceipt, error)

	CreateWorker(ctx context.Context, p domain.Profile) (*domain.MutationReceipt, error)
	CreateProject(ctx context.Context, p domain.Project) (*domain.MutationReceipt, error)
	UpdateProjectStatus(ctx context.Context, projectID string, status domain.ProjectStatus) (*domain.MutationReceipt, error)
	PostNotice(ctx context.Context, n domain.PublicNotice) (*domain.MutationReceipt, error)
}

// BalanceSvcFacade computes outstanding wage balances from ledger history.
type BalanceSvcFacade interface {
	// ComputeBalance returns attendance accruals minus salary payments for
	// the worker. An unknown worker yields zero; there is no error case.
	ComputeBalance(ctx context.Context, workerID string) decimal.Decimal
}

// StatsSvcFacade produces per-date dashboard summaries.
type StatsSvcFacade interface {
	ComputeDailyStats(ctx context.Context, date string) domain.DailyStats
}

// MutationQueue accepts optimistically applied mutations for remote
// persistence. Implemented by the sync service and consumed by the ledger
// service; enqueueing never blocks on remote I/O.
type MutationQueue interface {
	Enqueue(m domain.PendingMutation)
}

// SyncSvcFacade reconciles the entity store against the remote store.
type SyncSvcFacade interface {
	MutationQueue

	// Start performs the startup sequence (cache restore, session verify,
	// canonical pull, replay) and launches the background sync loop.
	Start(ctx context.Context) error

	// Stop flushes what it can and persists a final snapshot.
	Stop(ctx context.Context) error

	// InitialLoadInProgress reports whether the first canonical pull has not
	// yet completed, so collaborators can render a loading state.
	InitialLoadInProgress() bool

	// SyncStatus returns the state of a previously enqueued mutation.
	SyncStatus(mutationID string) (domain.SyncState, bool)

	PendingCount() int
	FailedCount() int
}

// ServiceContainer aggregates the engine facades handed to the handlers.
type ServiceContainer struct {
	Ledger  LedgerSvcFacade
	Balance BalanceSvcFacade
	Stats   StatsSvcFacade
	Sync    SyncSvcFacade
}
