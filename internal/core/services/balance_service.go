package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sitebook/backend/internal/core/domain"
	portssvc "github.com/sitebook/backend/internal/core/ports/services"
	"github.com/sitebook/backend/internal/store"
)

// balanceService computes outstanding wage balances from the entity store.
// It never reads the denormalized Profile.Balance field; that field is a
// display cache this service exists to populate.
type balanceService struct {
	entities *store.EntityStore
}

// NewBalanceService creates a new balance calculator over the entity store.
func NewBalanceService(entities *store.EntityStore) portssvc.BalanceSvcFacade {
	return &balanceService{entities: entities}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// ComputeBalance returns the worker's outstanding balance: the sum of all
// attendance accruals minus the sum of all salary payments attributed to the
// worker. Negative results are valid and represent an overpayment. A worker
// with no history yields zero.
func (s *balanceService) ComputeBalance(_ context.Context, workerID string) decimal.Decimal {
	balance := decimal.Zero

	for _, a := range s.entities.ListAttendance(store.AttendanceFilter{WorkerID: workerID}) {
		balance = balance.Add(a.Amount)
	}

	salaryFilter := store.TransactionFilter{Type: domain.TxnSalary, WorkerID: workerID}
	for _, t := range s.entities.ListTransactions(salaryFilter) {
		balance = balance.Sub(t.Amount)
	}

	return balance
}
