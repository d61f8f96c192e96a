package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sitebook/backend/internal/core/domain"
	portssvc "github.com/sitebook/backend/internal/core/ports/services"
	"github.com/sitebook/backend/internal/store"
)

// statsService aggregates per-date dashboard figures from the entity store.
type statsService struct {
	entities *store.EntityStore
	balance  portssvc.BalanceSvcFacade
}

// NewStatsService creates a new daily stats aggregator.
func NewStatsService(entities *store.EntityStore, balance portssvc.BalanceSvcFacade) portssvc.StatsSvcFacade {
	return &statsService{entities: entities, balance: balance}
}

var _ portssvc.StatsSvcFacade = (*statsService)(nil)

// ComputeDailyStats summarizes one calendar day.
//
// TotalExpense counts both discretionary cash expense and accrued labor cost
// for the day. TotalDue is the current all-time outstanding liability across
// every worker; the date parameter does not scope it.
func (s *statsService) ComputeDailyStats(ctx context.Context, date string) domain.DailyStats {
	stats := domain.DailyStats{
		Date:         date,
		TotalExpense: decimal.Zero,
		TotalDue:     decimal.Zero,
	}

	for _, a := range s.entities.ListAttendance(store.AttendanceFilter{Date: date}) {
		if a.CountsAsPresent() {
			stats.TotalPresent++
		}
		stats.TotalExpense = stats.TotalExpense.Add(a.Amount)
	}

	expenseFilter := store.TransactionFilter{Type: domain.TxnExpense, Date: date}
	for _, t := range s.entities.ListTransactions(expenseFilter) {
		stats.TotalExpense = stats.TotalExpense.Add(t.Amount)
	}

	for _, w := range s.entities.ListProfiles(domain.RoleWorker) {
		stats.TotalDue = stats.TotalDue.Add(s.balance.ComputeBalance(ctx, w.ProfileID))
	}

	return stats
}
