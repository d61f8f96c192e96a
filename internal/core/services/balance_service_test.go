package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sitebook/backend/internal/core/domain"
	"github.com/sitebook/backend/internal/core/services"
	"github.com/sitebook/backend/internal/store"
)

func putAttendance(s *store.EntityStore, workerID, date string, amount int64) {
	s.PutAttendance(domain.Attendance{
		AttendanceID: uuid.NewString(),
		WorkerID:     workerID,
		ProjectID:    "p1",
		Date:         date,
		Status:       domain.AttendancePresent,
		Amount:       decimal.NewFromInt(amount),
		CreatedAt:    time.Now(),
	})
}

func putSalary(s *store.EntityStore, workerID, date string, amount int64) {
	s.PutTransaction(domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TxnSalary,
		Amount:        decimal.NewFromInt(amount),
		WorkerID:      workerID,
		Date:          date,
		CreatedAt:     time.Now(),
	})
}

func TestComputeBalanceAccrualsMinusSalaries(t *testing.T) {
	ctx := context.Background()
	s := store.New()
	svc := services.NewBalanceService(s)

	putAttendance(s, "w1", "2026-08-01", 500)
	putAttendance(s, "w1", "2026-08-02", 500)
	putAttendance(s, "w1", "2026-08-03", 250)
	putSalary(s, "w1", "2026-08-03", 800)

	// 500 + 500 + 250 - 800
	assert.True(t, svc.ComputeBalance(ctx, "w1").Equal(decimal.NewFromInt(450)))
}

func TestComputeBalanceUnknownWorkerIsZero(t *testing.T) {
	s := store.New()
	svc := services.NewBalanceService(s)
	assert.True(t, svc.ComputeBalance(context.Background(), "nobody").IsZero())
}

func TestComputeBalanceOverpaymentGoesNegative(t *testing.T) {
	ctx := context.Background()
	s := store.New()
	svc := services.NewBalanceService(s)

	putAttendance(s, "w1", "2026-08-01", 300)
	putSalary(s, "w1", "2026-08-01", 500)

	assert.True(t, svc.ComputeBalance(ctx, "w1").Equal(decimal.NewFromInt(-200)))
}

func TestComputeBalanceIgnoresOtherWorkersAndTypes(t *testing.T) {
	ctx := context.Background()
	s := store.New()
	svc := services.NewBalanceService(s)

	putAttendance(s, "w1", "2026-08-01", 500)
	putAttendance(s, "w2", "2026-08-01", 700)
	putSalary(s, "w2", "2026-08-02", 700)

	// Income and expense entries never touch wage balances.
	s.PutTransaction(domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TxnExpense,
		Amount:        decimal.NewFromInt(9999),
		Date:          "2026-08-01",
		CreatedAt:     time.Now(),
	})

	assert.True(t, svc.ComputeBalance(ctx, "w1").Equal(decimal.NewFromInt(500)))
	assert.True(t, svc.ComputeBalance(ctx, "w2").IsZero())
}

func TestComputeBalanceOrderIndependent(t *testing.T) {
	ctx := context.Background()

	forward := store.New()
	putAttendance(forward, "w1", "2026-08-01", 500)
	putAttendance(forward, "w1", "2026-08-02", 400)
	putSalary(forward, "w1", "2026-08-02", 300)

	reversed := store.New()
	putSalary(reversed, "w1", "2026-08-02", 300)
	putAttendance(reversed, "w1", "2026-08-02", 400)
	putAttendance(reversed, "w1", "2026-08-01", 500)

	a := services.NewBalanceService(forward).ComputeBalance(ctx, "w1")
	b := services.NewBalanceService(reversed).ComputeBalance(ctx, "w1")
	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(decimal.NewFromInt(600)))
}

func TestComputeBalanceNeverReadsDenormalizedField(t *testing.T) {
	ctx := context.Background()
	s := store.New()
	svc := services.NewBalanceService(s)

	s.PutProfile(domain.Profile{ProfileID: "w1", FullName: "Ravi", Role: domain.RoleWorker})
	putAttendance(s, "w1", "2026-08-01", 500)

	// A drifted cache value must not leak into the computation.
	s.SetProfileBalance("w1", decimal.NewFromInt(123456))

	assert.True(t, svc.ComputeBalance(ctx, "w1").Equal(decimal.NewFromInt(500)))
}
