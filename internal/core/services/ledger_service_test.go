package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/sitebook/backend/internal/apperrors"
	"github.com/sitebook/backend/internal/core/domain"
	portssvc "github.com/sitebook/backend/internal/core/ports/services"
	"github.com/sitebook/backend/internal/core/services"
	"github.com/sitebook/backend/internal/store"
)

// recordingQueue captures enqueued mutations without any remote I/O.
type recordingQueue struct {
	mu        sync.Mutex
	mutations []domain.PendingMutation
}

func (q *recordingQueue) Enqueue(m domain.PendingMutation) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.mutations = append(q.mutations, m)
}

var _ portssvc.MutationQueue = (*recordingQueue)(nil)

type LedgerServiceTestSuite struct {
	suite.Suite
	entities *store.EntityStore
	queue    *recordingQueue
	balance  portssvc.BalanceSvcFacade
	service  portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.entities = store.New()
	suite.queue = &recordingQueue{}
	suite.balance = services.NewBalanceService(suite.entities)
	suite.service = services.NewLedgerService(suite.entities, suite.balance, suite.queue)
}

func (suite *LedgerServiceTestSuite) seedWorker(id string) {
	suite.entities.PutProfile(domain.Profile{ProfileID: id, FullName: "Worker " + id, Role: domain.RoleWorker})
}

func (suite *LedgerServiceTestSuite) TestRecordAttendance_Success() {
	ctx := context.Background()
	suite.seedWorker("w1")

	receipt, err := suite.service.RecordAttendance(ctx, domain.Attendance{
		WorkerID:  "w1",
		ProjectID: "p1",
		Date:      "2026-08-01",
		Amount:    decimal.NewFromInt(500),
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(receipt)
	suite.NotEmpty(receipt.MutationID)
	suite.NotEmpty(receipt.RecordID)
	suite.Equal(domain.SyncPending, receipt.State)
	suite.Equal(domain.MutationAttendance, receipt.Kind)

	// Applied locally and visible before any remote round trip.
	suite.True(suite.entities.HasAttendance("w1", "p1", "2026-08-01"))
	records := suite.entities.ListAttendance(store.AttendanceFilter{WorkerID: "w1"})
	suite.Require().Len(records, 1)
	suite.Equal(domain.AttendancePresent, records[0].Status, "status defaults to Present")

	// Denormalized balance refreshed synchronously.
	p, _ := suite.entities.GetProfile("w1")
	suite.True(p.Balance.Equal(decimal.NewFromInt(500)))

	suite.Require().Len(suite.queue.mutations, 1)
	suite.Equal(receipt.MutationID, suite.queue.mutations[0].MutationID)
}

func (suite *LedgerServiceTestSuite) TestRecordAttendance_DuplicateRejectedWithoutPartialState() {
	ctx := context.Background()
	suite.seedWorker("w1")

	first := domain.Attendance{WorkerID: "w1", ProjectID: "p1", Date: "2026-08-01", Amount: decimal.NewFromInt(500)}
	_, err := suite.service.RecordAttendance(ctx, first)
	suite.Require().NoError(err)

	// Same worker, project and date but a different amount.
	dup := domain.Attendance{WorkerID: "w1", ProjectID: "p1", Date: "2026-08-01", Amount: decimal.NewFromInt(999)}
	receipt, err := suite.service.RecordAttendance(ctx, dup)

	suite.Require().Error(err)
	suite.Nil(receipt)
	suite.ErrorIs(err, apperrors.ErrValidation)

	// The rejection touched nothing: one record, unchanged balance, one queued mutation.
	suite.Len(suite.entities.ListAttendance(store.AttendanceFilter{WorkerID: "w1"}), 1)
	p, _ := suite.entities.GetProfile("w1")
	suite.True(p.Balance.Equal(decimal.NewFromInt(500)))
	suite.Len(suite.queue.mutations, 1)
}

func (suite *LedgerServiceTestSuite) TestRecordAttendance_ZeroAmountAllowed() {
	ctx := context.Background()
	suite.seedWorker("w1")

	_, err := suite.service.RecordAttendance(ctx, domain.Attendance{
		WorkerID:  "w1",
		ProjectID: "p1",
		Date:      "2026-08-01",
		Status:    domain.AttendanceAbsent,
	})
	suite.Require().NoError(err)

	_, err = suite.service.RecordAttendance(ctx, domain.Attendance{
		WorkerID:  "w1",
		ProjectID: "p1",
		Date:      "2026-08-02",
		Amount:    decimal.NewFromInt(-1),
	})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestRecordAttendance_MissingFields() {
	ctx := context.Background()
	cases := []domain.Attendance{
		{ProjectID: "p1", Date: "2026-08-01"},
		{WorkerID: "w1", Date: "2026-08-01"},
		{WorkerID: "w1", ProjectID: "p1"},
	}
	for _, a := range cases {
		_, err := suite.service.RecordAttendance(ctx, a)
		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.Empty(suite.queue.mutations)
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_SalaryRequiresKnownWorker() {
	ctx := context.Background()

	_, err := suite.service.RecordTransaction(ctx, domain.Transaction{
		Type:     domain.TxnSalary,
		Amount:   decimal.NewFromInt(200),
		WorkerID: "ghost",
		Date:     "2026-08-01",
	})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Empty(suite.queue.mutations)
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_RejectsBadInput() {
	ctx := context.Background()
	suite.seedWorker("w1")

	_, err := suite.service.RecordTransaction(ctx, domain.Transaction{Type: "bribe", Amount: decimal.NewFromInt(10), Date: "2026-08-01"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.RecordTransaction(ctx, domain.Transaction{Type: domain.TxnExpense, Amount: decimal.Zero, Date: "2026-08-01"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.RecordTransaction(ctx, domain.Transaction{Type: domain.TxnExpense, Amount: decimal.NewFromInt(10)})
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.Empty(suite.queue.mutations)
}

func (suite *LedgerServiceTestSuite) TestPayWorker_BalanceVisibleImmediately() {
	ctx := context.Background()
	suite.seedWorker("w1")

	_, err := suite.service.RecordAttendance(ctx, domain.Attendance{
		WorkerID: "w1", ProjectID: "p1", Date: "2026-08-01", Amount: decimal.NewFromInt(500),
	})
	suite.Require().NoError(err)

	receipt, err := suite.service.PayWorker(ctx, "w1", decimal.NewFromInt(300), "")
	suite.Require().NoError(err)
	suite.Equal(domain.SyncPending, receipt.State)

	// Nothing was pushed remotely, yet the recomputed balance is already readable.
	p, _ := suite.entities.GetProfile("w1")
	suite.True(p.Balance.Equal(decimal.NewFromInt(200)))

	txns := suite.entities.ListTransactions(store.TransactionFilter{Type: domain.TxnSalary, WorkerID: "w1"})
	suite.Require().Len(txns, 1)
	suite.Equal("Salary payment", txns[0].Description)
}

func (suite *LedgerServiceTestSuite) TestPayWorker_UnknownWorker() {
	_, err := suite.service.PayWorker(context.Background(), "ghost", decimal.NewFromInt(100), "")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestCreateWorker_DefaultsAndEnqueue() {
	ctx := context.Background()

	receipt, err := suite.service.CreateWorker(ctx, domain.Profile{FullName: "Ravi"})
	suite.Require().NoError(err)

	p, ok := suite.entities.GetProfile(receipt.RecordID)
	suite.Require().True(ok)
	suite.Equal(domain.RoleWorker, p.Role)
	suite.True(p.Balance.IsZero())
	suite.False(p.CreatedAt.IsZero())

	_, err = suite.service.CreateWorker(ctx, domain.Profile{FullName: "X", Role: "intern"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestUpdateProjectStatus() {
	ctx := context.Background()

	receipt, err := suite.service.CreateProject(ctx, domain.Project{ProjectName: "Tower A"})
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateProjectStatus(ctx, receipt.RecordID, domain.ProjectCompleted)
	suite.Require().NoError(err)
	suite.Equal(receipt.RecordID, updated.RecordID)

	p, _ := suite.entities.GetProject(receipt.RecordID)
	suite.Equal(domain.ProjectCompleted, p.Status)

	_, err = suite.service.UpdateProjectStatus(ctx, "missing", domain.ProjectOnHold)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.UpdateProjectStatus(ctx, receipt.RecordID, "archived")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestPostNotice() {
	ctx := context.Background()

	receipt, err := suite.service.PostNotice(ctx, domain.PublicNotice{Message: "holiday tomorrow"})
	suite.Require().NoError(err)
	suite.Equal(domain.MutationNotice, receipt.Kind)
	suite.Len(suite.entities.ListNotices(), 1)

	_, err = suite.service.PostNotice(ctx, domain.PublicNotice{})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestRecordMaterialLogAndWorkReport() {
	ctx := context.Background()

	_, err := suite.service.RecordMaterialLog(ctx, domain.MaterialLog{
		ProjectID: "p1", ItemName: "Cement", Quantity: decimal.NewFromInt(50), Unit: "bags", Date: "2026-08-01",
	})
	suite.Require().NoError(err)
	suite.Len(suite.entities.ListMaterialLogs("p1"), 1)

	_, err = suite.service.RecordMaterialLog(ctx, domain.MaterialLog{ProjectID: "p1", Date: "2026-08-01"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.RecordWorkReport(ctx, domain.WorkReport{
		ProjectID: "p1", Description: "Slab casting done", Date: "2026-08-01",
	})
	suite.Require().NoError(err)
	suite.Len(suite.entities.ListWorkReports("p1"), 1)

	_, err = suite.service.RecordWorkReport(ctx, domain.WorkReport{ProjectID: "p1", Date: "2026-08-01"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func TestRecordAttendanceConcurrentSameDayCommitsOnce(t *testing.T) {
	entities := store.New()
	queue := &recordingQueue{}
	svc := services.NewLedgerService(entities, services.NewBalanceService(entities), queue)
	entities.PutProfile(domain.Profile{ProfileID: "w1", FullName: "Worker w1", Role: domain.RoleWorker})

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RecordAttendance(context.Background(), domain.Attendance{
				WorkerID:  "w1",
				ProjectID: "p1",
				Date:      "2026-08-01",
				Amount:    decimal.NewFromInt(500),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
	assert.Equal(t, 1, succeeded, "exactly one writer claims the day")

	// One record, one queued mutation, one day's wage on the balance.
	assert.Len(t, entities.ListAttendance(store.AttendanceFilter{WorkerID: "w1"}), 1)
	assert.Len(t, queue.mutations, 1)
	p, _ := entities.GetProfile("w1")
	assert.True(t, p.Balance.Equal(decimal.NewFromInt(500)))
}

func TestLedgerReceiptsAreUniquePerMutation(t *testing.T) {
	entities := store.New()
	queue := &recordingQueue{}
	svc := services.NewLedgerService(entities, services.NewBalanceService(entities), queue)

	r1, err := svc.PostNotice(context.Background(), domain.PublicNotice{Message: "a"})
	require.NoError(t, err)
	r2, err := svc.PostNotice(context.Background(), domain.PublicNotice{Message: "b"})
	require.NoError(t, err)

	assert.NotEqual(t, r1.MutationID, r2.MutationID)
	assert.NotEqual(t, r1.RecordID, r2.RecordID)
}
