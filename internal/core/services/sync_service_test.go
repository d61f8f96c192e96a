package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sitebook/backend/internal/core/domain"
	portsrepo "github.com/sitebook/backend/internal/core/ports/repositories"
	portssvc "github.com/sitebook/backend/internal/core/ports/services"
	"github.com/sitebook/backend/internal/core/services"
	"github.com/sitebook/backend/internal/store"
)

// --- Mock remote repositories ---

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) SaveProfile(ctx context.Context, p domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) UpdateProfileBalance(ctx context.Context, profileID string, balance decimal.Decimal) error {
	args := m.Called(ctx, profileID, balance)
	return args.Error(0)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) SaveProject(ctx context.Context, p domain.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepository) UpdateProjectStatus(ctx context.Context, projectID string, status domain.ProjectStatus) error {
	args := m.Called(ctx, projectID, status)
	return args.Error(0)
}

type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) SaveAttendance(ctx context.Context, a domain.Attendance) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAttendanceRepository) ListAttendance(ctx context.Context) ([]domain.Attendance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attendance), args.Error(1)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, t domain.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

type MockMaterialLogRepository struct {
	mock.Mock
}

func (m *MockMaterialLogRepository) SaveMaterialLog(ctx context.Context, ml domain.MaterialLog) error {
	args := m.Called(ctx, ml)
	return args.Error(0)
}

func (m *MockMaterialLogRepository) ListMaterialLogs(ctx context.Context) ([]domain.MaterialLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MaterialLog), args.Error(1)
}

type MockWorkReportRepository struct {
	mock.Mock
}

func (m *MockWorkReportRepository) SaveWorkReport(ctx context.Context, r domain.WorkReport) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockWorkReportRepository) ListWorkReports(ctx context.Context) ([]domain.WorkReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkReport), args.Error(1)
}

type MockNoticeRepository struct {
	mock.Mock
}

func (m *MockNoticeRepository) SaveNotice(ctx context.Context, n domain.PublicNotice) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNoticeRepository) ListNotices(ctx context.Context) ([]domain.PublicNotice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PublicNotice), args.Error(1)
}

type MockSnapshotCache struct {
	mock.Mock
}

func (m *MockSnapshotCache) LoadSnapshot(ctx context.Context) (*store.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Snapshot), args.Error(1)
}

func (m *MockSnapshotCache) SaveSnapshot(ctx context.Context, snap store.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

func (m *MockSnapshotCache) ClearSensitive(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockSessionVerifier struct {
	mock.Mock
}

func (m *MockSessionVerifier) VerifySession(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var (
	_ portsrepo.ProfileRepository = (*MockProfileRepository)(nil)
	_ portsrepo.SnapshotCache     = (*MockSnapshotCache)(nil)
	_ portsrepo.SessionVerifier   = (*MockSessionVerifier)(nil)
)

// --- Test Suite ---

type SyncServiceTestSuite struct {
	suite.Suite
	entities     *store.EntityStore
	profiles     *MockProfileRepository
	projects     *MockProjectRepository
	attendance   *MockAttendanceRepository
	transactions *MockTransactionRepository
	materials    *MockMaterialLogRepository
	reports      *MockWorkReportRepository
	notices      *MockNoticeRepository
	cache        *MockSnapshotCache
	balance      portssvc.BalanceSvcFacade
}

func (suite *SyncServiceTestSuite) SetupTest() {
	suite.entities = store.New()
	suite.profiles = new(MockProfileRepository)
	suite.projects = new(MockProjectRepository)
	suite.attendance = new(MockAttendanceRepository)
	suite.transactions = new(MockTransactionRepository)
	suite.materials = new(MockMaterialLogRepository)
	suite.reports = new(MockWorkReportRepository)
	suite.notices = new(MockNoticeRepository)
	suite.cache = new(MockSnapshotCache)
	suite.balance = services.NewBalanceService(suite.entities)
}

func (suite *SyncServiceTestSuite) repos() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ProfileRepo:     suite.profiles,
		ProjectRepo:     suite.projects,
		AttendanceRepo:  suite.attendance,
		TransactionRepo: suite.transactions,
		MaterialRepo:    suite.materials,
		WorkReportRepo:  suite.reports,
		NoticeRepo:      suite.notices,
	}
}

func (suite *SyncServiceTestSuite) newService(options ...services.SyncServiceOption) portssvc.SyncSvcFacade {
	base := []services.SyncServiceOption{
		services.WithRemoteTimeout(time.Second),
		services.WithRetryInterval(time.Hour), // keep the background ticker out of tests
	}
	return services.NewSyncService(suite.entities, suite.repos(), suite.cache, suite.balance, append(base, options...)...)
}

func (suite *SyncServiceTestSuite) expectEmptyRemote() {
	suite.profiles.On("ListProfiles", mock.Anything).Return([]domain.Profile{}, nil).Maybe()
	suite.projects.On("ListProjects", mock.Anything).Return([]domain.Project{}, nil).Maybe()
	suite.attendance.On("ListAttendance", mock.Anything).Return([]domain.Attendance{}, nil).Maybe()
	suite.transactions.On("ListTransactions", mock.Anything).Return([]domain.Transaction{}, nil).Maybe()
	suite.materials.On("ListMaterialLogs", mock.Anything).Return([]domain.MaterialLog{}, nil).Maybe()
	suite.reports.On("ListWorkReports", mock.Anything).Return([]domain.WorkReport{}, nil).Maybe()
	suite.notices.On("ListNotices", mock.Anything).Return([]domain.PublicNotice{}, nil).Maybe()
}

func (suite *SyncServiceTestSuite) TestStart_RemoteWinsOverCachedSnapshot() {
	ctx := context.Background()

	// Stale cached row: the remote store has since corrected the amount.
	cached := &store.Snapshot{
		Attendance: []domain.Attendance{{
			AttendanceID: "a1", WorkerID: "w1", ProjectID: "p1", Date: "2026-08-01",
			Status: domain.AttendancePresent, Amount: decimal.NewFromInt(100),
		}},
	}
	canonical := domain.Attendance{
		AttendanceID: "a1", WorkerID: "w1", ProjectID: "p1", Date: "2026-08-01",
		Status: domain.AttendancePresent, Amount: decimal.NewFromInt(500),
	}
	worker := domain.Profile{ProfileID: "w1", FullName: "Ravi", Role: domain.RoleWorker}

	suite.cache.On("LoadSnapshot", mock.Anything).Return(cached, nil).Once()
	suite.cache.On("SaveSnapshot", mock.Anything, mock.AnythingOfType("store.Snapshot")).Return(nil)

	suite.profiles.On("ListProfiles", mock.Anything).Return([]domain.Profile{worker}, nil).Once()
	suite.projects.On("ListProjects", mock.Anything).Return([]domain.Project{}, nil).Once()
	suite.attendance.On("ListAttendance", mock.Anything).Return([]domain.Attendance{canonical}, nil).Once()
	suite.transactions.On("ListTransactions", mock.Anything).Return([]domain.Transaction{}, nil).Once()
	suite.materials.On("ListMaterialLogs", mock.Anything).Return([]domain.MaterialLog{}, nil).Once()
	suite.reports.On("ListWorkReports", mock.Anything).Return([]domain.WorkReport{}, nil).Once()
	suite.notices.On("ListNotices", mock.Anything).Return([]domain.PublicNotice{}, nil).Once()

	svc := suite.newService()
	suite.Require().True(svc.InitialLoadInProgress())
	suite.Require().NoError(svc.Start(ctx))
	defer svc.Stop(ctx)

	suite.False(svc.InitialLoadInProgress())

	got := suite.entities.ListAttendance(store.AttendanceFilter{WorkerID: "w1"})
	suite.Require().Len(got, 1)
	suite.True(got[0].Amount.Equal(decimal.NewFromInt(500)), "remote value wins")

	// Balances recomputed against the reconciled ledger.
	p, ok := suite.entities.GetProfile("w1")
	suite.Require().True(ok)
	suite.True(p.Balance.Equal(decimal.NewFromInt(500)))
}

func (suite *SyncServiceTestSuite) TestStart_QueuedMutationsReplayAfterRemoteWins() {
	ctx := context.Background()

	suite.cache.On("LoadSnapshot", mock.Anything).Return(nil, nil).Once()
	suite.cache.On("SaveSnapshot", mock.Anything, mock.AnythingOfType("store.Snapshot")).Return(nil)
	suite.expectEmptyRemote()

	// The queued record is not on the remote yet; it must survive the rebuild.
	local := domain.Attendance{
		AttendanceID: "local1", WorkerID: "w1", ProjectID: "p1", Date: "2026-08-02",
		Status: domain.AttendancePresent, Amount: decimal.NewFromInt(400),
	}
	suite.attendance.On("SaveAttendance", mock.Anything, local).Return(nil).Maybe()
	suite.profiles.On("UpdateProfileBalance", mock.Anything, "w1", mock.Anything).Return(nil).Maybe()

	svc := suite.newService()
	svc.Enqueue(domain.PendingMutation{
		MutationID: "m1",
		Kind:       domain.MutationAttendance,
		RecordID:   local.AttendanceID,
		Attendance: &local,
	})

	suite.Require().NoError(svc.Start(ctx))
	defer svc.Stop(ctx)

	suite.True(suite.entities.HasAttendance("w1", "p1", "2026-08-02"), "queued optimistic write replayed")
}

func (suite *SyncServiceTestSuite) TestStart_SessionFailureClearsSensitiveState() {
	ctx := context.Background()

	cached := &store.Snapshot{
		Profiles: []domain.Profile{{ProfileID: "w1", FullName: "Ravi", Role: domain.RoleWorker}},
		Notices:  []domain.PublicNotice{{NoticeID: "n1", Message: "site open"}},
	}
	suite.cache.On("LoadSnapshot", mock.Anything).Return(cached, nil).Once()
	suite.cache.On("ClearSensitive", mock.Anything).Return(nil).Once()
	suite.cache.On("SaveSnapshot", mock.Anything, mock.AnythingOfType("store.Snapshot")).Return(nil)

	verifier := new(MockSessionVerifier)
	verifier.On("VerifySession", mock.Anything).Return(assert.AnError).Once()

	svc := suite.newService(services.WithSessionVerifier(verifier))
	suite.Require().NoError(svc.Start(ctx))
	defer svc.Stop(ctx)

	// Cache-only degradation: no canonical pull was attempted.
	suite.False(svc.InitialLoadInProgress())
	_, ok := suite.entities.GetProfile("w1")
	suite.False(ok, "sensitive entities wiped")
	suite.Len(suite.entities.ListNotices(), 1, "public notices survive")

	verifier.AssertExpectations(suite.T())
	suite.cache.AssertExpectations(suite.T())
	suite.profiles.AssertNotCalled(suite.T(), "ListProfiles", mock.Anything)
}

func (suite *SyncServiceTestSuite) TestFlush_FailedMutationRetriesToSynced() {
	ctx := context.Background()

	n := domain.PublicNotice{NoticeID: "n1", Message: "holiday tomorrow", CreatedAt: time.Now()}
	suite.notices.On("SaveNotice", mock.Anything, n).Return(assert.AnError).Once()
	suite.notices.On("SaveNotice", mock.Anything, n).Return(nil).Once()
	suite.cache.On("SaveSnapshot", mock.Anything, mock.AnythingOfType("store.Snapshot")).Return(nil)

	svc := suite.newService()
	svc.Enqueue(domain.PendingMutation{
		MutationID: "m1",
		Kind:       domain.MutationNotice,
		RecordID:   "n1",
		Notice:     &n,
	})

	state, ok := svc.SyncStatus("m1")
	suite.Require().True(ok)
	suite.Equal(domain.SyncPending, state)
	suite.Equal(1, svc.PendingCount())

	// First flush hits the transport error; the mutation stays queued.
	suite.Require().NoError(svc.Stop(ctx))
	state, _ = svc.SyncStatus("m1")
	suite.Equal(domain.SyncFailed, state)
	suite.Equal(1, svc.FailedCount())
	suite.Equal(0, svc.PendingCount())

	// Next flush succeeds; no local state was ever rolled back in between.
	suite.Require().NoError(svc.Stop(ctx))
	state, _ = svc.SyncStatus("m1")
	suite.Equal(domain.SyncSynced, state)
	suite.Equal(0, svc.FailedCount())

	suite.notices.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestFlush_ConcurrentDrainsPersistEveryMutationOnce() {
	ctx := context.Background()
	suite.cache.On("SaveSnapshot", mock.Anything, mock.AnythingOfType("store.Snapshot")).Return(nil)

	svc := suite.newService()
	notices := make([]domain.PublicNotice, 5)
	for i := range notices {
		notices[i] = domain.PublicNotice{NoticeID: fmt.Sprintf("n%d", i), Message: "site closed", CreatedAt: time.Now()}
		suite.notices.On("SaveNotice", mock.Anything, notices[i]).Return(nil).Once()
		svc.Enqueue(domain.PendingMutation{
			MutationID: fmt.Sprintf("m%d", i),
			Kind:       domain.MutationNotice,
			RecordID:   notices[i].NoticeID,
			Notice:     &notices[i],
		})
	}

	// The retry loop and shutdown can both drain the queue at once. Each
	// mutation must be persisted exactly once and none may be dropped.
	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() { done <- svc.Stop(ctx) }()
	}
	suite.NoError(<-done)
	suite.NoError(<-done)

	suite.Equal(0, svc.PendingCount())
	suite.Equal(0, svc.FailedCount())
	for i := range notices {
		state, ok := svc.SyncStatus(fmt.Sprintf("m%d", i))
		suite.Require().True(ok)
		suite.Equal(domain.SyncSynced, state)
	}
	suite.notices.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestFlush_SalaryPushesRecomputedBalance() {
	ctx := context.Background()

	suite.entities.PutProfile(domain.Profile{ProfileID: "w1", FullName: "Ravi", Role: domain.RoleWorker})
	suite.entities.PutAttendance(domain.Attendance{
		AttendanceID: "a1", WorkerID: "w1", ProjectID: "p1", Date: "2026-08-01",
		Status: domain.AttendancePresent, Amount: decimal.NewFromInt(500),
	})
	txn := domain.Transaction{
		TransactionID: "t1", Type: domain.TxnSalary, Amount: decimal.NewFromInt(300),
		WorkerID: "w1", Date: "2026-08-01", CreatedAt: time.Now(),
	}
	suite.entities.PutTransaction(txn)

	suite.transactions.On("SaveTransaction", mock.Anything, txn).Return(nil).Once()
	suite.profiles.On("UpdateProfileBalance", mock.Anything, "w1", mock.MatchedBy(func(b decimal.Decimal) bool {
		return b.Equal(decimal.NewFromInt(200))
	})).Return(nil).Once()
	suite.cache.On("SaveSnapshot", mock.Anything, mock.AnythingOfType("store.Snapshot")).Return(nil)

	svc := suite.newService()
	svc.Enqueue(domain.PendingMutation{
		MutationID:  "m1",
		Kind:        domain.MutationTransaction,
		RecordID:    "t1",
		Transaction: &txn,
	})

	suite.Require().NoError(svc.Stop(ctx))

	state, _ := svc.SyncStatus("m1")
	suite.Equal(domain.SyncSynced, state)
	suite.transactions.AssertExpectations(suite.T())
	suite.profiles.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestMergeRemoteEvent_Idempotent() {
	ctx := context.Background()
	suite.entities.PutProfile(domain.Profile{ProfileID: "w1", FullName: "Ravi", Role: domain.RoleWorker})

	svc := suite.newService().(interface {
		MergeRemoteEvent(ctx context.Context, ev portsrepo.ChangeEvent) error
	})

	payload, err := json.Marshal(map[string]any{
		"attendanceID": "a1",
		"workerID":     "w1",
		"projectID":    "p1",
		"date":         "2026-08-01",
		"status":       "Present",
		"amount":       "500",
		"createdAt":    time.Now().UTC().Format(time.RFC3339),
	})
	suite.Require().NoError(err)
	ev := portsrepo.ChangeEvent{Kind: domain.MutationAttendance, Payload: payload}

	suite.Require().NoError(svc.MergeRemoteEvent(ctx, ev))
	suite.Require().NoError(svc.MergeRemoteEvent(ctx, ev))

	suite.Len(suite.entities.ListAttendance(store.AttendanceFilter{WorkerID: "w1"}), 1)
	p, _ := suite.entities.GetProfile("w1")
	suite.True(p.Balance.Equal(decimal.NewFromInt(500)), "no balance drift on repeated merge")
}

func (suite *SyncServiceTestSuite) TestMergeRemoteEvent_RejectsMalformedPayload() {
	svc := suite.newService().(interface {
		MergeRemoteEvent(ctx context.Context, ev portsrepo.ChangeEvent) error
	})

	// Missing required fields must not reach the store.
	ev := portsrepo.ChangeEvent{Kind: domain.MutationAttendance, Payload: []byte(`{"workerID":"w1"}`)}
	suite.Require().Error(svc.MergeRemoteEvent(context.Background(), ev))
	suite.Empty(suite.entities.ListAttendance(store.AttendanceFilter{}))

	ev = portsrepo.ChangeEvent{Kind: "unknown_kind", Payload: []byte(`{}`)}
	suite.Require().Error(svc.MergeRemoteEvent(context.Background(), ev))
}

func TestSyncService(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}
