package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/sitebook/backend/internal/apperrors"
	"github.com/sitebook/backend/internal/core/domain"
	portsrepo "github.com/sitebook/backend/internal/core/ports/repositories"
	portssvc "github.com/sitebook/backend/internal/core/ports/services"
	"github.com/sitebook/backend/internal/store"
)

// syncService reconciles the entity store with the remote store of record.
//
// Startup sequence: restore the cached snapshot immediately so reads have
// instant (possibly stale) data, verify the session, then pull canonical
// state with remote values winning on conflict. Queued optimistic writes are
// replayed on top of the reconciled state, never discarded. Ongoing, it
// drains the pending-mutation queue and merges change-feed events
// idempotently.
type syncService struct {
	BaseService
	entities *store.EntityStore
	repos    portsrepo.RepositoryProvider
	cache    portsrepo.SnapshotCache
	feed     portsrepo.ChangeFeed
	session  portsrepo.SessionVerifier
	balance  portssvc.BalanceSvcFacade

	remoteTimeout time.Duration
	retryInterval time.Duration

	mu     sync.Mutex
	queue  []domain.PendingMutation
	status map[string]domain.SyncState

	// flushMu serializes flush passes: the loop and Stop may both drain the
	// queue, and a pop must only ever remove the entry that was persisted.
	flushMu sync.Mutex

	initialLoad atomic.Bool
	wake        chan struct{}
	done        chan struct{}
	stopOnce    sync.Once
}

// SyncServiceOption configures the sync service.
type SyncServiceOption func(*syncService)

// WithRemoteTimeout bounds every single remote call.
func WithRemoteTimeout(d time.Duration) SyncServiceOption {
	return func(s *syncService) { s.remoteTimeout = d }
}

// WithRetryInterval sets how often failed mutations are retried.
func WithRetryInterval(d time.Duration) SyncServiceOption {
	return func(s *syncService) { s.retryInterval = d }
}

// WithChangeFeed attaches the remote change-notification subscription.
func WithChangeFeed(feed portsrepo.ChangeFeed) SyncServiceOption {
	return func(s *syncService) { s.feed = feed }
}

// WithSessionVerifier attaches the startup session check.
func WithSessionVerifier(v portsrepo.SessionVerifier) SyncServiceOption {
	return func(s *syncService) { s.session = v }
}

// NewSyncService creates the sync manager.
func NewSyncService(entities *store.EntityStore, repos portsrepo.RepositoryProvider, cache portsrepo.SnapshotCache, balance portssvc.BalanceSvcFacade, options ...SyncServiceOption) portssvc.SyncSvcFacade {
	svc := &syncService{
		entities:      entities,
		repos:         repos,
		cache:         cache,
		balance:       balance,
		remoteTimeout: 30 * time.Second,
		retryInterval: 15 * time.Second,
		status:        make(map[string]domain.SyncState),
		wake:          make(chan struct{}, 1),
		done:          make(chan struct{}),
	}
	for _, option := range options {
		option(svc)
	}
	svc.initialLoad.Store(true)
	return svc
}

var _ portssvc.SyncSvcFacade = (*syncService)(nil)

// Start runs the startup sequence and launches the background sync loop.
// A failed session check or unreachable remote store is not an error: the
// engine degrades to cache-only operation and keeps retrying in background.
func (s *syncService) Start(ctx context.Context) error {
	// 1. Cached snapshot first: instant, possibly stale reads.
	snap, err := s.cache.LoadSnapshot(ctx)
	if err != nil {
		s.LogWarn(ctx, "Snapshot cache unavailable, starting empty", slog.String("error", err.Error()))
	} else if snap != nil {
		s.entities.Restore(*snap)
		s.LogInfo(ctx, "Entity store restored from cached snapshot")
	}

	// 2. Verify the backing session before trusting the remote store.
	if s.session != nil {
		verifyCtx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
		err = s.session.VerifySession(verifyCtx)
		cancel()
		if err != nil {
			// 3. No session: sensitive cached entities must not linger.
			s.LogWarn(ctx, "Session verification failed, clearing sensitive cache", slog.String("error", err.Error()))
			s.entities.ClearSensitive()
			if cerr := s.cache.ClearSensitive(ctx); cerr != nil {
				s.LogWarn(ctx, "Failed to clear sensitive cache", slog.String("error", cerr.Error()))
			}
			s.initialLoad.Store(false)
			s.startBackground()
			return nil
		}
	}

	// 4. Pull canonical state; remote wins, queued local writes replay after.
	if err := s.reconcile(ctx); err != nil {
		s.LogWarn(ctx, "Initial reconciliation failed, serving cached state", slog.String("error", err.Error()))
	}
	s.initialLoad.Store(false)

	s.startBackground()
	return nil
}

func (s *syncService) startBackground() {
	go s.syncLoop()
	if s.feed != nil {
		go s.consumeChangeFeed()
	}
}

// Stop flushes the queue once more and persists a final snapshot.
func (s *syncService) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.done) })
	s.flush(ctx)
	if s.feed != nil {
		if err := s.feed.Close(); err != nil {
			s.LogWarn(ctx, "Failed to close change feed", slog.String("error", err.Error()))
		}
	}
	if err := s.cache.SaveSnapshot(ctx, s.entities.Snapshot()); err != nil {
		return fmt.Errorf("failed to persist final snapshot: %w", err)
	}
	return nil
}

// InitialLoadInProgress reports whether the first canonical pull has not yet
// completed.
func (s *syncService) InitialLoadInProgress() bool {
	return s.initialLoad.Load()
}

// Enqueue accepts an optimistically applied mutation for remote persistence.
// Never blocks on remote I/O; the background loop picks it up immediately.
func (s *syncService) Enqueue(m domain.PendingMutation) {
	s.mu.Lock()
	s.queue = append(s.queue, m)
	s.status[m.MutationID] = domain.SyncPending
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// SyncStatus returns the state of a previously enqueued mutation.
func (s *syncService) SyncStatus(mutationID string) (domain.SyncState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.status[mutationID]
	return state, ok
}

func (s *syncService) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.queue {
		if s.status[m.MutationID] == domain.SyncPending {
			n++
		}
	}
	return n
}

func (s *syncService) FailedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.queue {
		if s.status[m.MutationID] == domain.SyncFailed {
			n++
		}
	}
	return n
}

// syncLoop drains the queue on every wake-up or retry tick until Stop.
func (s *syncService) syncLoop() {
	ticker := time.NewTicker(s.retryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		case <-ticker.C:
		}
		s.flush(context.Background())
	}
}

// flush persists queued mutations in FIFO order. The first failure stops the
// pass: connectivity is likely down and order must be preserved. Only one
// pass runs at a time; a concurrent caller waits and then drains whatever
// the first pass left behind.
func (s *syncService) flush(ctx context.Context) {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		m := s.queue[0]
		s.mu.Unlock()

		if err := s.persist(ctx, m); err != nil {
			s.mu.Lock()
			s.queue[0].Attempts++
			s.status[m.MutationID] = domain.SyncFailed
			s.mu.Unlock()
			s.LogWarn(ctx, "Mutation persist failed, queued for retry",
				slog.String("mutation_id", m.MutationID),
				slog.String("kind", string(m.Kind)),
				slog.String("error", err.Error()))
			return
		}

		s.mu.Lock()
		s.queue = s.queue[1:]
		s.status[m.MutationID] = domain.SyncSynced
		s.mu.Unlock()
		s.LogDebug(ctx, "Mutation synced",
			slog.String("mutation_id", m.MutationID),
			slog.String("kind", string(m.Kind)))
	}
}

// persist writes one mutation to the remote store, bounded by the configured
// timeout. Balance-affecting mutations also push the recomputed denormalized
// balance so the remote profile row stays equal to the calculator's output.
func (s *syncService) persist(ctx context.Context, m domain.PendingMutation) error {
	callCtx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()

	var err error
	var balanceWorker string
	switch m.Kind {
	case domain.MutationAttendance:
		err = s.repos.AttendanceRepo.SaveAttendance(callCtx, *m.Attendance)
		balanceWorker = m.Attendance.WorkerID
	case domain.MutationTransaction:
		err = s.repos.TransactionRepo.SaveTransaction(callCtx, *m.Transaction)
		if m.Transaction.Type == domain.TxnSalary {
			balanceWorker = m.Transaction.WorkerID
		}
	case domain.MutationMaterialLog:
		err = s.repos.MaterialRepo.SaveMaterialLog(callCtx, *m.MaterialLog)
	case domain.MutationWorkReport:
		err = s.repos.WorkReportRepo.SaveWorkReport(callCtx, *m.WorkReport)
	case domain.MutationProfile:
		err = s.repos.ProfileRepo.SaveProfile(callCtx, *m.Profile)
	case domain.MutationProject:
		err = s.repos.ProjectRepo.SaveProject(callCtx, *m.Project)
	case domain.MutationNotice:
		err = s.repos.NoticeRepo.SaveNotice(callCtx, *m.Notice)
	default:
		return fmt.Errorf("%w: unknown mutation kind %q", apperrors.ErrValidation, m.Kind)
	}
	if err != nil {
		return classifyRemoteErr(err)
	}

	if balanceWorker != "" {
		balance := s.balance.ComputeBalance(ctx, balanceWorker)
		if err := s.repos.ProfileRepo.UpdateProfileBalance(callCtx, balanceWorker, balance); err != nil {
			return classifyRemoteErr(err)
		}
	}
	return nil
}

// reconcile pulls canonical rows and rebuilds the store: remote wins on
// conflict, then queued local mutations are replayed on top.
func (s *syncService) reconcile(ctx context.Context) error {
	snap, err := s.pullRemote(ctx)
	if err != nil {
		return err
	}

	s.entities.Restore(*snap)
	s.replayQueued(ctx)
	s.refreshAllBalances(ctx)

	if err := s.cache.SaveSnapshot(ctx, s.entities.Snapshot()); err != nil {
		s.LogWarn(ctx, "Failed to cache reconciled snapshot", slog.String("error", err.Error()))
	}
	s.LogInfo(ctx, "Reconciliation complete",
		slog.Int("profiles", len(snap.Profiles)),
		slog.Int("attendance", len(snap.Attendance)),
		slog.Int("transactions", len(snap.Transactions)))
	return nil
}

// pullRemote lists every collection, each call bounded by the remote timeout.
func (s *syncService) pullRemote(ctx context.Context) (*store.Snapshot, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()

	snap := &store.Snapshot{}
	var err error
	if snap.Profiles, err = s.repos.ProfileRepo.ListProfiles(callCtx); err != nil {
		return nil, classifyRemoteErr(err)
	}
	if snap.Projects, err = s.repos.ProjectRepo.ListProjects(callCtx); err != nil {
		return nil, classifyRemoteErr(err)
	}
	if snap.Attendance, err = s.repos.AttendanceRepo.ListAttendance(callCtx); err != nil {
		return nil, classifyRemoteErr(err)
	}
	if snap.Transactions, err = s.repos.TransactionRepo.ListTransactions(callCtx); err != nil {
		return nil, classifyRemoteErr(err)
	}
	if snap.Materials, err = s.repos.MaterialRepo.ListMaterialLogs(callCtx); err != nil {
		return nil, classifyRemoteErr(err)
	}
	if snap.Reports, err = s.repos.WorkReportRepo.ListWorkReports(callCtx); err != nil {
		return nil, classifyRemoteErr(err)
	}
	if snap.Notices, err = s.repos.NoticeRepo.ListNotices(callCtx); err != nil {
		return nil, classifyRemoteErr(err)
	}
	return snap, nil
}

// replayQueued re-applies queued optimistic writes after a remote-wins
// rebuild. Replay is idempotent: a mutation whose record already arrived via
// the pull overwrites it with identical content.
func (s *syncService) replayQueued(ctx context.Context) {
	s.mu.Lock()
	queued := make([]domain.PendingMutation, len(s.queue))
	copy(queued, s.queue)
	s.mu.Unlock()

	for _, m := range queued {
		s.applyLocal(m)
	}
	if len(queued) > 0 {
		s.LogInfo(ctx, "Replayed queued local mutations", slog.Int("count", len(queued)))
	}
}

// applyLocal puts a mutation's record into the entity store.
func (s *syncService) applyLocal(m domain.PendingMutation) {
	switch m.Kind {
	case domain.MutationAttendance:
		s.entities.PutAttendance(*m.Attendance)
	case domain.MutationTransaction:
		s.entities.PutTransaction(*m.Transaction)
	case domain.MutationMaterialLog:
		s.entities.PutMaterialLog(*m.MaterialLog)
	case domain.MutationWorkReport:
		s.entities.PutWorkReport(*m.WorkReport)
	case domain.MutationProfile:
		s.entities.PutProfile(*m.Profile)
	case domain.MutationProject:
		s.entities.PutProject(*m.Project)
	case domain.MutationNotice:
		s.entities.PutNotice(*m.Notice)
	}
}

// refreshAllBalances recomputes the denormalized balance cache for every
// worker profile after a rebuild.
func (s *syncService) refreshAllBalances(ctx context.Context) {
	for _, w := range s.entities.ListProfiles(domain.RoleWorker) {
		s.entities.SetProfileBalance(w.ProfileID, s.balance.ComputeBalance(ctx, w.ProfileID))
	}
}

// consumeChangeFeed merges out-of-band remote row changes into the store.
func (s *syncService) consumeChangeFeed() {
	ctx := context.Background()
	events, err := s.feed.Subscribe(ctx)
	if err != nil {
		s.LogWarn(ctx, "Change feed subscription failed", slog.String("error", err.Error()))
		return
	}
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := s.MergeRemoteEvent(ctx, ev); err != nil {
				s.LogWarn(ctx, "Rejected malformed change event",
					slog.String("kind", string(ev.Kind)),
					slog.String("error", err.Error()))
			}
		}
	}
}

// MergeRemoteEvent parses, validates and applies one remote change event.
// Merging is idempotent: applying the same row twice produces no duplicate
// and no balance drift.
func (s *syncService) MergeRemoteEvent(ctx context.Context, ev portsrepo.ChangeEvent) error {
	m, err := decodeChangeEvent(ev)
	if err != nil {
		return err
	}
	s.applyLocal(*m)

	switch {
	case m.Kind == domain.MutationAttendance:
		s.entities.SetProfileBalance(m.Attendance.WorkerID, s.balance.ComputeBalance(ctx, m.Attendance.WorkerID))
	case m.Kind == domain.MutationTransaction && m.Transaction.Type == domain.TxnSalary:
		s.entities.SetProfileBalance(m.Transaction.WorkerID, s.balance.ComputeBalance(ctx, m.Transaction.WorkerID))
	}
	return nil
}

// classifyRemoteErr maps transport failures onto the engine's error taxonomy.
// A failure at the network layer means the remote store is unreachable, not
// that it rejected the write.
func classifyRemoteErr(err error) error {
	var opErr *net.OpError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", apperrors.ErrTimedOut, err)
	case errors.Is(err, context.Canceled):
		return err
	case errors.As(err, &opErr), errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return fmt.Errorf("%w: %v", apperrors.ErrOffline, err)
	default:
		return fmt.Errorf("%w: %v", apperrors.ErrRemoteRejected, err)
	}
}
