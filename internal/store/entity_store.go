// Package store holds the process-wide, cache-backed Entity Store: in-memory
// collections of every ledger entity, reconciled against the remote store of
// record by the sync service. It owns no business rules.
package store

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/sitebook/backend/internal/core/domain"
)

// EntityStore is the single mutable structure shared by the engine. Every
// mutation is one non-interleavable critical section; readers never observe a
// partially applied record.
type EntityStore struct {
	mu sync.RWMutex

	profiles     map[string]domain.Profile
	projects     map[string]domain.Project
	attendance   map[string]domain.Attendance
	transactions map[string]domain.Transaction
	materials    map[string]domain.MaterialLog
	reports      map[string]domain.WorkReport
	notices      map[string]domain.PublicNotice

	// attendanceKeys indexes worker|project|date to the record id, enforcing
	// the one-record-per-day uniqueness invariant.
	attendanceKeys map[string]string
}

// New creates an empty EntityStore.
func New() *EntityStore {
	s := &EntityStore{}
	s.reset()
	return s
}

func (s *EntityStore) reset() {
	s.profiles = make(map[string]domain.Profile)
	s.projects = make(map[string]domain.Project)
	s.attendance = make(map[string]domain.Attendance)
	s.transactions = make(map[string]domain.Transaction)
	s.materials = make(map[string]domain.MaterialLog)
	s.reports = make(map[string]domain.WorkReport)
	s.notices = make(map[string]domain.PublicNotice)
	s.attendanceKeys = make(map[string]string)
}

func attendanceKey(workerID, projectID, date string) string {
	return workerID + "|" + projectID + "|" + date
}

// --- Profiles ---

// PutProfile inserts or replaces a profile.
func (s *EntityStore) PutProfile(p domain.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ProfileID] = p
}

// GetProfile returns the profile with the given id.
func (s *EntityStore) GetProfile(id string) (domain.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	return p, ok
}

// ListProfiles returns all profiles, optionally filtered by role.
func (s *EntityStore) ListProfiles(role domain.Role) []domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		if role != "" && p.Role != role {
			continue
		}
		out = append(out, p)
	}
	sortByCreated(out, func(p domain.Profile) (string, int64) { return p.ProfileID, p.CreatedAt.UnixNano() })
	return out
}

// SetProfileBalance updates the denormalized balance cache on a profile.
// It is a no-op when the profile is absent.
func (s *EntityStore) SetProfileBalance(id string, balance decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[id]; ok {
		p.Balance = balance
		s.profiles[id] = p
	}
}

// --- Projects ---

func (s *EntityStore) PutProject(p domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ProjectID] = p
}

func (s *EntityStore) GetProject(id string) (domain.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	return p, ok
}

func (s *EntityStore) ListProjects() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sortByCreated(out, func(p domain.Project) (string, int64) { return p.ProjectID, p.CreatedAt.UnixNano() })
	return out
}

// --- Attendance ---

// HasAttendance reports whether a record already exists for the worker on the
// given project and date.
func (s *EntityStore) HasAttendance(workerID, projectID, date string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.attendanceKeys[attendanceKey(workerID, projectID, date)]
	return ok
}

// PutAttendanceIfAbsent inserts an attendance record only when no other
// record occupies its (worker, project, date) slot. Check and insert happen
// under one lock, so concurrent writers cannot both claim the same day.
// Re-applying the record that already holds the slot succeeds.
func (s *EntityStore) PutAttendanceIfAbsent(a domain.Attendance) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := attendanceKey(a.WorkerID, a.ProjectID, a.Date)
	if existing, ok := s.attendanceKeys[key]; ok && existing != a.AttendanceID {
		return false
	}
	s.attendance[a.AttendanceID] = a
	s.attendanceKeys[key] = a.AttendanceID
	return true
}

// PutAttendance inserts or replaces an attendance record. Applying the same
// record twice is idempotent: the uniqueness index maps back to the same id,
// so no duplicate and no balance drift can result.
func (s *EntityStore) PutAttendance(a domain.Attendance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.attendance[a.AttendanceID]; ok {
		delete(s.attendanceKeys, attendanceKey(old.WorkerID, old.ProjectID, old.Date))
	}
	s.attendance[a.AttendanceID] = a
	s.attendanceKeys[attendanceKey(a.WorkerID, a.ProjectID, a.Date)] = a.AttendanceID
}

// AttendanceFilter narrows ListAttendance. Zero values match everything.
type AttendanceFilter struct {
	WorkerID  string
	ProjectID string
	Date      string
}

func (s *EntityStore) ListAttendance(f AttendanceFilter) []domain.Attendance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Attendance, 0)
	for _, a := range s.attendance {
		if f.WorkerID != "" && a.WorkerID != f.WorkerID {
			continue
		}
		if f.ProjectID != "" && a.ProjectID != f.ProjectID {
			continue
		}
		if f.Date != "" && a.Date != f.Date {
			continue
		}
		out = append(out, a)
	}
	sortByCreated(out, func(a domain.Attendance) (string, int64) { return a.AttendanceID, a.CreatedAt.UnixNano() })
	return out
}

// --- Transactions ---

func (s *EntityStore) PutTransaction(t domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[t.TransactionID] = t
}

// TransactionFilter narrows ListTransactions. Zero values match everything.
type TransactionFilter struct {
	Type      domain.TransactionType
	ProjectID string
	WorkerID  string
	Date      string
}

func (s *EntityStore) ListTransactions(f TransactionFilter) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Transaction, 0)
	for _, t := range s.transactions {
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.ProjectID != "" && t.ProjectID != f.ProjectID {
			continue
		}
		if f.WorkerID != "" && t.WorkerID != f.WorkerID {
			continue
		}
		if f.Date != "" && t.Date != f.Date {
			continue
		}
		out = append(out, t)
	}
	sortByCreated(out, func(t domain.Transaction) (string, int64) { return t.TransactionID, t.CreatedAt.UnixNano() })
	return out
}

// --- Material logs ---

func (s *EntityStore) PutMaterialLog(m domain.MaterialLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials[m.MaterialLogID] = m
}

func (s *EntityStore) ListMaterialLogs(projectID string) []domain.MaterialLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.MaterialLog, 0)
	for _, m := range s.materials {
		if projectID != "" && m.ProjectID != projectID {
			continue
		}
		out = append(out, m)
	}
	sortByCreated(out, func(m domain.MaterialLog) (string, int64) { return m.MaterialLogID, m.CreatedAt.UnixNano() })
	return out
}

// --- Work reports ---

func (s *EntityStore) PutWorkReport(r domain.WorkReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.WorkReportID] = r
}

func (s *EntityStore) ListWorkReports(projectID string) []domain.WorkReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.WorkReport, 0)
	for _, r := range s.reports {
		if projectID != "" && r.ProjectID != projectID {
			continue
		}
		out = append(out, r)
	}
	sortByCreated(out, func(r domain.WorkReport) (string, int64) { return r.WorkReportID, r.CreatedAt.UnixNano() })
	return out
}

// --- Notices ---

func (s *EntityStore) PutNotice(n domain.PublicNotice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices[n.NoticeID] = n
}

func (s *EntityStore) ListNotices() []domain.PublicNotice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PublicNotice, 0, len(s.notices))
	for _, n := range s.notices {
		out = append(out, n)
	}
	sortByCreated(out, func(n domain.PublicNotice) (string, int64) { return n.NoticeID, n.CreatedAt.UnixNano() })
	return out
}

// --- Snapshot / reconciliation ---

// Snapshot is a serializable copy of every collection, used for the local
// cache and for remote reconciliation.
type Snapshot struct {
	Profiles     []domain.Profile      `json:"profiles"`
	Projects     []domain.Project      `json:"projects"`
	Attendance   []domain.Attendance   `json:"attendance"`
	Transactions []domain.Transaction  `json:"transactions"`
	Materials    []domain.MaterialLog  `json:"materials"`
	Reports      []domain.WorkReport   `json:"reports"`
	Notices      []domain.PublicNotice `json:"notices"`
}

// Snapshot returns a copy of the full store contents.
func (s *EntityStore) Snapshot() Snapshot {
	return Snapshot{
		Profiles:     s.ListProfiles(""),
		Projects:     s.ListProjects(),
		Attendance:   s.ListAttendance(AttendanceFilter{}),
		Transactions: s.ListTransactions(TransactionFilter{}),
		Materials:    s.ListMaterialLogs(""),
		Reports:      s.ListWorkReports(""),
		Notices:      s.ListNotices(),
	}
}

// Restore replaces the entire store contents with the snapshot.
func (s *EntityStore) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	for _, p := range snap.Profiles {
		s.profiles[p.ProfileID] = p
	}
	for _, p := range snap.Projects {
		s.projects[p.ProjectID] = p
	}
	for _, a := range snap.Attendance {
		s.attendance[a.AttendanceID] = a
		s.attendanceKeys[attendanceKey(a.WorkerID, a.ProjectID, a.Date)] = a.AttendanceID
	}
	for _, t := range snap.Transactions {
		s.transactions[t.TransactionID] = t
	}
	for _, m := range snap.Materials {
		s.materials[m.MaterialLogID] = m
	}
	for _, r := range snap.Reports {
		s.reports[r.WorkReportID] = r
	}
	for _, n := range snap.Notices {
		s.notices[n.NoticeID] = n
	}
}

// ClearSensitive drops worker, financial and site-record collections while
// keeping public notices. Used when session verification fails at startup and
// on explicit logout.
func (s *EntityStore) ClearSensitive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = make(map[string]domain.Profile)
	s.projects = make(map[string]domain.Project)
	s.attendance = make(map[string]domain.Attendance)
	s.transactions = make(map[string]domain.Transaction)
	s.materials = make(map[string]domain.MaterialLog)
	s.reports = make(map[string]domain.WorkReport)
	s.attendanceKeys = make(map[string]string)
}

// sortByCreated orders records by creation time, then id for stability.
func sortByCreated[T any](items []T, key func(T) (string, int64)) {
	sort.Slice(items, func(i, j int) bool {
		idI, tsI := key(items[i])
		idJ, tsJ := key(items[j])
		if tsI != tsJ {
			return tsI < tsJ
		}
		return idI < idJ
	})
}
