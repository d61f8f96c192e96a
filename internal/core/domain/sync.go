package domain

// SyncState tracks a mutation through remote persistence. A mutation is never
// rolled back locally on remote failure; SyncFailed entries are retried on the
// next connectivity opportunity.
type SyncState string

const (
	SyncPending SyncState = "PENDING"
	SyncSynced  SyncState = "SYNCED"
	SyncFailed  SyncState = "SYNC_FAILED"
)

// MutationKind identifies which collection a queued mutation targets.
type MutationKind string

const (
	MutationAttendance  MutationKind = "attendance"
	MutationTransaction MutationKind = "transaction"
	MutationMaterialLog MutationKind = "material_log"
	MutationWorkReport  MutationKind = "work_report"
	MutationProfile     MutationKind = "profile"
	MutationProject     MutationKind = "project"
	MutationNotice      MutationKind = "notice"
)

// PendingMutation is a queued optimistic write awaiting remote persistence.
// Exactly one record pointer is set, matching Kind (tagged variant).
type PendingMutation struct {
	MutationID string       `json:"mutationID"`
	Kind       MutationKind `json:"kind"`
	RecordID   string       `json:"recordID"`
	Attempts   int          `json:"attempts"`

	Attendance  *Attendance   `json:"attendance,omitempty"`
	Transaction *Transaction  `json:"transaction,omitempty"`
	MaterialLog *MaterialLog  `json:"materialLog,omitempty"`
	WorkReport  *WorkReport   `json:"workReport,omitempty"`
	Profile     *Profile      `json:"profile,omitempty"`
	Project     *Project      `json:"project,omitempty"`
	Notice      *PublicNotice `json:"notice,omitempty"`
}

// MutationReceipt is returned by every gateway write: the locally committed
// record id plus the sync state at return time (always SyncPending unless the
// remote persist already completed).
type MutationReceipt struct {
	MutationID string       `json:"mutationID"`
	Kind       MutationKind `json:"kind"`
	RecordID   string       `json:"recordID"`
	State      SyncState    `json:"syncState"`
}
