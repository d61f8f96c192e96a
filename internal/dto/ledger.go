package dto

import (
	"github.com/shopspring/decimal"

	"github.com/sitebook/backend/internal/core/domain"
)

// CreateAttendanceRequest records one worker-day.
type CreateAttendanceRequest struct {
	WorkerID  string          `json:"workerID" binding:"required"`
	ProjectID string          `json:"projectID" binding:"required"`
	Date      string          `json:"date" binding:"required,datetime=2006-01-02"`
	Status    string          `json:"status" binding:"omitempty,oneof=Present Half-day Absent"`
	Amount    decimal.Decimal `json:"amount"`
}

// ToDomain converts the request into a domain record.
func (r CreateAttendanceRequest) ToDomain() domain.Attendance {
	return domain.Attendance{
		WorkerID:  r.WorkerID,
		ProjectID: r.ProjectID,
		Date:      r.Date,
		Status:    domain.AttendanceStatus(r.Status),
		Amount:    r.Amount,
	}
}

// CreateTransactionRequest records a cash-flow entry.
type CreateTransactionRequest struct {
	Type        string          `json:"type" binding:"required,oneof=income expense salary"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	ProjectID   string          `json:"projectID"`
	WorkerID    string          `json:"workerID"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
}

// ToDomain converts the request into a domain record.
func (r CreateTransactionRequest) ToDomain() domain.Transaction {
	return domain.Transaction{
		Type:        domain.TransactionType(r.Type),
		Amount:      r.Amount,
		Description: r.Description,
		ProjectID:   r.ProjectID,
		WorkerID:    r.WorkerID,
		Date:        r.Date,
	}
}

// PayWorkerRequest pays an amount against a worker's outstanding balance.
type PayWorkerRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// MutationResponse is returned by every write: the committed record id plus
// the sync state at response time.
type MutationResponse struct {
	MutationID string           `json:"mutationID"`
	RecordID   string           `json:"recordID"`
	SyncState  domain.SyncState `json:"syncState"`
}

// NewMutationResponse builds the write response from a gateway receipt.
func NewMutationResponse(receipt *domain.MutationReceipt) MutationResponse {
	return MutationResponse{
		MutationID: receipt.MutationID,
		RecordID:   receipt.RecordID,
		SyncState:  receipt.State,
	}
}

// BalanceResponse carries one worker's computed outstanding balance.
type BalanceResponse struct {
	WorkerID string          `json:"workerID"`
	Balance  decimal.Decimal `json:"balance"`
}

// SyncStatusResponse summarizes the sync manager's state.
type SyncStatusResponse struct {
	InitialLoadInProgress bool `json:"initialLoadInProgress"`
	PendingMutations      int  `json:"pendingMutations"`
	FailedMutations       int  `json:"failedMutations"`
}
