package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database/wire row for a cash-flow entry. WorkerID is set
// only for salary rows.
type Transaction struct {
	TransactionID string          `json:"transactionID" db:"transaction_id" validate:"required"`
	Type          string          `json:"type" db:"type" validate:"required,oneof=income expense salary"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Description   string          `json:"description" db:"description"`
	ProjectID     *string         `json:"projectID,omitempty" db:"project_id"`
	WorkerID      *string         `json:"workerID,omitempty" db:"worker_id"`
	Date          string          `json:"date" db:"date" validate:"required,datetime=2006-01-02"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}
