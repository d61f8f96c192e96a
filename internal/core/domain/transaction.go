package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a cash transaction.
type TransactionType string

const (
	TxnIncome  TransactionType = "income"
	TxnExpense TransactionType = "expense"
	TxnSalary  TransactionType = "salary"
)

// Transaction represents a single cash-flow entry. A salary transaction is a
// payment against a worker's outstanding balance and carries the WorkerID it
// is attributed to; income and expense entries are independent of wage
// balances. Amounts are always positive; the type carries the direction.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	ProjectID     string          `json:"projectID,omitempty"` // empty means "general"
	WorkerID      string          `json:"workerID,omitempty"`  // set only for salary
	Date          string          `json:"date"`                // day key
	CreatedAt     time.Time       `json:"createdAt"`
}
