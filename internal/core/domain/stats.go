package domain

import "github.com/shopspring/decimal"

// DailyStats is the per-date summary shown on dashboards.
//
// TotalDue is the present-moment outstanding liability across all workers,
// evaluated against the full history. The date scopes only TotalPresent and
// TotalExpense; a per-day due figure was never intended by the product.
type DailyStats struct {
	Date         string          `json:"date"`
	TotalPresent int             `json:"totalPresent"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	TotalDue     decimal.Decimal `json:"totalDue"`
}
