package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attendance is the database/wire row for a wage-accrual event.
type Attendance struct {
	AttendanceID string          `json:"attendanceID" db:"attendance_id" validate:"required"`
	WorkerID     string          `json:"workerID" db:"worker_id" validate:"required"`
	ProjectID    string          `json:"projectID" db:"project_id" validate:"required"`
	Date         string          `json:"date" db:"date" validate:"required,datetime=2006-01-02"`
	Status       string          `json:"status" db:"status" validate:"required"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
}
