package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceStatus indicates how a worker's day is recorded.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceHalfDay AttendanceStatus = "Half-day"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

// Attendance is the authoritative wage-accrual event for a worker on a date.
// At most one record may exist per (worker, project, date).
type Attendance struct {
	AttendanceID string           `json:"attendanceID"`
	WorkerID     string           `json:"workerID"`
	ProjectID    string           `json:"projectID"`
	Date         string           `json:"date"` // day key, see DayKeyFormat
	Status       AttendanceStatus `json:"status"`
	Amount       decimal.Decimal  `json:"amount"` // wage accrued for the day
	CreatedAt    time.Time        `json:"createdAt"`
}

// CountsAsPresent reports whether this record contributes to a day's headcount.
func (a Attendance) CountsAsPresent() bool {
	return a.Status == AttendancePresent || a.Status == AttendanceHalfDay
}
