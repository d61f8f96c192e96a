package domain

import "time"

// DayKeyFormat is the calendar-day key used for attendance and transaction dates.
// Dates are compared as day strings; the caller supplies a consistent local day.
const DayKeyFormat = "2006-01-02"

// DayKey formats a time as the calendar-day key used across the ledger.
func DayKey(t time.Time) string {
	return t.Format(DayKeyFormat)
}
