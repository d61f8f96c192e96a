package domain

import "time"

// WorkReport is a supervisor's daily progress report for a project. ImageURL
// is an opaque reference to an externally stored image.
type WorkReport struct {
	WorkReportID string    `json:"workReportID"`
	ProjectID    string    `json:"projectID"`
	SubmittedBy  string    `json:"submittedBy"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"imageURL,omitempty"`
	Date         string    `json:"date"` // day key
	CreatedAt    time.Time `json:"createdAt"`
}
