package models

import "time"

// WorkReport is the database/wire row for a daily work report.
type WorkReport struct {
	WorkReportID string    `json:"workReportID" db:"work_report_id" validate:"required"`
	ProjectID    string    `json:"projectID" db:"project_id" validate:"required"`
	SubmittedBy  string    `json:"submittedBy" db:"submitted_by"`
	Description  string    `json:"description" db:"description" validate:"required"`
	ImageURL     *string   `json:"imageURL,omitempty" db:"image_url"`
	Date         string    `json:"date" db:"date" validate:"required,datetime=2006-01-02"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
