package domain

import "time"

// ProjectStatus indicates the state of a construction project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on_hold"
)

// Project represents a construction site. Projects are immutable once created
// except for status transitions.
type Project struct {
	ProjectID   string        `json:"projectID"`
	ProjectName string        `json:"projectName"`
	Location    string        `json:"location"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}
