package models

import "time"

// Project is the database/wire row for a construction project.
type Project struct {
	ProjectID   string    `json:"projectID" db:"project_id" validate:"required"`
	ProjectName string    `json:"projectName" db:"project_name" validate:"required"`
	Location    string    `json:"location" db:"location"`
	Status      string    `json:"status" db:"status" validate:"required,oneof=active completed on_hold"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
