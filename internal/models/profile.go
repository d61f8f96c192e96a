package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile is the database/wire row for a worker, supervisor or contractor.
type Profile struct {
	ProfileID           string          `json:"profileID" db:"profile_id" validate:"required"`
	FullName            string          `json:"fullName" db:"full_name" validate:"required"`
	Role                string          `json:"role" db:"role" validate:"required,oneof=contractor supervisor worker"`
	Phone               string          `json:"phone" db:"phone"`
	SkillType           string          `json:"skillType" db:"skill_type"`
	AssignedProjectID   *string         `json:"assignedProjectID,omitempty" db:"assigned_project_id"`
	Balance             decimal.Decimal `json:"balance" db:"balance"`
	LiveLocationEnabled bool            `json:"liveLocationEnabled" db:"live_location_enabled"`
	Latitude            float64         `json:"latitude" db:"latitude"`
	Longitude           float64         `json:"longitude" db:"longitude"`
	CreatedAt           time.Time       `json:"createdAt" db:"created_at"`
}
