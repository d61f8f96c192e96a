package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role classifies a profile within a site.
type Role string

const (
	RoleContractor Role = "contractor"
	RoleSupervisor Role = "supervisor"
	RoleWorker     Role = "worker"
)

// Profile represents a contractor, supervisor or worker.
//
// Balance is a denormalized cache of the ledger-computed wage balance. It is
// recomputed after every balance-affecting mutation and is never read back as
// ground truth by the balance calculator itself.
type Profile struct {
	ProfileID           string          `json:"profileID"`
	FullName            string          `json:"fullName"`
	Role                Role            `json:"role"`
	Phone               string          `json:"phone"`
	SkillType           string          `json:"skillType"`
	AssignedProjectID   string          `json:"assignedProjectID,omitempty"`
	Balance             decimal.Decimal `json:"balance"`
	LiveLocationEnabled bool            `json:"liveLocationEnabled"`
	Latitude            float64         `json:"latitude,omitempty"`
	Longitude           float64         `json:"longitude,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
}
