package dto

import (
	"github.com/shopspring/decimal"

	"github.com/sitebook/backend/internal/core/domain"
)

// CreateWorkerRequest registers a new profile.
type CreateWorkerRequest struct {
	FullName          string `json:"fullName" binding:"required"`
	Role              string `json:"role" binding:"omitempty,oneof=contractor supervisor worker"`
	Phone             string `json:"phone"`
	SkillType         string `json:"skillType"`
	AssignedProjectID string `json:"assignedProjectID"`
}

// ToDomain converts the request into a domain record.
func (r CreateWorkerRequest) ToDomain() domain.Profile {
	return domain.Profile{
		FullName:          r.FullName,
		Role:              domain.Role(r.Role),
		Phone:             r.Phone,
		SkillType:         r.SkillType,
		AssignedProjectID: r.AssignedProjectID,
	}
}

// CreateProjectRequest registers a new project.
type CreateProjectRequest struct {
	ProjectName string `json:"projectName" binding:"required"`
	Location    string `json:"location"`
}

// ToDomain converts the request into a domain record.
func (r CreateProjectRequest) ToDomain() domain.Project {
	return domain.Project{
		ProjectName: r.ProjectName,
		Location:    r.Location,
	}
}

// UpdateProjectStatusRequest transitions a project's status.
type UpdateProjectStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active completed on_hold"`
}

// CreateMaterialLogRequest records a material receipt.
type CreateMaterialLogRequest struct {
	ProjectID    string          `json:"projectID" binding:"required"`
	ItemName     string          `json:"itemName" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	SupplierName string          `json:"supplierName"`
	ChallanPhoto string          `json:"challanPhoto"`
	Date         string          `json:"date" binding:"required,datetime=2006-01-02"`
}

// ToDomain converts the request into a domain record. SubmittedBy comes from
// the authenticated session, not the request body.
func (r CreateMaterialLogRequest) ToDomain(submittedBy string) domain.MaterialLog {
	return domain.MaterialLog{
		ProjectID:    r.ProjectID,
		SubmittedBy:  submittedBy,
		ItemName:     r.ItemName,
		Quantity:     r.Quantity,
		Unit:         r.Unit,
		SupplierName: r.SupplierName,
		ChallanPhoto: r.ChallanPhoto,
		Date:         r.Date,
	}
}

// CreateWorkReportRequest records a daily work report.
type CreateWorkReportRequest struct {
	ProjectID   string `json:"projectID" binding:"required"`
	Description string `json:"description" binding:"required"`
	ImageURL    string `json:"imageURL"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
}

// ToDomain converts the request into a domain record.
func (r CreateWorkReportRequest) ToDomain(submittedBy string) domain.WorkReport {
	return domain.WorkReport{
		ProjectID:   r.ProjectID,
		SubmittedBy: submittedBy,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Date:        r.Date,
	}
}

// CreateNoticeRequest broadcasts a public notice.
type CreateNoticeRequest struct {
	Message string `json:"message" binding:"required"`
}
