package mapping

import (
	"github.com/sitebook/backend/internal/core/domain"
	"github.com/sitebook/backend/internal/models"
)

// ToModelProject converts a domain Project to a model Project.
func ToModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:   d.ProjectID,
		ProjectName: d.ProjectName,
		Location:    d.Location,
		Status:      string(d.Status),
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainProject converts a model Project to a domain Project.
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:   m.ProjectID,
		ProjectName: m.ProjectName,
		Location:    m.Location,
		Status:      domain.ProjectStatus(m.Status),
		CreatedAt:   m.CreatedAt,
	}
}

// ToModelAttendance converts a domain Attendance to a model Attendance.
func ToModelAttendance(d domain.Attendance) models.Attendance {
	return models.Attendance{
		AttendanceID: d.AttendanceID,
		WorkerID:     d.WorkerID,
		ProjectID:    d.ProjectID,
		Date:         d.Date,
		Status:       string(d.Status),
		Amount:       d.Amount,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainAttendance converts a model Attendance to a domain Attendance.
func ToDomainAttendance(m models.Attendance) domain.Attendance {
	return domain.Attendance{
		AttendanceID: m.AttendanceID,
		WorkerID:     m.WorkerID,
		ProjectID:    m.ProjectID,
		Date:         m.Date,
		Status:       domain.AttendanceStatus(m.Status),
		Amount:       m.Amount,
		CreatedAt:    m.CreatedAt,
	}
}

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID: d.TransactionID,
		Type:          string(d.Type),
		Amount:        d.Amount,
		Description:   d.Description,
		Date:          d.Date,
		CreatedAt:     d.CreatedAt,
	}
	if d.ProjectID != "" {
		m.ProjectID = &d.ProjectID
	}
	if d.WorkerID != "" {
		m.WorkerID = &d.WorkerID
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID: m.TransactionID,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		Description:   m.Description,
		Date:          m.Date,
		CreatedAt:     m.CreatedAt,
	}
	if m.ProjectID != nil {
		d.ProjectID = *m.ProjectID
	}
	if m.WorkerID != nil {
		d.WorkerID = *m.WorkerID
	}
	return d
}
