package mapping

import (
	"github.com/sitebook/backend/internal/core/domain"
	"github.com/sitebook/backend/internal/models"
)

// ToModelMaterialLog converts a domain MaterialLog to a model MaterialLog.
func ToModelMaterialLog(d domain.MaterialLog) models.MaterialLog {
	m := models.MaterialLog{
		MaterialLogID: d.MaterialLogID,
		ProjectID:     d.ProjectID,
		SubmittedBy:   d.SubmittedBy,
		ItemName:      d.ItemName,
		Quantity:      d.Quantity,
		Unit:          d.Unit,
		SupplierName:  d.SupplierName,
		Date:          d.Date,
		CreatedAt:     d.CreatedAt,
	}
	if d.ChallanPhoto != "" {
		m.ChallanPhoto = &d.ChallanPhoto
	}
	return m
}

// ToDomainMaterialLog converts a model MaterialLog to a domain MaterialLog.
func ToDomainMaterialLog(m models.MaterialLog) domain.MaterialLog {
	d := domain.MaterialLog{
		MaterialLogID: m.MaterialLogID,
		ProjectID:     m.ProjectID,
		SubmittedBy:   m.SubmittedBy,
		ItemName:      m.ItemName,
		Quantity:      m.Quantity,
		Unit:          m.Unit,
		SupplierName:  m.SupplierName,
		Date:          m.Date,
		CreatedAt:     m.CreatedAt,
	}
	if m.ChallanPhoto != nil {
		d.ChallanPhoto = *m.ChallanPhoto
	}
	return d
}

// ToModelWorkReport converts a domain WorkReport to a model WorkReport.
func ToModelWorkReport(d domain.WorkReport) models.WorkReport {
	m := models.WorkReport{
		WorkReportID: d.WorkReportID,
		ProjectID:    d.ProjectID,
		SubmittedBy:  d.SubmittedBy,
		Description:  d.Description,
		Date:         d.Date,
		CreatedAt:    d.CreatedAt,
	}
	if d.ImageURL != "" {
		m.ImageURL = &d.ImageURL
	}
	return m
}

// ToDomainWorkReport converts a model WorkReport to a domain WorkReport.
func ToDomainWorkReport(m models.WorkReport) domain.WorkReport {
	d := domain.WorkReport{
		WorkReportID: m.WorkReportID,
		ProjectID:    m.ProjectID,
		SubmittedBy:  m.SubmittedBy,
		Description:  m.Description,
		Date:         m.Date,
		CreatedAt:    m.CreatedAt,
	}
	if m.ImageURL != nil {
		d.ImageURL = *m.ImageURL
	}
	return d
}

// ToModelNotice converts a domain PublicNotice to a model PublicNotice.
func ToModelNotice(d domain.PublicNotice) models.PublicNotice {
	return models.PublicNotice{
		NoticeID:  d.NoticeID,
		Message:   d.Message,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainNotice converts a model PublicNotice to a domain PublicNotice.
func ToDomainNotice(m models.PublicNotice) domain.PublicNotice {
	return domain.PublicNotice{
		NoticeID:  m.NoticeID,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}
