package mapping

import (
	"github.com/sitebook/backend/internal/core/domain"
	"github.com/sitebook/backend/internal/models"
)

// ToModelProfile converts a domain Profile to a model Profile.
func ToModelProfile(d domain.Profile) models.Profile {
	m := models.Profile{
		ProfileID:           d.ProfileID,
		FullName:            d.FullName,
		Role:                string(d.Role),
		Phone:               d.Phone,
		SkillType:           d.SkillType,
		Balance:             d.Balance,
		LiveLocationEnabled: d.LiveLocationEnabled,
		Latitude:            d.Latitude,
		Longitude:           d.Longitude,
		CreatedAt:           d.CreatedAt,
	}
	if d.AssignedProjectID != "" {
		m.AssignedProjectID = &d.AssignedProjectID
	}
	return m
}

// ToDomainProfile converts a model Profile to a domain Profile.
func ToDomainProfile(m models.Profile) domain.Profile {
	d := domain.Profile{
		ProfileID:           m.ProfileID,
		FullName:            m.FullName,
		Role:                domain.Role(m.Role),
		Phone:               m.Phone,
		SkillType:           m.SkillType,
		Balance:             m.Balance,
		LiveLocationEnabled: m.LiveLocationEnabled,
		Latitude:            m.Latitude,
		Longitude:           m.Longitude,
		CreatedAt:           m.CreatedAt,
	}
	if m.AssignedProjectID != nil {
		d.AssignedProjectID = *m.AssignedProjectID
	}
	return d
}
