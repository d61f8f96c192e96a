package services

import (
	"encoding/json"
	"fmt"

	"github.com/sitebook/backend/internal/apperrors"
	"github.com/sitebook/backend/internal/core/domain"
	portsrepo "github.com/sitebook/backend/internal/core/ports/repositories"
	"github.com/sitebook/backend/internal/models"
	"github.com/sitebook/backend/internal/utils/mapping"
)

// decodeChangeEvent parses and validates a remote change-event payload at the
// store boundary. Schemaless rows are never merged as-is: each payload must
// unmarshal into its typed row and pass field validation, otherwise the whole
// event is rejected with a validation error.
func decodeChangeEvent(ev portsrepo.ChangeEvent) (*domain.PendingMutation, error) {
	m := &domain.PendingMutation{Kind: ev.Kind}

	switch ev.Kind {
	case domain.MutationAttendance:
		row, err := decodeRow[models.Attendance](ev.Payload)
		if err != nil {
			return nil, err
		}
		d := mapping.ToDomainAttendance(*row)
		m.RecordID, m.Attendance = d.AttendanceID, &d
	case domain.MutationTransaction:
		row, err := decodeRow[models.Transaction](ev.Payload)
		if err != nil {
			return nil, err
		}
		d := mapping.ToDomainTransaction(*row)
		m.RecordID, m.Transaction = d.TransactionID, &d
	case domain.MutationMaterialLog:
		row, err := decodeRow[models.MaterialLog](ev.Payload)
		if err != nil {
			return nil, err
		}
		d := mapping.ToDomainMaterialLog(*row)
		m.RecordID, m.MaterialLog = d.MaterialLogID, &d
	case domain.MutationWorkReport:
		row, err := decodeRow[models.WorkReport](ev.Payload)
		if err != nil {
			return nil, err
		}
		d := mapping.ToDomainWorkReport(*row)
		m.RecordID, m.WorkReport = d.WorkReportID, &d
	case domain.MutationProfile:
		row, err := decodeRow[models.Profile](ev.Payload)
		if err != nil {
			return nil, err
		}
		d := mapping.ToDomainProfile(*row)
		m.RecordID, m.Profile = d.ProfileID, &d
	case domain.MutationProject:
		row, err := decodeRow[models.Project](ev.Payload)
		if err != nil {
			return nil, err
		}
		d := mapping.ToDomainProject(*row)
		m.RecordID, m.Project = d.ProjectID, &d
	case domain.MutationNotice:
		row, err := decodeRow[models.PublicNotice](ev.Payload)
		if err != nil {
			return nil, err
		}
		d := mapping.ToDomainNotice(*row)
		m.RecordID, m.Notice = d.NoticeID, &d
	default:
		return nil, fmt.Errorf("%w: unknown change event kind %q", apperrors.ErrValidation, ev.Kind)
	}
	return m, nil
}

func decodeRow[T any](payload []byte) (*T, error) {
	var row T
	if err := json.Unmarshal(payload, &row); err != nil {
		return nil, fmt.Errorf("%w: malformed row payload: %v", apperrors.ErrValidation, err)
	}
	if err := models.ValidateRow(&row); err != nil {
		return nil, err
	}
	return &row, nil
}
