package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/sitebook/backend/internal/apperrors"
)

var rowValidator = validator.New()

// ValidateRow checks a row fetched from the remote store against its schema
// tags. Malformed rows are rejected with a typed validation error instead of
// propagating loosely typed data into the entity store.
func ValidateRow(row any) error {
	if err := rowValidator.Struct(row); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}
