package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialLog is the database/wire row for a material receipt.
type MaterialLog struct {
	MaterialLogID string          `json:"materialLogID" db:"material_log_id" validate:"required"`
	ProjectID     string          `json:"projectID" db:"project_id" validate:"required"`
	SubmittedBy   string          `json:"submittedBy" db:"submitted_by"`
	ItemName      string          `json:"itemName" db:"item_name" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity" db:"quantity"`
	Unit          string          `json:"unit" db:"unit"`
	SupplierName  string          `json:"supplierName" db:"supplier_name"`
	ChallanPhoto  *string         `json:"challanPhoto,omitempty" db:"challan_photo"`
	Date          string          `json:"date" db:"date" validate:"required,datetime=2006-01-02"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}
