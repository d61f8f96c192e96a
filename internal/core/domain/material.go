package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialLog records a material receipt at a site. ChallanPhoto is an opaque
// reference to an externally stored image.
type MaterialLog struct {
	MaterialLogID string          `json:"materialLogID"`
	ProjectID     string          `json:"projectID"`
	SubmittedBy   string          `json:"submittedBy"`
	ItemName      string          `json:"itemName"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	SupplierName  string          `json:"supplierName"`
	ChallanPhoto  string          `json:"challanPhoto,omitempty"`
	Date          string          `json:"date"` // day key
	CreatedAt     time.Time       `json:"createdAt"`
}
