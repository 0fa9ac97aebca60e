package request

import (
	"time"

	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
)

// ReceiptLineRequest is one fuel line of a receipt. Amounts are in cents.
type ReceiptLineRequest struct {
	FuelType       enum.FuelType `json:"fuel_type" binding:"required,fueltype"`
	TTCTotalCents  int64         `json:"ttc_total_cents" binding:"min=0"`
	UnitPriceCents int64         `json:"unit_price_cents" binding:"min=0"`
	VATRatePercent int64         `json:"vat_rate_percent" binding:"min=0,max=100"`
}

// CreateReceiptRequest represents a create receipt request
type CreateReceiptRequest struct {
	VehicleID  valueobject.VehicleID  `json:"vehicle_id"`
	StationID  *valueobject.StationID `json:"station_id"`
	IssuedAt   *time.Time             `json:"issued_at"`
	OdometerKm *int64                 `json:"odometer_km" binding:"omitempty,min=0"`
	Notes      *string                `json:"notes" binding:"omitempty,max=2000"`
	Lines      []ReceiptLineRequest   `json:"lines" binding:"required,min=1,max=10,dive"`
}

// ReceiptFilterQuery holds the receipt list and export filters
type ReceiptFilterQuery struct {
	VehicleID string `form:"vehicle_id"`
	StationID string `form:"station_id"`
	FuelType  string `form:"fuel_type" binding:"omitempty,fueltype"`
	From      string `form:"from"`
	To        string `form:"to"`
}
