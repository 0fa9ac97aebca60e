package entity

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"gorm.io/gorm"
)

// Receipt represents a fuel purchase with one or more fuel lines
type Receipt struct {
	ID         valueobject.ReceiptID  `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID    uuid.UUID              `gorm:"type:uuid;not null;index" json:"owner_id"`
	VehicleID  valueobject.VehicleID  `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	StationID  *valueobject.StationID `gorm:"type:uuid;index" json:"station_id,omitempty"`
	IssuedAt   time.Time              `gorm:"not null;index" json:"issued_at"`
	OdometerKm *int64                 `json:"odometer_km,omitempty"`
	TotalCents int64                  `gorm:"not null;default:0" json:"total_cents"`
	VATCents   int64                  `gorm:"column:vat_cents;not null;default:0" json:"vat_cents"`
	Notes      *string                `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
	DeletedAt  gorm.DeletedAt         `gorm:"index" json:"-"`

	// Relationships
	Vehicle *Vehicle            `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Station *Station            `gorm:"foreignKey:StationID" json:"station,omitempty"`
	Lines   []ReceiptLineRecord `gorm:"foreignKey:ReceiptID" json:"lines"`
}

// BeforeCreate assigns a time-ordered identifier
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID.IsZero() {
		r.ID = valueobject.NewReceiptID()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// AddLine appends a computed fuel line and keeps the receipt totals in sync.
// A line that would push the totals past int64 is rejected and the receipt is
// left unchanged.
func (r *Receipt) AddLine(line valueobject.ReceiptLine) error {
	if line.LineTotalCents() > math.MaxInt64-r.TotalCents {
		return fmt.Errorf("receipt total overflows: %w", valueobject.ErrInvalidArgument)
	}
	r.Lines = append(r.Lines, NewReceiptLineRecord(line, len(r.Lines)+1))
	r.TotalCents += line.LineTotalCents()
	r.VATCents += line.VATAmountCents()
	return nil
}

// NetCents returns the receipt total without VAT
func (r *Receipt) NetCents() int64 {
	return r.TotalCents - r.VATCents
}

// ReceiptLineRecord is the stored form of a ReceiptLine
type ReceiptLineRecord struct {
	ID             uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID      valueobject.ReceiptID `gorm:"type:uuid;not null;index" json:"-"`
	Position       int                   `gorm:"not null" json:"position"`
	FuelType       enum.FuelType         `gorm:"size:16;not null;index" json:"fuel_type"`
	TTCTotalCents  int64                 `gorm:"column:ttc_total_cents;not null" json:"ttc_total_cents"`
	UnitPriceCents int64                 `gorm:"not null" json:"unit_price_cents"`
	VATRatePercent int64                 `gorm:"column:vat_rate_percent;not null" json:"vat_rate_percent"`
	LineTotalCents int64                 `gorm:"not null" json:"line_total_cents"`
	VATAmountCents int64                 `gorm:"column:vat_amount_cents;not null" json:"vat_amount_cents"`
}

// BeforeCreate generates a UUID before creating a new line
func (l *ReceiptLineRecord) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptLineRecord model
func (ReceiptLineRecord) TableName() string {
	return "receipt_lines"
}

// NewReceiptLineRecord copies the inputs and derived amounts of a line
func NewReceiptLineRecord(line valueobject.ReceiptLine, position int) ReceiptLineRecord {
	return ReceiptLineRecord{
		Position:       position,
		FuelType:       line.FuelType(),
		TTCTotalCents:  line.TTCTotalCents(),
		UnitPriceCents: line.UnitPriceCents(),
		VATRatePercent: line.VATRatePercent(),
		LineTotalCents: line.LineTotalCents(),
		VATAmountCents: line.VATAmountCents(),
	}
}

// ToValue rebuilds the value object from the stored inputs
func (l ReceiptLineRecord) ToValue() (valueobject.ReceiptLine, error) {
	return valueobject.NewReceiptLine(l.FuelType, l.TTCTotalCents, l.UnitPriceCents, l.VATRatePercent)
}
