package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
)

// MonthlyKPI is one projection row per owner, vehicle and calendar month.
// Rows are rebuilt wholesale by the analytics refresh task.
type MonthlyKPI struct {
	OwnerID          uuid.UUID             `gorm:"type:uuid;primaryKey" json:"-"`
	VehicleID        valueobject.VehicleID `gorm:"type:uuid;primaryKey" json:"vehicle_id"`
	Month            time.Time             `gorm:"type:date;primaryKey" json:"month"`
	ReceiptCount     int64                 `gorm:"not null;default:0" json:"receipt_count"`
	TotalCents       int64                 `gorm:"not null;default:0" json:"total_cents"`
	VATCents         int64                 `gorm:"column:vat_cents;not null;default:0" json:"vat_cents"`
	NetCents         int64                 `gorm:"not null;default:0" json:"net_cents"`
	MaintenanceCents int64                 `gorm:"not null;default:0" json:"maintenance_cents"`
	RefreshedAt      time.Time             `gorm:"not null" json:"refreshed_at"`
}

// TableName returns the table name for the MonthlyKPI model
func (MonthlyKPI) TableName() string {
	return "analytics_monthly_kpis"
}
