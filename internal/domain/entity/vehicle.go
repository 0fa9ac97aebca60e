package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"gorm.io/gorm"
)

// Vehicle represents a car tracked by its owner
type Vehicle struct {
	ID         valueobject.VehicleID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID    uuid.UUID             `gorm:"type:uuid;not null;index;uniqueIndex:idx_vehicles_owner_plate" json:"owner_id"`
	Name       string                `gorm:"size:255;not null" json:"name"`
	Plate      string                `gorm:"size:32;not null;uniqueIndex:idx_vehicles_owner_plate" json:"plate"`
	Make       *string               `gorm:"size:100" json:"make,omitempty"`
	Model      *string               `gorm:"size:100" json:"model,omitempty"`
	Year       *int                  `json:"year,omitempty"`
	FuelType   enum.FuelType         `gorm:"size:16;not null" json:"fuel_type"`
	OdometerKm int64                 `gorm:"not null;default:0" json:"odometer_km"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
	DeletedAt  gorm.DeletedAt        `gorm:"index" json:"-"`

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// BeforeCreate assigns a time-ordered identifier
func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID.IsZero() {
		v.ID = valueobject.NewVehicleID()
	}
	return nil
}

// TableName returns the table name for the Vehicle model
func (Vehicle) TableName() string {
	return "vehicles"
}

// AdvanceOdometer moves the odometer forward and reports whether it changed.
// Readings lower than the current value are ignored.
func (v *Vehicle) AdvanceOdometer(km int64) bool {
	if km <= v.OdometerKm {
		return false
	}
	v.OdometerKm = km
	return true
}
