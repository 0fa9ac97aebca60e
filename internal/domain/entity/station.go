package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"gorm.io/gorm"
)

// Station represents a fuel station visited by the owner
type Station struct {
	ID              valueobject.StationID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID         uuid.UUID             `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name            string                `gorm:"size:255;not null" json:"name"`
	Brand           *string               `gorm:"size:100" json:"brand,omitempty"`
	Address         string                `gorm:"type:text;not null" json:"address"`
	Latitude        *float64              `json:"latitude,omitempty"`
	Longitude       *float64              `json:"longitude,omitempty"`
	GeocodingStatus enum.GeocodingStatus  `gorm:"default:0" json:"geocoding_status"`
	GeocodedAt      *time.Time            `json:"geocoded_at,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
	DeletedAt       gorm.DeletedAt        `gorm:"index" json:"-"`
}

// BeforeCreate assigns a time-ordered identifier
func (s *Station) BeforeCreate(tx *gorm.DB) error {
	if s.ID.IsZero() {
		s.ID = valueobject.NewStationID()
	}
	return nil
}

// TableName returns the table name for the Station model
func (Station) TableName() string {
	return "stations"
}

// ResetGeocoding clears resolved coordinates so the address is looked up again
func (s *Station) ResetGeocoding() {
	s.Latitude = nil
	s.Longitude = nil
	s.GeocodedAt = nil
	s.GeocodingStatus = enum.GeocodingStatusPending
}
