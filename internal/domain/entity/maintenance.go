package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"gorm.io/gorm"
)

// MaintenanceEvent records work performed on a vehicle
type MaintenanceEvent struct {
	ID          valueobject.MaintenanceEventID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID     uuid.UUID                      `gorm:"type:uuid;not null;index" json:"owner_id"`
	VehicleID   valueobject.VehicleID          `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	Type        enum.MaintenanceType           `gorm:"size:32;not null" json:"type"`
	PerformedAt time.Time                      `gorm:"not null;index" json:"performed_at"`
	OdometerKm  *int64                         `json:"odometer_km,omitempty"`
	CostCents   int64                          `gorm:"not null;default:0" json:"cost_cents"`
	Notes       *string                        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time                      `json:"created_at"`
	UpdatedAt   time.Time                      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt                 `gorm:"index" json:"-"`
}

// BeforeCreate assigns a time-ordered identifier
func (e *MaintenanceEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID.IsZero() {
		e.ID = valueobject.NewMaintenanceEventID()
	}
	return nil
}

// TableName returns the table name for the MaintenanceEvent model
func (MaintenanceEvent) TableName() string {
	return "maintenance_events"
}

// MaintenanceReminder is a due date and/or odometer threshold for future work
type MaintenanceReminder struct {
	ID            valueobject.MaintenanceReminderID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID       uuid.UUID                         `gorm:"type:uuid;not null;index" json:"owner_id"`
	VehicleID     valueobject.VehicleID             `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	Type          enum.MaintenanceType              `gorm:"size:32;not null" json:"type"`
	DueAt         *time.Time                        `json:"due_at,omitempty"`
	DueOdometerKm *int64                            `json:"due_odometer_km,omitempty"`
	Status        enum.ReminderStatus               `gorm:"not null;default:0;index" json:"status"`
	Notes         *string                           `gorm:"type:text" json:"notes,omitempty"`
	CompletedAt   *time.Time                        `json:"completed_at,omitempty"`
	CreatedAt     time.Time                         `json:"created_at"`
	UpdatedAt     time.Time                         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt                    `gorm:"index" json:"-"`
}

// BeforeCreate assigns a time-ordered identifier
func (r *MaintenanceReminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID.IsZero() {
		r.ID = valueobject.NewMaintenanceReminderID()
	}
	return nil
}

// TableName returns the table name for the MaintenanceReminder model
func (MaintenanceReminder) TableName() string {
	return "maintenance_reminders"
}

// IsDue reports whether either threshold has been reached
func (r *MaintenanceReminder) IsDue(now time.Time, odometerKm int64) bool {
	if r.Status == enum.ReminderStatusDone {
		return false
	}
	if r.DueAt != nil && !now.Before(*r.DueAt) {
		return true
	}
	return r.DueOdometerKm != nil && odometerKm >= *r.DueOdometerKm
}

// Complete marks the reminder as done
func (r *MaintenanceReminder) Complete(at time.Time) {
	r.Status = enum.ReminderStatusDone
	r.CompletedAt = &at
}
