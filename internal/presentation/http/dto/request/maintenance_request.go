package request

import (
	"time"

	"github.com/sangkips/fueltrack-api/internal/domain/enum"
)

// RecordMaintenanceEventRequest represents a maintenance event
type RecordMaintenanceEventRequest struct {
	Type        enum.MaintenanceType `json:"type" binding:"required"`
	PerformedAt *time.Time           `json:"performed_at"`
	OdometerKm  *int64               `json:"odometer_km" binding:"omitempty,min=0"`
	CostCents   int64                `json:"cost_cents" binding:"min=0"`
	Notes       *string              `json:"notes" binding:"omitempty,max=2000"`
}

// CreateReminderRequest represents a create reminder request
type CreateReminderRequest struct {
	Type          enum.MaintenanceType `json:"type" binding:"required"`
	DueAt         *time.Time           `json:"due_at"`
	DueOdometerKm *int64               `json:"due_odometer_km" binding:"omitempty,min=0"`
	Notes         *string              `json:"notes" binding:"omitempty,max=2000"`
}
