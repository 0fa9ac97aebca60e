package repository

import (
	"context"
	"time"

	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
)

// MaintenanceRepository defines the interface for maintenance events and reminders
type MaintenanceRepository interface {
	// CreateEvent stores the event and applies its odometer reading to the
	// vehicle in one transaction
	CreateEvent(ctx context.Context, event *entity.MaintenanceEvent) error
	GetEventByID(ctx context.Context, id valueobject.MaintenanceEventID) (*entity.MaintenanceEvent, error)
	DeleteEvent(ctx context.Context, id valueobject.MaintenanceEventID) error
	ListEvents(ctx context.Context, vehicleID valueobject.VehicleID) ([]entity.MaintenanceEvent, error)

	CreateReminder(ctx context.Context, reminder *entity.MaintenanceReminder) error
	GetReminderByID(ctx context.Context, id valueobject.MaintenanceReminderID) (*entity.MaintenanceReminder, error)
	UpdateReminder(ctx context.Context, reminder *entity.MaintenanceReminder) error
	DeleteReminder(ctx context.Context, id valueobject.MaintenanceReminderID) error
	ListReminders(ctx context.Context, vehicleID valueobject.VehicleID, status *enum.ReminderStatus) ([]entity.MaintenanceReminder, error)

	// CompleteOpenReminders marks PENDING and DUE reminders of the given type as DONE
	CompleteOpenReminders(ctx context.Context, vehicleID valueobject.VehicleID, typ enum.MaintenanceType, at time.Time) (int64, error)
	// MarkDueReminders flips every PENDING reminder whose date or odometer threshold
	// has been reached to DUE, across all owners
	MarkDueReminders(ctx context.Context, now time.Time) (int64, error)
}
