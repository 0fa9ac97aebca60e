package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/repository"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"github.com/sangkips/fueltrack-api/pkg/apperror"
)

// MaintenanceService handles maintenance events and reminders
type MaintenanceService struct {
	maintenanceRepo repository.MaintenanceRepository
	vehicleRepo     repository.VehicleRepository
	tasks           TaskEnqueuer
	now             clock
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	maintenanceRepo repository.MaintenanceRepository,
	vehicleRepo repository.VehicleRepository,
	tasks TaskEnqueuer,
) *MaintenanceService {
	return &MaintenanceService{
		maintenanceRepo: maintenanceRepo,
		vehicleRepo:     vehicleRepo,
		tasks:           tasks,
		now:             time.Now,
	}
}

// RecordEventInput represents the record maintenance event input
type RecordEventInput struct {
	VehicleID   valueobject.VehicleID
	Type        enum.MaintenanceType
	PerformedAt time.Time
	OdometerKm  *int64
	CostCents   int64
	Notes       *string
}

// CreateReminderInput represents the create reminder input
type CreateReminderInput struct {
	VehicleID     valueobject.VehicleID
	Type          enum.MaintenanceType
	DueAt         *time.Time
	DueOdometerKm *int64
	Notes         *string
}

// RecordEvent stores a maintenance event. Open reminders of the same type are
// completed and the vehicle odometer moves forward when the reading is higher.
func (s *MaintenanceService) RecordEvent(ctx context.Context, input *RecordEventInput) (*entity.MaintenanceEvent, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := enum.ParseMaintenanceType(string(input.Type)); err != nil {
		return nil, invalidArgument(err)
	}
	if input.CostCents < 0 {
		return nil, apperror.NewUnprocessableError("Cost must not be negative")
	}
	if input.OdometerKm != nil && *input.OdometerKm < 0 {
		return nil, apperror.NewUnprocessableError("Odometer must not be negative")
	}

	vehicle, err := s.getVehicle(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}

	performedAt := input.PerformedAt
	if performedAt.IsZero() {
		performedAt = s.now()
	}

	event := &entity.MaintenanceEvent{
		OwnerID:     ownerID,
		VehicleID:   vehicle.ID,
		Type:        input.Type,
		PerformedAt: performedAt.UTC(),
		OdometerKm:  input.OdometerKm,
		CostCents:   input.CostCents,
		Notes:       input.Notes,
	}
	if err := s.maintenanceRepo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}

	completed, err := s.maintenanceRepo.CompleteOpenReminders(ctx, vehicle.ID, input.Type, event.PerformedAt)
	if err != nil {
		return nil, err
	}
	if completed > 0 {
		log.Debug().
			Str("vehicle_id", vehicle.ID.String()).
			Str("type", input.Type.String()).
			Int64("reminders", completed).
			Msg("maintenance reminders completed by event")
	}

	requestAnalyticsRefresh(ctx, s.tasks, ownerID)
	return event, nil
}

// ListEvents lists the maintenance events of a vehicle, newest first
func (s *MaintenanceService) ListEvents(ctx context.Context, vehicleID valueobject.VehicleID) ([]entity.MaintenanceEvent, error) {
	if _, err := s.getVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}
	return s.maintenanceRepo.ListEvents(ctx, vehicleID)
}

// DeleteEvent deletes a maintenance event
func (s *MaintenanceService) DeleteEvent(ctx context.Context, id valueobject.MaintenanceEventID) error {
	event, err := s.maintenanceRepo.GetEventByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil {
		return apperror.NewNotFoundError("Maintenance event")
	}
	if err := s.maintenanceRepo.DeleteEvent(ctx, id); err != nil {
		return err
	}
	requestAnalyticsRefresh(ctx, s.tasks, event.OwnerID)
	return nil
}

// CreateReminder creates a reminder. A reminder whose threshold is already
// reached starts out DUE.
func (s *MaintenanceService) CreateReminder(ctx context.Context, input *CreateReminderInput) (*entity.MaintenanceReminder, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := enum.ParseMaintenanceType(string(input.Type)); err != nil {
		return nil, invalidArgument(err)
	}
	if input.DueAt == nil && input.DueOdometerKm == nil {
		return nil, apperror.NewUnprocessableError("A reminder needs a due date or a due odometer")
	}
	if input.DueOdometerKm != nil && *input.DueOdometerKm < 0 {
		return nil, apperror.NewUnprocessableError("Due odometer must not be negative")
	}

	vehicle, err := s.getVehicle(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}

	reminder := &entity.MaintenanceReminder{
		OwnerID:       ownerID,
		VehicleID:     vehicle.ID,
		Type:          input.Type,
		DueAt:         input.DueAt,
		DueOdometerKm: input.DueOdometerKm,
		Status:        enum.ReminderStatusPending,
		Notes:         input.Notes,
	}
	if reminder.IsDue(s.now(), vehicle.OdometerKm) {
		reminder.Status = enum.ReminderStatusDue
	}

	if err := s.maintenanceRepo.CreateReminder(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

// ListReminders lists the reminders of a vehicle, optionally by status
func (s *MaintenanceService) ListReminders(ctx context.Context, vehicleID valueobject.VehicleID, status *enum.ReminderStatus) ([]entity.MaintenanceReminder, error) {
	if _, err := s.getVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}
	return s.maintenanceRepo.ListReminders(ctx, vehicleID, status)
}

// CompleteReminder marks a reminder as done. Completing a done reminder is a no-op.
func (s *MaintenanceService) CompleteReminder(ctx context.Context, id valueobject.MaintenanceReminderID) (*entity.MaintenanceReminder, error) {
	reminder, err := s.getReminder(ctx, id)
	if err != nil {
		return nil, err
	}
	if reminder.Status == enum.ReminderStatusDone {
		return reminder, nil
	}

	reminder.Complete(s.now().UTC())
	if err := s.maintenanceRepo.UpdateReminder(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

// DeleteReminder deletes a reminder
func (s *MaintenanceService) DeleteReminder(ctx context.Context, id valueobject.MaintenanceReminderID) error {
	if _, err := s.getReminder(ctx, id); err != nil {
		return err
	}
	return s.maintenanceRepo.DeleteReminder(ctx, id)
}

// SweepDueReminders flips reached PENDING reminders of every owner to DUE
func (s *MaintenanceService) SweepDueReminders(ctx context.Context) (int64, error) {
	return s.maintenanceRepo.MarkDueReminders(ctx, s.now().UTC())
}

func (s *MaintenanceService) getVehicle(ctx context.Context, id valueobject.VehicleID) (*entity.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NewNotFoundError("Vehicle")
	}
	return vehicle, nil
}

func (s *MaintenanceService) getReminder(ctx context.Context, id valueobject.MaintenanceReminderID) (*entity.MaintenanceReminder, error) {
	reminder, err := s.maintenanceRepo.GetReminderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reminder == nil {
		return nil, apperror.NewNotFoundError("Reminder")
	}
	return reminder, nil
}
