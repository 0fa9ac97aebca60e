package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	domainRepo "github.com/sangkips/fueltrack-api/internal/domain/repository"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"gorm.io/gorm"
)

type maintenanceRepository struct {
	db *gorm.DB
}

// NewMaintenanceRepository creates a new maintenance repository
func NewMaintenanceRepository(db *gorm.DB) domainRepo.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) CreateEvent(ctx context.Context, event *entity.MaintenanceEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		if event.OdometerKm == nil {
			return nil
		}
		return advanceOdometer(ctx, tx, event.VehicleID, *event.OdometerKm).Error
	})
}

func (r *maintenanceRepository) GetEventByID(ctx context.Context, id valueobject.MaintenanceEventID) (*entity.MaintenanceEvent, error) {
	var event entity.MaintenanceEvent
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		First(&event, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &event, err
}

func (r *maintenanceRepository) DeleteEvent(ctx context.Context, id valueobject.MaintenanceEventID) error {
	return r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		Delete(&entity.MaintenanceEvent{}, "id = ?", id).Error
}

func (r *maintenanceRepository) ListEvents(ctx context.Context, vehicleID valueobject.VehicleID) ([]entity.MaintenanceEvent, error) {
	var events []entity.MaintenanceEvent
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		Where("vehicle_id = ?", vehicleID).
		Order("performed_at DESC").
		Find(&events).Error
	return events, err
}

func (r *maintenanceRepository) CreateReminder(ctx context.Context, reminder *entity.MaintenanceReminder) error {
	return r.db.WithContext(ctx).Create(reminder).Error
}

func (r *maintenanceRepository) GetReminderByID(ctx context.Context, id valueobject.MaintenanceReminderID) (*entity.MaintenanceReminder, error) {
	var reminder entity.MaintenanceReminder
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		First(&reminder, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &reminder, err
}

func (r *maintenanceRepository) UpdateReminder(ctx context.Context, reminder *entity.MaintenanceReminder) error {
	return r.db.WithContext(ctx).Save(reminder).Error
}

func (r *maintenanceRepository) DeleteReminder(ctx context.Context, id valueobject.MaintenanceReminderID) error {
	return r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		Delete(&entity.MaintenanceReminder{}, "id = ?", id).Error
}

func (r *maintenanceRepository) ListReminders(ctx context.Context, vehicleID valueobject.VehicleID, status *enum.ReminderStatus) ([]entity.MaintenanceReminder, error) {
	var reminders []entity.MaintenanceReminder
	query := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		Where("vehicle_id = ?", vehicleID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Order("due_at ASC NULLS LAST, due_odometer_km ASC NULLS LAST").
		Find(&reminders).Error
	return reminders, err
}

func (r *maintenanceRepository) CompleteOpenReminders(ctx context.Context, vehicleID valueobject.VehicleID, typ enum.MaintenanceType, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.MaintenanceReminder{}).
		Scopes(OwnerScope(ctx)).
		Where("vehicle_id = ? AND type = ? AND status IN ?", vehicleID, typ,
			[]enum.ReminderStatus{enum.ReminderStatusPending, enum.ReminderStatusDue}).
		Updates(map[string]interface{}{
			"status":       enum.ReminderStatusDone,
			"completed_at": at,
		})
	return result.RowsAffected, result.Error
}

// MarkDueReminders compares date thresholds with now and odometer thresholds
// with the current odometer of the reminder's vehicle
func (r *maintenanceRepository) MarkDueReminders(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE maintenance_reminders AS mr
		SET status = ?, updated_at = ?
		FROM vehicles v
		WHERE v.id = mr.vehicle_id
			AND mr.status = ?
			AND mr.deleted_at IS NULL
			AND (
				(mr.due_at IS NOT NULL AND mr.due_at <= ?)
				OR (mr.due_odometer_km IS NOT NULL AND v.odometer_km >= mr.due_odometer_km)
			)
	`, enum.ReminderStatusDue, now, enum.ReminderStatusPending, now)
	return result.RowsAffected, result.Error
}
