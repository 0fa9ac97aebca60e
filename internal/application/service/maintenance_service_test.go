package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
)

type maintenanceFixture struct {
	svc      *MaintenanceService
	repo     *fakeMaintenanceRepo
	vehicles *fakeVehicleRepo
	tasks    *fakeTasks
	ctx      context.Context
	vehicle  *entity.Vehicle
}

func newMaintenanceFixture(t *testing.T) *maintenanceFixture {
	t.Helper()
	ownerID := uuid.New()
	f := &maintenanceFixture{
		vehicles: newFakeVehicleRepo(),
		tasks:    &fakeTasks{},
		ctx:      ownerCtx(ownerID),
	}
	f.repo = newFakeMaintenanceRepo(f.vehicles)
	f.svc = NewMaintenanceService(f.repo, f.vehicles, f.tasks)
	f.svc.now = fixedClock

	f.vehicle = &entity.Vehicle{OwnerID: ownerID, Name: "Van", Plate: "VAN-1", FuelType: enum.FuelTypeDiesel, OdometerKm: 10000}
	require.NoError(t, f.vehicles.Create(f.ctx, f.vehicle))
	return f
}

func int64Ptr(v int64) *int64 { return &v }

func TestRecordEventCompletesMatchingReminders(t *testing.T) {
	f := newMaintenanceFixture(t)

	oil, err := f.svc.CreateReminder(f.ctx, &CreateReminderInput{VehicleID: f.vehicle.ID, Type: enum.MaintenanceTypeOilChange, DueOdometerKm: int64Ptr(15000)})
	require.NoError(t, err)
	tires, err := f.svc.CreateReminder(f.ctx, &CreateReminderInput{VehicleID: f.vehicle.ID, Type: enum.MaintenanceTypeTires, DueOdometerKm: int64Ptr(20000)})
	require.NoError(t, err)

	event, err := f.svc.RecordEvent(f.ctx, &RecordEventInput{
		VehicleID:  f.vehicle.ID,
		Type:       enum.MaintenanceTypeOilChange,
		OdometerKm: int64Ptr(14500),
		CostCents:  8900,
	})
	require.NoError(t, err)
	require.Equal(t, fixedNow, event.PerformedAt)

	got, err := f.repo.GetReminderByID(f.ctx, oil.ID)
	require.NoError(t, err)
	require.Equal(t, enum.ReminderStatusDone, got.Status)
	require.NotNil(t, got.CompletedAt)

	got, err = f.repo.GetReminderByID(f.ctx, tires.ID)
	require.NoError(t, err)
	require.Equal(t, enum.ReminderStatusPending, got.Status)

	v, err := f.vehicles.GetByID(f.ctx, f.vehicle.ID)
	require.NoError(t, err)
	require.Equal(t, int64(14500), v.OdometerKm)
	require.Len(t, f.tasks.refreshes, 1)
}

func TestRecordEventValidation(t *testing.T) {
	f := newMaintenanceFixture(t)

	_, err := f.svc.RecordEvent(f.ctx, &RecordEventInput{VehicleID: f.vehicle.ID, Type: "WASH"})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	_, err = f.svc.RecordEvent(f.ctx, &RecordEventInput{VehicleID: f.vehicle.ID, Type: enum.MaintenanceTypeBrakes, CostCents: -1})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	_, err = f.svc.RecordEvent(f.ctx, &RecordEventInput{VehicleID: valueobject.NewVehicleID(), Type: enum.MaintenanceTypeBrakes})
	requireAppError(t, err, http.StatusNotFound)
}

func TestCreateReminderInitialStatus(t *testing.T) {
	f := newMaintenanceFixture(t)

	_, err := f.svc.CreateReminder(f.ctx, &CreateReminderInput{VehicleID: f.vehicle.ID, Type: enum.MaintenanceTypeService})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	past := fixedNow.Add(-24 * time.Hour)
	due, err := f.svc.CreateReminder(f.ctx, &CreateReminderInput{VehicleID: f.vehicle.ID, Type: enum.MaintenanceTypeInspection, DueAt: &past})
	require.NoError(t, err)
	require.Equal(t, enum.ReminderStatusDue, due.Status)

	reached, err := f.svc.CreateReminder(f.ctx, &CreateReminderInput{VehicleID: f.vehicle.ID, Type: enum.MaintenanceTypeService, DueOdometerKm: int64Ptr(9000)})
	require.NoError(t, err)
	require.Equal(t, enum.ReminderStatusDue, reached.Status)

	future := fixedNow.Add(24 * time.Hour)
	pending, err := f.svc.CreateReminder(f.ctx, &CreateReminderInput{VehicleID: f.vehicle.ID, Type: enum.MaintenanceTypeService, DueAt: &future})
	require.NoError(t, err)
	require.Equal(t, enum.ReminderStatusPending, pending.Status)
}

func TestSweepDueRemindersFlipsReachedThresholds(t *testing.T) {
	f := newMaintenanceFixture(t)

	soon := fixedNow.Add(time.Hour)
	byDate, err := f.svc.CreateReminder(f.ctx, &CreateReminderInput{VehicleID: f.vehicle.ID, Type: enum.MaintenanceTypeInspection, DueAt: &soon})
	require.NoError(t, err)
	byKm, err := f.svc.CreateReminder(f.ctx, &CreateReminderInput{VehicleID: f.vehicle.ID, Type: enum.MaintenanceTypeTires, DueOdometerKm: int64Ptr(12000)})
	require.NoError(t, err)

	n, err := f.svc.SweepDueReminders(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)

	_, err = f.vehicles.AdvanceOdometer(f.ctx, f.vehicle.ID, 12000)
	require.NoError(t, err)
	f.svc.now = func() time.Time { return fixedNow.Add(2 * time.Hour) }

	n, err = f.svc.SweepDueReminders(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	status := enum.ReminderStatusDue
	list, err := f.svc.ListReminders(f.ctx, f.vehicle.ID, &status)
	require.NoError(t, err)
	ids := []valueobject.MaintenanceReminderID{list[0].ID, list[1].ID}
	require.ElementsMatch(t, []valueobject.MaintenanceReminderID{byDate.ID, byKm.ID}, ids)
}

func TestCompleteAndDeleteReminder(t *testing.T) {
	f := newMaintenanceFixture(t)
	rem, err := f.svc.CreateReminder(f.ctx, &CreateReminderInput{VehicleID: f.vehicle.ID, Type: enum.MaintenanceTypeBrakes, DueOdometerKm: int64Ptr(30000)})
	require.NoError(t, err)

	done, err := f.svc.CompleteReminder(f.ctx, rem.ID)
	require.NoError(t, err)
	require.Equal(t, enum.ReminderStatusDone, done.Status)
	require.Equal(t, fixedNow, *done.CompletedAt)

	again, err := f.svc.CompleteReminder(f.ctx, rem.ID)
	require.NoError(t, err)
	require.Equal(t, fixedNow, *again.CompletedAt)

	require.NoError(t, f.svc.DeleteReminder(f.ctx, rem.ID))
	_, err = f.svc.CompleteReminder(f.ctx, rem.ID)
	requireAppError(t, err, http.StatusNotFound)
}

func TestDeleteEventRequestsRefresh(t *testing.T) {
	f := newMaintenanceFixture(t)
	event, err := f.svc.RecordEvent(f.ctx, &RecordEventInput{VehicleID: f.vehicle.ID, Type: enum.MaintenanceTypeOther, CostCents: 500})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteEvent(f.ctx, event.ID))
	require.Len(t, f.tasks.refreshes, 2)

	events, err := f.svc.ListEvents(f.ctx, f.vehicle.ID)
	require.NoError(t, err)
	require.Empty(t, events)

	requireAppError(t, f.svc.DeleteEvent(ownerCtx(uuid.New()), event.ID), http.StatusNotFound)
}
