package service

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/pkg/pagination"
)

func TestCreateVehicleNormalisesPlate(t *testing.T) {
	svc := NewVehicleService(newFakeVehicleRepo())
	ctx := ownerCtx(uuid.New())

	v, err := svc.CreateVehicle(ctx, &CreateVehicleInput{Name: "Clio", Plate: " ab-123-cd ", FuelType: enum.FuelTypeSP95})
	require.NoError(t, err)
	require.Equal(t, "AB-123-CD", v.Plate)

	_, err = svc.CreateVehicle(ctx, &CreateVehicleInput{Name: "Other", Plate: "AB-123-CD", FuelType: enum.FuelTypeSP95})
	requireAppError(t, err, http.StatusConflict)

	// plates are unique per owner only
	_, err = svc.CreateVehicle(ownerCtx(uuid.New()), &CreateVehicleInput{Name: "Clio", Plate: "AB-123-CD", FuelType: enum.FuelTypeSP95})
	require.NoError(t, err)
}

func TestCreateVehicleValidation(t *testing.T) {
	svc := NewVehicleService(newFakeVehicleRepo())
	ctx := ownerCtx(uuid.New())

	_, err := svc.CreateVehicle(ctx, &CreateVehicleInput{Name: "X", Plate: "P1", FuelType: "KEROSENE"})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	_, err = svc.CreateVehicle(ctx, &CreateVehicleInput{Name: "X", Plate: "P1", FuelType: enum.FuelTypeE10, OdometerKm: -5})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	_, err = svc.CreateVehicle(ctx, &CreateVehicleInput{Name: "X", Plate: "  ", FuelType: enum.FuelTypeE10})
	requireAppError(t, err, http.StatusUnprocessableEntity)
}

func TestUpdateVehicleOdometerCannotGoBackwards(t *testing.T) {
	svc := NewVehicleService(newFakeVehicleRepo())
	ctx := ownerCtx(uuid.New())
	v, err := svc.CreateVehicle(ctx, &CreateVehicleInput{Name: "Clio", Plate: "P1", FuelType: enum.FuelTypeDiesel, OdometerKm: 1000})
	require.NoError(t, err)

	back := int64(900)
	_, err = svc.UpdateVehicle(ctx, &UpdateVehicleInput{ID: v.ID, OdometerKm: &back})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	forward := int64(1200)
	name := "Clio V"
	updated, err := svc.UpdateVehicle(ctx, &UpdateVehicleInput{ID: v.ID, OdometerKm: &forward, Name: &name})
	require.NoError(t, err)
	require.Equal(t, int64(1200), updated.OdometerKm)
	require.Equal(t, "Clio V", updated.Name)
}

func TestListAndDeleteVehicles(t *testing.T) {
	svc := NewVehicleService(newFakeVehicleRepo())
	ctx := ownerCtx(uuid.New())
	for _, plate := range []string{"P1", "P2"} {
		_, err := svc.CreateVehicle(ctx, &CreateVehicleInput{Name: "Car " + plate, Plate: plate, FuelType: enum.FuelTypeLPG})
		require.NoError(t, err)
	}

	result, err := svc.ListVehicles(ctx, pagination.DefaultPagination(), "p2")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Equal(t, int64(1), result.Pagination.Total)

	require.NoError(t, svc.DeleteVehicle(ctx, result.Items[0].ID))
	_, err = svc.GetVehicle(ctx, result.Items[0].ID)
	requireAppError(t, err, http.StatusNotFound)
}
