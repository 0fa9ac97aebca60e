package service

import (
	"context"
	"strings"

	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/repository"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"github.com/sangkips/fueltrack-api/pkg/apperror"
	"github.com/sangkips/fueltrack-api/pkg/pagination"
	"github.com/sangkips/fueltrack-api/pkg/utils"
)

// VehicleService handles vehicle-related operations
type VehicleService struct {
	vehicleRepo repository.VehicleRepository
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(vehicleRepo repository.VehicleRepository) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo}
}

// CreateVehicleInput represents the create vehicle input
type CreateVehicleInput struct {
	Name       string
	Plate      string
	Make       *string
	Model      *string
	Year       *int
	FuelType   enum.FuelType
	OdometerKm int64
}

// CreateVehicle creates a new vehicle for the authenticated owner
func (s *VehicleService) CreateVehicle(ctx context.Context, input *CreateVehicleInput) (*entity.Vehicle, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !input.FuelType.IsValid() {
		return nil, apperror.NewUnprocessableError("Unknown fuel type")
	}
	if input.OdometerKm < 0 {
		return nil, apperror.NewUnprocessableError("Odometer must not be negative")
	}

	plate := utils.NormalizePlate(input.Plate)
	if plate == "" {
		return nil, apperror.NewUnprocessableError("Plate is required")
	}
	if err := s.ensurePlateFree(ctx, plate, nil); err != nil {
		return nil, err
	}

	vehicle := &entity.Vehicle{
		OwnerID:    ownerID,
		Name:       strings.TrimSpace(input.Name),
		Plate:      plate,
		Make:       input.Make,
		Model:      input.Model,
		Year:       input.Year,
		FuelType:   input.FuelType,
		OdometerKm: input.OdometerKm,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// GetVehicle retrieves a vehicle by ID
func (s *VehicleService) GetVehicle(ctx context.Context, id valueobject.VehicleID) (*entity.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NewNotFoundError("Vehicle")
	}
	return vehicle, nil
}

// ListVehicles lists the owner's vehicles
func (s *VehicleService) ListVehicles(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Vehicle], error) {
	vehicles, total, err := s.vehicleRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(vehicles, pag), nil
}

// UpdateVehicleInput represents the update vehicle input
type UpdateVehicleInput struct {
	ID         valueobject.VehicleID
	Name       *string
	Plate      *string
	Make       *string
	Model      *string
	Year       *int
	FuelType   *enum.FuelType
	OdometerKm *int64
}

// UpdateVehicle applies a partial update
func (s *VehicleService) UpdateVehicle(ctx context.Context, input *UpdateVehicleInput) (*entity.Vehicle, error) {
	vehicle, err := s.GetVehicle(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		vehicle.Name = strings.TrimSpace(*input.Name)
	}
	if input.Plate != nil {
		plate := utils.NormalizePlate(*input.Plate)
		if plate == "" {
			return nil, apperror.NewUnprocessableError("Plate is required")
		}
		if plate != vehicle.Plate {
			if err := s.ensurePlateFree(ctx, plate, &vehicle.ID); err != nil {
				return nil, err
			}
			vehicle.Plate = plate
		}
	}
	if input.Make != nil {
		vehicle.Make = input.Make
	}
	if input.Model != nil {
		vehicle.Model = input.Model
	}
	if input.Year != nil {
		vehicle.Year = input.Year
	}
	if input.FuelType != nil {
		if !input.FuelType.IsValid() {
			return nil, apperror.NewUnprocessableError("Unknown fuel type")
		}
		vehicle.FuelType = *input.FuelType
	}
	if input.OdometerKm != nil {
		if *input.OdometerKm < vehicle.OdometerKm {
			return nil, apperror.NewUnprocessableError("Odometer cannot go backwards")
		}
		vehicle.OdometerKm = *input.OdometerKm
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// DeleteVehicle deletes a vehicle
func (s *VehicleService) DeleteVehicle(ctx context.Context, id valueobject.VehicleID) error {
	if _, err := s.GetVehicle(ctx, id); err != nil {
		return err
	}
	return s.vehicleRepo.Delete(ctx, id)
}

func (s *VehicleService) ensurePlateFree(ctx context.Context, plate string, self *valueobject.VehicleID) error {
	existing, err := s.vehicleRepo.GetByPlate(ctx, plate)
	if err != nil {
		return err
	}
	if existing != nil && (self == nil || existing.ID != *self) {
		return apperror.NewConflictError("A vehicle with this plate already exists")
	}
	return nil
}
