package repository

import (
	"context"

	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"github.com/sangkips/fueltrack-api/pkg/pagination"
)

// VehicleRepository defines the interface for vehicle data operations.
// All reads are restricted to the owner carried by the context.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	GetByID(ctx context.Context, id valueobject.VehicleID) (*entity.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*entity.Vehicle, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	Delete(ctx context.Context, id valueobject.VehicleID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Vehicle, int64, error)
}
