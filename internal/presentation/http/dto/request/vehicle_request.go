package request

import "github.com/sangkips/fueltrack-api/internal/domain/enum"

// CreateVehicleRequest represents a create vehicle request
type CreateVehicleRequest struct {
	Name       string        `json:"name" binding:"required,max=255"`
	Plate      string        `json:"plate" binding:"required,max=32"`
	Make       *string       `json:"make" binding:"omitempty,max=100"`
	Model      *string       `json:"model" binding:"omitempty,max=100"`
	Year       *int          `json:"year" binding:"omitempty,min=1900,max=2100"`
	FuelType   enum.FuelType `json:"fuel_type" binding:"required,fueltype"`
	OdometerKm int64         `json:"odometer_km" binding:"min=0"`
}

// UpdateVehicleRequest represents a partial vehicle update
type UpdateVehicleRequest struct {
	Name       *string        `json:"name" binding:"omitempty,max=255"`
	Plate      *string        `json:"plate" binding:"omitempty,max=32"`
	Make       *string        `json:"make" binding:"omitempty,max=100"`
	Model      *string        `json:"model" binding:"omitempty,max=100"`
	Year       *int           `json:"year" binding:"omitempty,min=1900,max=2100"`
	FuelType   *enum.FuelType `json:"fuel_type" binding:"omitempty,fueltype"`
	OdometerKm *int64         `json:"odometer_km" binding:"omitempty,min=0"`
}
