package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/fueltrack-api/internal/application/service"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"github.com/sangkips/fueltrack-api/internal/presentation/http/dto/request"
	"github.com/sangkips/fueltrack-api/internal/presentation/http/dto/response"
)

// VehicleHandler handles vehicle-related HTTP requests
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// List handles listing the caller's vehicles
func (h *VehicleHandler) List(c *gin.Context) {
	result, err := h.vehicleService.ListVehicles(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Vehicles retrieved successfully", result)
}

// Create handles creating a vehicle
func (h *VehicleHandler) Create(c *gin.Context) {
	var req request.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), &service.CreateVehicleInput{
		Name:       req.Name,
		Plate:      req.Plate,
		Make:       req.Make,
		Model:      req.Model,
		Year:       req.Year,
		FuelType:   req.FuelType,
		OdometerKm: req.OdometerKm,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Vehicle created successfully", vehicle)
}

// Get handles fetching a vehicle
func (h *VehicleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", valueobject.ParseVehicleID)
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicle retrieved successfully", vehicle)
}

// Update handles a partial vehicle update
func (h *VehicleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", valueobject.ParseVehicleID)
	if !ok {
		return
	}

	var req request.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), &service.UpdateVehicleInput{
		ID:         id,
		Name:       req.Name,
		Plate:      req.Plate,
		Make:       req.Make,
		Model:      req.Model,
		Year:       req.Year,
		FuelType:   req.FuelType,
		OdometerKm: req.OdometerKm,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicle updated successfully", vehicle)
}

// Delete handles deleting a vehicle
func (h *VehicleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", valueobject.ParseVehicleID)
	if !ok {
		return
	}

	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vehicle deleted successfully", nil)
}
