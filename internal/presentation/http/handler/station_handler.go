package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/fueltrack-api/internal/application/service"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"github.com/sangkips/fueltrack-api/internal/presentation/http/dto/request"
	"github.com/sangkips/fueltrack-api/internal/presentation/http/dto/response"
)

// StationHandler handles fuel station HTTP requests
type StationHandler struct {
	stationService *service.StationService
}

// NewStationHandler creates a new station handler
func NewStationHandler(stationService *service.StationService) *StationHandler {
	return &StationHandler{stationService: stationService}
}

// List handles listing the caller's stations
func (h *StationHandler) List(c *gin.Context) {
	result, err := h.stationService.ListStations(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Stations retrieved successfully", result)
}

// Create handles creating a station. Geocoding happens in the background.
func (h *StationHandler) Create(c *gin.Context) {
	var req request.CreateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	station, err := h.stationService.CreateStation(c.Request.Context(), &service.CreateStationInput{
		Name:    req.Name,
		Brand:   req.Brand,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Station created successfully", station)
}

// Get handles fetching a station
func (h *StationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", valueobject.ParseStationID)
	if !ok {
		return
	}

	station, err := h.stationService.GetStation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Station retrieved successfully", station)
}

// Update handles a partial station update
func (h *StationHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", valueobject.ParseStationID)
	if !ok {
		return
	}

	var req request.UpdateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	station, err := h.stationService.UpdateStation(c.Request.Context(), &service.UpdateStationInput{
		ID:      id,
		Name:    req.Name,
		Brand:   req.Brand,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Station updated successfully", station)
}

// Delete handles deleting a station
func (h *StationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", valueobject.ParseStationID)
	if !ok {
		return
	}

	if err := h.stationService.DeleteStation(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Station deleted successfully", nil)
}
