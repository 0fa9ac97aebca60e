package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/fueltrack-api/internal/application/service"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"github.com/sangkips/fueltrack-api/internal/presentation/http/dto/request"
	"github.com/sangkips/fueltrack-api/internal/presentation/http/dto/response"
)

// MaintenanceHandler handles maintenance events and reminders
type MaintenanceHandler struct {
	maintenanceService *service.MaintenanceService
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(maintenanceService *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

// ListEvents handles listing the maintenance events of a vehicle
func (h *MaintenanceHandler) ListEvents(c *gin.Context) {
	vehicleID, ok := pathID(c, "id", valueobject.ParseVehicleID)
	if !ok {
		return
	}

	events, err := h.maintenanceService.ListEvents(c.Request.Context(), vehicleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Maintenance events retrieved successfully", events)
}

// RecordEvent handles recording a maintenance event on a vehicle
func (h *MaintenanceHandler) RecordEvent(c *gin.Context) {
	vehicleID, ok := pathID(c, "id", valueobject.ParseVehicleID)
	if !ok {
		return
	}

	var req request.RecordMaintenanceEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	input := &service.RecordEventInput{
		VehicleID:  vehicleID,
		Type:       req.Type,
		OdometerKm: req.OdometerKm,
		CostCents:  req.CostCents,
		Notes:      req.Notes,
	}
	if req.PerformedAt != nil {
		input.PerformedAt = *req.PerformedAt
	}

	event, err := h.maintenanceService.RecordEvent(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Maintenance event recorded successfully", event)
}

// DeleteEvent handles deleting a maintenance event
func (h *MaintenanceHandler) DeleteEvent(c *gin.Context) {
	id, ok := pathID(c, "id", valueobject.ParseMaintenanceEventID)
	if !ok {
		return
	}

	if err := h.maintenanceService.DeleteEvent(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Maintenance event deleted successfully", nil)
}

// ListReminders handles listing the reminders of a vehicle, optionally by ?status=
func (h *MaintenanceHandler) ListReminders(c *gin.Context) {
	vehicleID, ok := pathID(c, "id", valueobject.ParseVehicleID)
	if !ok {
		return
	}

	var status *enum.ReminderStatus
	if raw := c.Query("status"); raw != "" {
		s, err := enum.ParseReminderStatus(raw)
		if err != nil {
			response.BadRequest(c, "Invalid status")
			return
		}
		status = &s
	}

	reminders, err := h.maintenanceService.ListReminders(c.Request.Context(), vehicleID, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reminders retrieved successfully", reminders)
}

// CreateReminder handles creating a reminder on a vehicle
func (h *MaintenanceHandler) CreateReminder(c *gin.Context) {
	vehicleID, ok := pathID(c, "id", valueobject.ParseVehicleID)
	if !ok {
		return
	}

	var req request.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	reminder, err := h.maintenanceService.CreateReminder(c.Request.Context(), &service.CreateReminderInput{
		VehicleID:     vehicleID,
		Type:          req.Type,
		DueAt:         req.DueAt,
		DueOdometerKm: req.DueOdometerKm,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Reminder created successfully", reminder)
}

// CompleteReminder handles marking a reminder as done
func (h *MaintenanceHandler) CompleteReminder(c *gin.Context) {
	id, ok := pathID(c, "id", valueobject.ParseMaintenanceReminderID)
	if !ok {
		return
	}

	reminder, err := h.maintenanceService.CompleteReminder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reminder completed successfully", reminder)
}

// DeleteReminder handles deleting a reminder
func (h *MaintenanceHandler) DeleteReminder(c *gin.Context) {
	id, ok := pathID(c, "id", valueobject.ParseMaintenanceReminderID)
	if !ok {
		return
	}

	if err := h.maintenanceService.DeleteReminder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reminder deleted successfully", nil)
}
