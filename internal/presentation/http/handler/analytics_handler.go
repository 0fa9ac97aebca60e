package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/fueltrack-api/internal/application/service"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"github.com/sangkips/fueltrack-api/internal/presentation/http/dto/response"
)

// AnalyticsHandler serves the monthly KPIs
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetKPIs handles GET /analytics/kpis?from=YYYY-MM&to=YYYY-MM&vehicle_id=
func (h *AnalyticsHandler) GetKPIs(c *gin.Context) {
	var req service.KPIRequest
	var err error

	if from := c.Query("from"); from != "" {
		if req.From, err = service.ParseMonth(from); err != nil {
			response.Error(c, err)
			return
		}
	}
	if to := c.Query("to"); to != "" {
		if req.To, err = service.ParseMonth(to); err != nil {
			response.Error(c, err)
			return
		}
	}
	if req.VehicleID, err = queryID(c, "vehicle_id", valueobject.ParseVehicleID); err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.analyticsService.GetKPIs(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "KPIs retrieved successfully", report)
}

// Refresh handles POST /analytics/refresh
func (h *AnalyticsHandler) Refresh(c *gin.Context) {
	if err := h.analyticsService.RequestRefresh(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 202, "Analytics refresh scheduled", nil)
}

// ListFuelTypes returns the supported fuel type codes
func ListFuelTypes(c *gin.Context) {
	types := enum.AllFuelTypes()
	out := make([]gin.H, 0, len(types))
	for _, t := range types {
		out = append(out, gin.H{"code": t, "label": t.Label()})
	}
	response.OK(c, "Fuel types retrieved successfully", out)
}
