package handler

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/fueltrack-api/internal/application/service"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/repository"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"github.com/sangkips/fueltrack-api/internal/presentation/http/dto/request"
	"github.com/sangkips/fueltrack-api/internal/presentation/http/dto/response"
	"github.com/sangkips/fueltrack-api/pkg/apperror"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReceiptHandler handles fuel receipt HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// List handles listing receipts (supports both page-based and cursor-based pagination)
func (h *ReceiptHandler) List(c *gin.Context) {
	filter, err := receiptFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if isCursorRequest(c) {
		result, err := h.receiptService.ListReceiptsWithCursor(c.Request.Context(), filter, cursorParams(c))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.SuccessWithCursor(c, "Receipts retrieved successfully", result)
		return
	}

	result, err := h.receiptService.ListReceipts(c.Request.Context(), filter, pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Receipts retrieved successfully", result)
}

// Create handles creating a receipt from its fuel lines
// @Summary Create Receipt
// @Tags receipts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.CreateReceiptRequest true "Receipt"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req request.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.VehicleID.IsZero() {
		response.ValidationError(c, []apperror.FieldError{{Field: "vehicle_id", Message: "is required"}})
		return
	}

	input := &service.CreateReceiptInput{
		VehicleID:  req.VehicleID,
		StationID:  req.StationID,
		OdometerKm: req.OdometerKm,
		Notes:      req.Notes,
		Lines:      make([]service.ReceiptLineInput, 0, len(req.Lines)),
	}
	if req.IssuedAt != nil {
		input.IssuedAt = *req.IssuedAt
	}
	for _, l := range req.Lines {
		input.Lines = append(input.Lines, service.ReceiptLineInput{
			FuelType:       l.FuelType,
			TTCTotalCents:  l.TTCTotalCents,
			UnitPriceCents: l.UnitPriceCents,
			VATRatePercent: l.VATRatePercent,
		})
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created successfully", receipt)
}

// Get handles fetching a receipt with its lines
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", valueobject.ParseReceiptID)
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// Delete handles deleting a receipt
func (h *ReceiptHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", valueobject.ParseReceiptID)
	if !ok {
		return
	}

	if err := h.receiptService.DeleteReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt deleted successfully", nil)
}

// Export streams the filtered receipts as an XLSX workbook
func (h *ReceiptHandler) Export(c *gin.Context) {
	filter, err := receiptFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.receiptService.ExportReceipts(c.Request.Context(), filter, &buf); err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("receipts-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, xlsxContentType, buf.Bytes())
}

func receiptFilter(c *gin.Context) (repository.ReceiptFilter, error) {
	var q request.ReceiptFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return repository.ReceiptFilter{}, apperror.NewBadRequestError("Invalid filter")
	}

	var filter repository.ReceiptFilter
	var err error
	if filter.VehicleID, err = queryID(c, "vehicle_id", valueobject.ParseVehicleID); err != nil {
		return filter, err
	}
	if filter.StationID, err = queryID(c, "station_id", valueobject.ParseStationID); err != nil {
		return filter, err
	}
	if q.FuelType != "" {
		ft, err := enum.ParseFuelType(q.FuelType)
		if err != nil {
			return filter, apperror.NewBadRequestError("Invalid fuel_type")
		}
		filter.FuelType = &ft
	}
	if filter.From, err = parseDateBound(q.From, false); err != nil {
		return filter, apperror.NewBadRequestError("Invalid from date")
	}
	if filter.To, err = parseDateBound(q.To, true); err != nil {
		return filter, apperror.NewBadRequestError("Invalid to date")
	}
	return filter, nil
}

// parseDateBound accepts RFC 3339 or YYYY-MM-DD. A bare date used as an upper
// bound covers the whole day.
func parseDateBound(s string, upper bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	if upper {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
