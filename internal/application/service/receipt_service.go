package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/repository"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"github.com/sangkips/fueltrack-api/internal/infrastructure/export"
	"github.com/sangkips/fueltrack-api/pkg/apperror"
	"github.com/sangkips/fueltrack-api/pkg/pagination"
)

// MaxReceiptLines bounds the number of fuel lines on a single receipt
const MaxReceiptLines = 10

// ReceiptService handles fuel receipts
type ReceiptService struct {
	receiptRepo repository.ReceiptRepository
	vehicleRepo repository.VehicleRepository
	stationRepo repository.StationRepository
	tasks       TaskEnqueuer
	now         clock
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	vehicleRepo repository.VehicleRepository,
	stationRepo repository.StationRepository,
	tasks TaskEnqueuer,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo: receiptRepo,
		vehicleRepo: vehicleRepo,
		stationRepo: stationRepo,
		tasks:       tasks,
		now:         time.Now,
	}
}

// ReceiptLineInput carries the raw values of one fuel line
type ReceiptLineInput struct {
	FuelType       enum.FuelType
	TTCTotalCents  int64
	UnitPriceCents int64
	VATRatePercent int64
}

// CreateReceiptInput represents the create receipt input
type CreateReceiptInput struct {
	VehicleID  valueobject.VehicleID
	StationID  *valueobject.StationID
	IssuedAt   time.Time
	OdometerKm *int64
	Notes      *string
	Lines      []ReceiptLineInput
}

// CreateReceipt validates every line, stores the receipt with its totals and
// advances the vehicle odometer when the reading is higher
func (s *ReceiptService) CreateReceipt(ctx context.Context, input *CreateReceiptInput) (*entity.Receipt, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if len(input.Lines) == 0 {
		return nil, apperror.NewUnprocessableError("A receipt needs at least one line")
	}
	if len(input.Lines) > MaxReceiptLines {
		return nil, apperror.NewUnprocessableError(fmt.Sprintf("A receipt has at most %d lines", MaxReceiptLines))
	}
	if input.OdometerKm != nil && *input.OdometerKm < 0 {
		return nil, apperror.NewUnprocessableError("Odometer must not be negative")
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NewNotFoundError("Vehicle")
	}

	if input.StationID != nil {
		station, err := s.stationRepo.GetByID(ctx, *input.StationID)
		if err != nil {
			return nil, err
		}
		if station == nil {
			return nil, apperror.NewNotFoundError("Station")
		}
	}

	issuedAt := input.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = s.now()
	}

	receipt := &entity.Receipt{
		OwnerID:    ownerID,
		VehicleID:  vehicle.ID,
		StationID:  input.StationID,
		IssuedAt:   issuedAt.UTC(),
		OdometerKm: input.OdometerKm,
		Notes:      input.Notes,
	}
	for i, in := range input.Lines {
		line, err := valueobject.NewReceiptLine(in.FuelType, in.TTCTotalCents, in.UnitPriceCents, in.VATRatePercent)
		if err != nil {
			return nil, invalidArgument(fmt.Errorf("line %d: %w", i+1, err))
		}
		if err := receipt.AddLine(line); err != nil {
			return nil, invalidArgument(fmt.Errorf("line %d: %w", i+1, err))
		}
	}

	// The odometer reading is applied in the same transaction as the receipt.
	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}

	requestAnalyticsRefresh(ctx, s.tasks, ownerID)
	return receipt, nil
}

// GetReceipt retrieves a receipt with its lines
func (s *ReceiptService) GetReceipt(ctx context.Context, id valueobject.ReceiptID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// ListReceipts lists receipts with page-based pagination
func (s *ReceiptService) ListReceipts(ctx context.Context, filter repository.ReceiptFilter, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Receipt], error) {
	if err := validateRange(filter.From, filter.To); err != nil {
		return nil, err
	}
	receipts, total, err := s.receiptRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(receipts, pag), nil
}

// ListReceiptsWithCursor lists receipts using cursor-based pagination
func (s *ReceiptService) ListReceiptsWithCursor(ctx context.Context, filter repository.ReceiptFilter, params *pagination.CursorParams) (*pagination.CursorPaginatedResult[entity.Receipt], error) {
	if err := validateRange(filter.From, filter.To); err != nil {
		return nil, err
	}
	if _, err := params.DecodeCursor(); err != nil {
		return nil, apperror.NewBadRequestError("Invalid cursor")
	}
	params.Validate()

	receipts, err := s.receiptRepo.ListWithCursor(ctx, filter, params)
	if err != nil {
		return nil, err
	}

	cursorPag, items := pagination.NewCursorPagination(receipts, params,
		func(r entity.Receipt) pagination.Cursor {
			return pagination.Cursor{ID: r.ID.String(), CreatedAt: r.CreatedAt}
		},
	)

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// DeleteReceipt deletes a receipt and refreshes the analytics projection
func (s *ReceiptService) DeleteReceipt(ctx context.Context, id valueobject.ReceiptID) error {
	receipt, err := s.GetReceipt(ctx, id)
	if err != nil {
		return err
	}
	if err := s.receiptRepo.Delete(ctx, id); err != nil {
		return err
	}
	requestAnalyticsRefresh(ctx, s.tasks, receipt.OwnerID)
	return nil
}

// ExportReceipts writes the matching receipts as an XLSX workbook
func (s *ReceiptService) ExportReceipts(ctx context.Context, filter repository.ReceiptFilter, w io.Writer) error {
	if err := validateRange(filter.From, filter.To); err != nil {
		return err
	}
	receipts, err := s.receiptRepo.ListAll(ctx, filter)
	if err != nil {
		return err
	}
	return export.WriteReceiptsXLSX(w, receipts)
}

func validateRange(from, to *time.Time) error {
	if from != nil && to != nil && from.After(*to) {
		return apperror.NewUnprocessableError("'from' must not be after 'to'")
	}
	return nil
}
