package repository

import (
	"context"
	"time"

	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"github.com/sangkips/fueltrack-api/pkg/pagination"
)

// ReceiptFilter narrows receipt queries. Nil fields are ignored.
type ReceiptFilter struct {
	VehicleID *valueobject.VehicleID
	StationID *valueobject.StationID
	FuelType  *enum.FuelType
	From      *time.Time
	To        *time.Time
}

// ReceiptRepository defines the interface for receipt data operations
type ReceiptRepository interface {
	// Create stores the receipt and its lines in one transaction. When the
	// receipt carries an odometer reading the vehicle is advanced in the same
	// transaction.
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id valueobject.ReceiptID) (*entity.Receipt, error)
	Delete(ctx context.Context, id valueobject.ReceiptID) error
	List(ctx context.Context, filter ReceiptFilter, params *pagination.PaginationParams) ([]entity.Receipt, int64, error)
	// ListWithCursor fetches limit+1 receipts so callers can detect a next page
	ListWithCursor(ctx context.Context, filter ReceiptFilter, params *pagination.CursorParams) ([]entity.Receipt, error)
	// ListAll returns every matching receipt ordered by issue date, lines included
	ListAll(ctx context.Context, filter ReceiptFilter) ([]entity.Receipt, error)
}
