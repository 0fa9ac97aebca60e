package repository

import (
	"context"
	"errors"
	"slices"

	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	domainRepo "github.com/sangkips/fueltrack-api/internal/domain/repository"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"github.com/sangkips/fueltrack-api/pkg/pagination"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines", "Vehicle", "Station").Create(receipt).Error; err != nil {
			return err
		}
		for i := range receipt.Lines {
			receipt.Lines[i].ReceiptID = receipt.ID
		}
		if len(receipt.Lines) > 0 {
			if err := tx.Create(&receipt.Lines).Error; err != nil {
				return err
			}
		}
		if receipt.OdometerKm == nil {
			return nil
		}
		return advanceOdometer(ctx, tx, receipt.VehicleID, *receipt.OdometerKm).Error
	})
}

func (r *receiptRepository) GetByID(ctx context.Context, id valueobject.ReceiptID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Vehicle").
		Preload("Station").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) Delete(ctx context.Context, id valueobject.ReceiptID) error {
	return r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		Delete(&entity.Receipt{}, "id = ?", id).Error
}

func (r *receiptRepository) List(ctx context.Context, filter domainRepo.ReceiptFilter, params *pagination.PaginationParams) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Receipt{}).Scopes(OwnerScope(ctx), receiptFilterScope(filter))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("issued_at DESC, id DESC").
		Find(&receipts).Error

	return receipts, total, err
}

// ListWithCursor returns receipts using cursor-based pagination on (created_at, id)
func (r *receiptRepository) ListWithCursor(ctx context.Context, filter domainRepo.ReceiptFilter, params *pagination.CursorParams) ([]entity.Receipt, error) {
	var receipts []entity.Receipt

	params.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Receipt{}).Scopes(OwnerScope(ctx), receiptFilterScope(filter))

	cursor, err := params.DecodeCursor()
	if err != nil {
		return nil, err
	}

	order := "created_at ASC, id ASC"
	if params.Direction == pagination.CursorDirectionPrev {
		order = "created_at DESC, id DESC"
		if cursor != nil {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	} else if cursor != nil {
		query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	err = query.Limit(params.Limit + 1).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order(order).
		Find(&receipts).Error
	if err != nil {
		return nil, err
	}

	// backwards pages are read newest first; callers always get ascending order
	if params.Direction == pagination.CursorDirectionPrev {
		slices.Reverse(receipts)
	}
	return receipts, nil
}

func (r *receiptRepository) ListAll(ctx context.Context, filter domainRepo.ReceiptFilter) ([]entity.Receipt, error) {
	var receipts []entity.Receipt
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx), receiptFilterScope(filter)).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Vehicle").
		Preload("Station").
		Order("issued_at ASC, id ASC").
		Find(&receipts).Error
	return receipts, err
}

func receiptFilterScope(filter domainRepo.ReceiptFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.VehicleID != nil {
			db = db.Where("vehicle_id = ?", *filter.VehicleID)
		}
		if filter.StationID != nil {
			db = db.Where("station_id = ?", *filter.StationID)
		}
		if filter.FuelType != nil {
			db = db.Where("EXISTS (SELECT 1 FROM receipt_lines rl WHERE rl.receipt_id = receipts.id AND rl.fuel_type = ?)", *filter.FuelType)
		}
		if filter.From != nil {
			db = db.Where("issued_at >= ?", *filter.From)
		}
		if filter.To != nil {
			db = db.Where("issued_at <= ?", *filter.To)
		}
		return db
	}
}
