package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	domainRepo "github.com/sangkips/fueltrack-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

const rebuildMonthlyKPIsSQL = `
	INSERT INTO analytics_monthly_kpis
		(owner_id, vehicle_id, month, receipt_count, total_cents, vat_cents, net_cents, maintenance_cents, refreshed_at)
	SELECT
		?,
		src.vehicle_id,
		src.month,
		SUM(src.receipt_count),
		SUM(src.total_cents),
		SUM(src.vat_cents),
		SUM(src.total_cents) - SUM(src.vat_cents),
		SUM(src.maintenance_cents),
		?
	FROM (
		SELECT vehicle_id, date_trunc('month', issued_at)::date AS month,
			1 AS receipt_count, total_cents, vat_cents, 0 AS maintenance_cents
		FROM receipts
		WHERE owner_id = ? AND deleted_at IS NULL
		UNION ALL
		SELECT vehicle_id, date_trunc('month', performed_at)::date AS month,
			0, 0, 0, cost_cents
		FROM maintenance_events
		WHERE owner_id = ? AND deleted_at IS NULL
	) src
	GROUP BY src.vehicle_id, src.month
`

func (r *analyticsRepository) RebuildMonthlyKPIs(ctx context.Context, ownerID uuid.UUID, refreshedAt time.Time) (int64, error) {
	var written int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", ownerID).Delete(&entity.MonthlyKPI{}).Error; err != nil {
			return err
		}
		result := tx.Exec(rebuildMonthlyKPIsSQL, ownerID, refreshedAt, ownerID, ownerID)
		if result.Error != nil {
			return result.Error
		}
		written = result.RowsAffected
		return nil
	})
	return written, err
}

func (r *analyticsRepository) ListMonthlyKPIs(ctx context.Context, query domainRepo.KPIQuery) ([]entity.MonthlyKPI, error) {
	var rows []entity.MonthlyKPI
	q := r.db.WithContext(ctx).
		Where("owner_id = ? AND month >= ? AND month <= ?", query.OwnerID, query.From, query.To)
	if query.VehicleID != nil {
		q = q.Where("vehicle_id = ?", *query.VehicleID)
	}
	err := q.Order("month ASC, vehicle_id ASC").Find(&rows).Error
	return rows, err
}
