package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
)

// KPIQuery selects projection rows for one owner. From and To are inclusive
// month starts; a nil VehicleID covers every vehicle.
type KPIQuery struct {
	OwnerID   uuid.UUID
	From      time.Time
	To        time.Time
	VehicleID *valueobject.VehicleID
}

// AnalyticsRepository defines the interface for the monthly KPI projection
type AnalyticsRepository interface {
	// RebuildMonthlyKPIs replaces all projection rows of the owner from the
	// receipts and maintenance events tables and returns the number of rows written
	RebuildMonthlyKPIs(ctx context.Context, ownerID uuid.UUID, refreshedAt time.Time) (int64, error)

	ListMonthlyKPIs(ctx context.Context, query KPIQuery) ([]entity.MonthlyKPI, error)
}
