package repository

import (
	"context"
	"time"

	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"github.com/sangkips/fueltrack-api/pkg/pagination"
)

// GeocodingResult is the outcome of resolving a station address
type GeocodingResult struct {
	Status     enum.GeocodingStatus
	Latitude   *float64
	Longitude  *float64
	ResolvedAt time.Time
}

// StationRepository defines the interface for station data operations
type StationRepository interface {
	Create(ctx context.Context, station *entity.Station) error
	GetByID(ctx context.Context, id valueobject.StationID) (*entity.Station, error)
	Update(ctx context.Context, station *entity.Station) error
	Delete(ctx context.Context, id valueobject.StationID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Station, int64, error)
	UpdateGeocoding(ctx context.Context, id valueobject.StationID, result GeocodingResult) error
}
