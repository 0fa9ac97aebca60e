package repository

import (
	"context"
	"errors"

	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	domainRepo "github.com/sangkips/fueltrack-api/internal/domain/repository"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"github.com/sangkips/fueltrack-api/pkg/pagination"
	"gorm.io/gorm"
)

type stationRepository struct {
	db *gorm.DB
}

// NewStationRepository creates a new station repository
func NewStationRepository(db *gorm.DB) domainRepo.StationRepository {
	return &stationRepository{db: db}
}

func (r *stationRepository) Create(ctx context.Context, station *entity.Station) error {
	return r.db.WithContext(ctx).Create(station).Error
}

func (r *stationRepository) GetByID(ctx context.Context, id valueobject.StationID) (*entity.Station, error) {
	var station entity.Station
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		First(&station, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &station, err
}

func (r *stationRepository) Update(ctx context.Context, station *entity.Station) error {
	return r.db.WithContext(ctx).Save(station).Error
}

func (r *stationRepository) Delete(ctx context.Context, id valueobject.StationID) error {
	return r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		Delete(&entity.Station{}, "id = ?", id).Error
}

func (r *stationRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Station, int64, error) {
	var stations []entity.Station
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Station{}).Scopes(OwnerScope(ctx))
	if search != "" {
		query = query.Where("name ILIKE ? OR brand ILIKE ? OR address ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&stations).Error

	return stations, total, err
}

func (r *stationRepository) UpdateGeocoding(ctx context.Context, id valueobject.StationID, result domainRepo.GeocodingResult) error {
	return r.db.WithContext(ctx).Model(&entity.Station{}).
		Scopes(OwnerScope(ctx)).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"geocoding_status": result.Status,
			"latitude":         result.Latitude,
			"longitude":        result.Longitude,
			"geocoded_at":      result.ResolvedAt,
		}).Error
}
