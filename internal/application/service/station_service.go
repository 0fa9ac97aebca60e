package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/repository"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"github.com/sangkips/fueltrack-api/internal/infrastructure/geocoding"
	infraRepo "github.com/sangkips/fueltrack-api/internal/infrastructure/repository"
	"github.com/sangkips/fueltrack-api/pkg/apperror"
	"github.com/sangkips/fueltrack-api/pkg/pagination"
)

// Geocoder resolves a postal address to coordinates
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*geocoding.Coordinates, error)
}

// StationService handles fuel station operations
type StationService struct {
	stationRepo repository.StationRepository
	geocoder    Geocoder
	tasks       TaskEnqueuer
	now         clock
}

// NewStationService creates a new station service. The geocoder is only
// needed by the worker; the API passes nil.
func NewStationService(stationRepo repository.StationRepository, geocoder Geocoder, tasks TaskEnqueuer) *StationService {
	return &StationService{
		stationRepo: stationRepo,
		geocoder:    geocoder,
		tasks:       tasks,
		now:         time.Now,
	}
}

// CreateStationInput represents the create station input
type CreateStationInput struct {
	Name    string
	Brand   *string
	Address string
}

// CreateStation stores the station and schedules geocoding of its address
func (s *StationService) CreateStation(ctx context.Context, input *CreateStationInput) (*entity.Station, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	address := strings.TrimSpace(input.Address)
	if address == "" {
		return nil, apperror.NewUnprocessableError("Address is required")
	}

	station := &entity.Station{
		OwnerID:         ownerID,
		Name:            strings.TrimSpace(input.Name),
		Brand:           input.Brand,
		Address:         address,
		GeocodingStatus: enum.GeocodingStatusPending,
	}

	if err := s.stationRepo.Create(ctx, station); err != nil {
		return nil, err
	}

	s.requestGeocoding(ctx, ownerID, station.ID)
	return station, nil
}

// GetStation retrieves a station by ID
func (s *StationService) GetStation(ctx context.Context, id valueobject.StationID) (*entity.Station, error) {
	station, err := s.stationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if station == nil {
		return nil, apperror.NewNotFoundError("Station")
	}
	return station, nil
}

// ListStations lists the owner's stations
func (s *StationService) ListStations(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Station], error) {
	stations, total, err := s.stationRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(stations, pag), nil
}

// UpdateStationInput represents the update station input
type UpdateStationInput struct {
	ID      valueobject.StationID
	Name    *string
	Brand   *string
	Address *string
}

// UpdateStation applies a partial update. A changed address is geocoded again.
func (s *StationService) UpdateStation(ctx context.Context, input *UpdateStationInput) (*entity.Station, error) {
	station, err := s.GetStation(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		station.Name = strings.TrimSpace(*input.Name)
	}
	if input.Brand != nil {
		station.Brand = input.Brand
	}
	addressChanged := false
	if input.Address != nil {
		address := strings.TrimSpace(*input.Address)
		if address == "" {
			return nil, apperror.NewUnprocessableError("Address is required")
		}
		if address != station.Address {
			station.Address = address
			station.ResetGeocoding()
			addressChanged = true
		}
	}

	if err := s.stationRepo.Update(ctx, station); err != nil {
		return nil, err
	}

	if addressChanged {
		s.requestGeocoding(ctx, station.OwnerID, station.ID)
	}
	return station, nil
}

// DeleteStation deletes a station
func (s *StationService) DeleteStation(ctx context.Context, id valueobject.StationID) error {
	if _, err := s.GetStation(ctx, id); err != nil {
		return err
	}
	return s.stationRepo.Delete(ctx, id)
}

// GeocodeStation resolves the station address and stores the outcome.
// A provider with no match marks the station FAILED; transport errors are
// returned so the task is retried.
func (s *StationService) GeocodeStation(ctx context.Context, ownerID uuid.UUID, stationID valueobject.StationID) error {
	if s.geocoder == nil {
		return errors.New("station service: geocoder not configured")
	}
	ctx = infraRepo.WithOwner(ctx, ownerID)

	station, err := s.stationRepo.GetByID(ctx, stationID)
	if err != nil {
		return err
	}
	if station == nil {
		// deleted since the task was enqueued
		return nil
	}

	coords, err := s.geocoder.Geocode(ctx, station.Address)
	if errors.Is(err, geocoding.ErrNoResult) {
		return s.stationRepo.UpdateGeocoding(ctx, stationID, repository.GeocodingResult{
			Status:     enum.GeocodingStatusFailed,
			ResolvedAt: s.now(),
		})
	}
	if err != nil {
		return err
	}

	return s.stationRepo.UpdateGeocoding(ctx, stationID, repository.GeocodingResult{
		Status:     enum.GeocodingStatusSucceeded,
		Latitude:   &coords.Latitude,
		Longitude:  &coords.Longitude,
		ResolvedAt: s.now(),
	})
}

func (s *StationService) requestGeocoding(ctx context.Context, ownerID uuid.UUID, id valueobject.StationID) {
	if s.tasks == nil {
		return
	}
	if err := s.tasks.EnqueueStationGeocode(ctx, ownerID, id); err != nil {
		log.Warn().Err(err).Str("station_id", id.String()).Msg("failed to enqueue geocoding")
	}
}
