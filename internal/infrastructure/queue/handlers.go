package queue

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
)

// AnalyticsRefresher rebuilds the KPI projection of one owner
type AnalyticsRefresher interface {
	RefreshProjection(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

// StationGeocoder resolves and stores the coordinates of one station
type StationGeocoder interface {
	GeocodeStation(ctx context.Context, ownerID uuid.UUID, stationID valueobject.StationID) error
}

// Handlers processes the tasks published by Client
type Handlers struct {
	analytics AnalyticsRefresher
	stations  StationGeocoder
	logger    zerolog.Logger
}

func NewHandlers(analytics AnalyticsRefresher, stations StationGeocoder, logger zerolog.Logger) *Handlers {
	return &Handlers{
		analytics: analytics,
		stations:  stations,
		logger:    logger.With().Str("component", "worker").Logger(),
	}
}

// ServeMux routes task types to handlers, wrapped with metrics when m is not nil
func (h *Handlers) ServeMux(m *TaskMetrics) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	if m != nil {
		mux.Use(m.Middleware)
	}
	mux.HandleFunc(TypeAnalyticsRefresh, h.HandleAnalyticsRefresh)
	mux.HandleFunc(TypeStationGeocode, h.HandleStationGeocode)
	return mux
}

func (h *Handlers) HandleAnalyticsRefresh(ctx context.Context, t *asynq.Task) error {
	var p AnalyticsRefreshPayload
	if err := decodePayload(t, &p); err != nil {
		return err
	}
	rows, err := h.analytics.RefreshProjection(ctx, p.OwnerID)
	if err != nil {
		h.logger.Error().Err(err).Str("owner_id", p.OwnerID.String()).Msg("analytics refresh failed")
		return err
	}
	h.logger.Info().Str("owner_id", p.OwnerID.String()).Int64("rows", rows).Msg("analytics projection rebuilt")
	return nil
}

func (h *Handlers) HandleStationGeocode(ctx context.Context, t *asynq.Task) error {
	var p StationGeocodePayload
	if err := decodePayload(t, &p); err != nil {
		return err
	}
	if err := h.stations.GeocodeStation(ctx, p.OwnerID, p.StationID); err != nil {
		h.logger.Warn().Err(err).Str("station_id", p.StationID.String()).Msg("geocoding failed")
		return err
	}
	return nil
}
