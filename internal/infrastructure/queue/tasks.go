package queue

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
)

// Task type names
const (
	TypeAnalyticsRefresh = "analytics:refresh"
	TypeStationGeocode   = "station:geocode"
)

// AnalyticsRefreshPayload asks the worker to rebuild one owner's KPI projection
type AnalyticsRefreshPayload struct {
	OwnerID uuid.UUID `json:"owner_id"`
}

// StationGeocodePayload asks the worker to resolve a station address
type StationGeocodePayload struct {
	OwnerID   uuid.UUID             `json:"owner_id"`
	StationID valueobject.StationID `json:"station_id"`
}

func NewAnalyticsRefreshTask(ownerID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(AnalyticsRefreshPayload{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAnalyticsRefresh, payload, asynq.MaxRetry(5)), nil
}

func NewStationGeocodeTask(ownerID uuid.UUID, stationID valueobject.StationID) (*asynq.Task, error) {
	payload, err := json.Marshal(StationGeocodePayload{OwnerID: ownerID, StationID: stationID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeStationGeocode, payload, asynq.MaxRetry(3)), nil
}

// decodePayload rejects malformed payloads with SkipRetry so they go straight to the archive
func decodePayload(t *asynq.Task, dst any) error {
	if err := json.Unmarshal(t.Payload(), dst); err != nil {
		return fmt.Errorf("decode %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	return nil
}
