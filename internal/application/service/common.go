package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	infraRepo "github.com/sangkips/fueltrack-api/internal/infrastructure/repository"
	"github.com/sangkips/fueltrack-api/pkg/apperror"
)

// TaskEnqueuer publishes background work for the worker process
type TaskEnqueuer interface {
	EnqueueAnalyticsRefresh(ctx context.Context, ownerID uuid.UUID) error
	EnqueueStationGeocode(ctx context.Context, ownerID uuid.UUID, stationID valueobject.StationID) error
}

// ownerFromContext returns the authenticated owner set by the auth middleware
func ownerFromContext(ctx context.Context) (uuid.UUID, error) {
	ownerID, ok := infraRepo.GetOwnerID(ctx)
	if !ok || ownerID == uuid.Nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}
	return ownerID, nil
}

// invalidArgument turns domain validation failures into 422 responses
func invalidArgument(err error) error {
	if errors.Is(err, valueobject.ErrInvalidArgument) || errors.Is(err, enum.ErrUnknownCode) {
		return apperror.NewUnprocessableError(err.Error())
	}
	return err
}

// requestAnalyticsRefresh enqueues a projection rebuild. A broker failure only
// delays the KPIs, so it is logged rather than returned.
func requestAnalyticsRefresh(ctx context.Context, tasks TaskEnqueuer, ownerID uuid.UUID) {
	if tasks == nil {
		return
	}
	if err := tasks.EnqueueAnalyticsRefresh(ctx, ownerID); err != nil {
		log.Warn().Err(err).Str("owner_id", ownerID.String()).Msg("failed to enqueue analytics refresh")
	}
}

type clock func() time.Time
