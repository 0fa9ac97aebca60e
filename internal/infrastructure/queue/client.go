package queue

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
)

// Enqueuer is the subset of *asynq.Client used to publish tasks
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Client publishes domain tasks to the asynq broker
type Client struct {
	enqueuer Enqueuer
}

// NewClient wraps an asynq client (or any Enqueuer)
func NewClient(enqueuer Enqueuer) *Client {
	return &Client{enqueuer: enqueuer}
}

// EnqueueAnalyticsRefresh schedules a rebuild of the owner's KPI projection
func (c *Client) EnqueueAnalyticsRefresh(ctx context.Context, ownerID uuid.UUID) error {
	task, err := NewAnalyticsRefreshTask(ownerID)
	if err != nil {
		return err
	}
	if _, err := c.enqueuer.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeAnalyticsRefresh, err)
	}
	return nil
}

// EnqueueStationGeocode schedules address resolution for a station
func (c *Client) EnqueueStationGeocode(ctx context.Context, ownerID uuid.UUID, stationID valueobject.StationID) error {
	task, err := NewStationGeocodeTask(ownerID, stationID)
	if err != nil {
		return err
	}
	if _, err := c.enqueuer.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeStationGeocode, err)
	}
	return nil
}
