package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
)

// TaskMetrics groups Prometheus collectors for background task processing
type TaskMetrics struct {
	Processed *prometheus.CounterVec
	Duration  *prometheus.HistogramVec
}

// NewTaskMetrics registers and returns task collectors. Collectors already
// registered on reg are reused.
func NewTaskMetrics(namespace string, reg prometheus.Registerer) *TaskMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &TaskMetrics{
		Processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_processed_total",
			Help:      "Total number of background tasks processed.",
		}, []string{"type", "status"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_duration_seconds",
			Help:      "Background task processing time in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),
	}
	if err := reg.Register(m.Processed); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			panic(fmt.Errorf("register task counter: %w", err))
		}
		m.Processed = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(m.Duration); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			panic(fmt.Errorf("register task histogram: %w", err))
		}
		m.Duration = are.ExistingCollector.(*prometheus.HistogramVec)
	}
	return m
}

// Middleware records the outcome and latency of every task
func (m *TaskMetrics) Middleware(next asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
		start := time.Now()
		err := next.ProcessTask(ctx, t)
		status := "ok"
		if err != nil {
			status = "error"
		}
		m.Processed.WithLabelValues(t.Type(), status).Inc()
		m.Duration.WithLabelValues(t.Type()).Observe(time.Since(start).Seconds())
		return err
	})
}
