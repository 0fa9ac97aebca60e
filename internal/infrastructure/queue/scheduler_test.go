package queue

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	_, err := NewScheduler(zerolog.Nop(), time.Second, Job{
		Name: "sweep",
		Spec: "every now and then",
		Run:  func(context.Context) (int64, error) { return 0, nil },
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "sweep")
}

func TestSchedulerRunJobLogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	s, err := NewScheduler(logger, time.Second)
	require.NoError(t, err)

	var deadline bool
	s.runJob(Job{Name: "reminder_sweep", Run: func(ctx context.Context) (int64, error) {
		_, deadline = ctx.Deadline()
		return 4, nil
	}})
	require.True(t, deadline)
	require.Contains(t, buf.String(), `"job":"reminder_sweep"`)
	require.Contains(t, buf.String(), `"affected":4`)

	buf.Reset()
	s.runJob(Job{Name: "idempotency_cleanup", Run: func(context.Context) (int64, error) {
		return 0, errors.New("db down")
	}})
	require.Contains(t, buf.String(), `"level":"error"`)
	require.Contains(t, buf.String(), "db down")
}

func TestSchedulerStartStop(t *testing.T) {
	ran := make(chan struct{}, 1)
	s, err := NewScheduler(zerolog.Nop(), time.Second, Job{
		Name: "tick",
		Spec: "@every 1s",
		Run: func(context.Context) (int64, error) {
			select {
			case ran <- struct{}{}:
			default:
			}
			return 0, nil
		},
	})
	require.NoError(t, err)

	s.Start()
	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
