package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/shift-scheduler/internal/config"
	"github.com/spec-kit/shift-scheduler/internal/events"
	"github.com/spec-kit/shift-scheduler/internal/service"
)

func TestStartNotificationWorkerHandlesSchedulerEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	dispatcher := events.NewInMemoryDispatcher()

	subscribed := StartNotificationWorker(service.NewNotificationService(dispatcher, logger, config.NotificationConfig{}), logger)
	require.Len(t, subscribed, 6)
	assert.Equal(t, 1, logs.FilterMessage("notification worker started").Len())

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventScheduleSaved,
		Period:  "2024-2",
		Payload: events.ScheduleSavedPayload{FilledCells: 3},
	}))
	saved := logs.FilterMessage("ScheduleSaved").All()
	require.Len(t, saved, 1)
	assert.Equal(t, "2024-2", saved[0].ContextMap()["period"])
}

func TestStartNotificationWorkerWithoutService(t *testing.T) {
	assert.Nil(t, StartNotificationWorker(nil, nil))
}
