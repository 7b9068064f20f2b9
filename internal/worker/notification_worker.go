// Package worker starts background consumers of scheduler events.
package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/shift-scheduler/internal/events"
	"github.com/spec-kit/shift-scheduler/internal/service"
)

// StartNotificationWorker subscribes the notification handlers to roster,
// schedule, assignment, pattern, and export events. It returns the event
// types now being handled.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) []events.EventType {
	if notificationService == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	subscribed := notificationService.RegisterHandlers()
	names := make([]string, 0, len(subscribed))
	for _, et := range subscribed {
		names = append(names, string(et))
	}
	logger.Info("notification worker started", zap.Strings("events", names))
	return subscribed
}
