package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-scheduler/internal/config"
	"github.com/spec-kit/shift-scheduler/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events and returns the subscribed types.
func (n *NotificationService) RegisterHandlers() []events.EventType {
	if n.dispatcher == nil {
		return nil
	}
	handlers := []struct {
		eventType events.EventType
		handler   events.EventHandler
	}{
		{events.EventEngineerSaved, n.handleRosterChanged},
		{events.EventEngineerDeleted, n.handleRosterChanged},
		{events.EventScheduleSaved, n.handleScheduleSaved},
		{events.EventAutoAssignCompleted, n.handleAutoAssignCompleted},
		{events.EventPatternApplied, n.handlePatternApplied},
		{events.EventExportGenerated, n.handleExportGenerated},
	}
	subscribed := make([]events.EventType, 0, len(handlers))
	for _, h := range handlers {
		n.dispatcher.Subscribe(h.eventType, h.handler)
		subscribed = append(subscribed, h.eventType)
	}
	return subscribed
}

func (n *NotificationService) handleRosterChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("RosterChanged", zap.String("event_type", string(event.Type)), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleScheduleSaved(ctx context.Context, event events.Event) error {
	n.logger.Info("ScheduleSaved", zap.String("period", event.Period), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAutoAssignCompleted(ctx context.Context, event events.Event) error {
	n.logger.Info("AutoAssignCompleted", zap.String("period", event.Period), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePatternApplied(ctx context.Context, event events.Event) error {
	n.logger.Info("PatternApplied", zap.String("period", event.Period), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleExportGenerated(ctx context.Context, event events.Event) error {
	n.logger.Info("ExportGenerated", zap.String("period", event.Period), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("period", event.Period),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("period", event.Period),
		zap.String("event_type", string(event.Type)))
}
