package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/tour-backoffice/internal/config"
	"github.com/spec-kit/tour-backoffice/internal/events"
)

// NotificationService forwards domain events to the operator log and an
// optional webhook endpoint. Delivery is best effort; failures are logged
// and never fail the originating request.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
	client     *resty.Client
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	timeout := time.Duration(cfg.WebhookTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		client:     resty.New().SetTimeout(timeout),
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketSold, n.handleEvent)
	n.dispatcher.Subscribe(events.EventTicketUsed, n.handleEvent)
	n.dispatcher.Subscribe(events.EventTicketCancelled, n.handleEvent)
	n.dispatcher.Subscribe(events.EventRangeAssigned, n.handleEvent)
	n.dispatcher.Subscribe(events.EventBalanceAdjusted, n.handleEvent)
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("domain event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	n.sendWebhook(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhook(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post(n.cfg.WebhookURL)
	if err != nil {
		n.logger.Warn("webhook delivery failed", zap.String("event_id", event.ID), zap.Error(err))
		return
	}
	if resp.IsError() {
		n.logger.Warn("webhook rejected",
			zap.String("event_id", event.ID),
			zap.Int("status", resp.StatusCode()))
	}
}
