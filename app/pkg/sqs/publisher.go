package sqs

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Publisher sends audit events to the configured SQS queue. Publishing is
// best effort from the caller's point of view; failures are logged and
// returned but must not abort the user-facing operation.
type Publisher interface {
	Publish(ctx context.Context, eventType EventType, payload AuditPayload) error
}

type DefaultPublisher struct {
	client *Client
	config Config
	logger *zap.Logger
}

func NewPublisher(ctx context.Context, config Config, logger *zap.Logger) (Publisher, error) {
	client, err := NewClient(ctx, config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS client: %w", err)
	}
	return NewPublisherWithClient(client, logger), nil
}

// NewPublisherWithClient reuses an already constructed client. A nil client
// yields a NopPublisher so callers need no special casing.
func NewPublisherWithClient(client *Client, logger *zap.Logger) Publisher {
	if client == nil {
		return NopPublisher{}
	}
	return &DefaultPublisher{
		client: client,
		config: client.config,
		logger: logger.With(zap.String("component", "audit_publisher")),
	}
}

func (p *DefaultPublisher) Publish(ctx context.Context, eventType EventType, payload AuditPayload) error {
	queueURL := p.config.QueueURLs.SqsAuditEventQueue
	if queueURL == "" {
		return fmt.Errorf("no audit event queue URL configured")
	}
	if !eventType.IsValid() {
		return fmt.Errorf("unknown audit event type %q", eventType)
	}

	body, err := json.Marshal(SqsMessage{
		Type:    eventType.String(),
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	attributes := map[string]string{
		"EventType": eventType.String(),
		"UserID":    payload.UserID,
	}

	_, err = p.client.SendMessage(ctx, queueURL, string(body), attributes)
	if err != nil {
		p.logger.Error("Failed to publish audit event",
			zap.String("event_type", eventType.String()),
			zap.String("user_id", payload.UserID),
			zap.Error(err))
		return fmt.Errorf("failed to publish audit event: %w", err)
	}

	p.logger.Debug("Audit event published",
		zap.String("event_type", eventType.String()),
		zap.String("user_id", payload.UserID))

	return nil
}

// NopPublisher drops events. Used when no queue is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, EventType, AuditPayload) error {
	return nil
}
