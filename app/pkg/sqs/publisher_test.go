package sqs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEventType_IsValid(t *testing.T) {
	for _, eventType := range GetAllEventTypes() {
		assert.True(t, eventType.IsValid(), eventType.String())
	}
	assert.False(t, EventType("bogus").IsValid())
	assert.False(t, EventType("").IsValid())
}

func TestPublish_NoQueueConfigured(t *testing.T) {
	publisher, err := NewPublisher(context.Background(), DefaultConfig(), zap.NewNop())
	require.NoError(t, err)

	err = publisher.Publish(context.Background(), UserLogin, AuditPayload{
		UserID:     "u-1",
		OccurredAt: time.Now(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no audit event queue URL")
}

func TestPublish_UnknownEventType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QueueURLs.SqsAuditEventQueue = "https://sqs.us-east-1.amazonaws.com/123456789012/audit"

	publisher, err := NewPublisher(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	err = publisher.Publish(context.Background(), EventType("bogus"), AuditPayload{UserID: "u-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown audit event type")
}

func TestNopPublisher(t *testing.T) {
	var publisher Publisher = NopPublisher{}
	assert.NoError(t, publisher.Publish(context.Background(), UserLogin, AuditPayload{}))
}
