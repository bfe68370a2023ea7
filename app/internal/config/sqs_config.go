package config

import (
	"time"
)

// SQSConfig represents SQS configuration for the application
type SQSConfig struct {
	QueueURLs SQSQueueURLs `mapstructure:"queue_urls"`

	Message SQSMessageConfig `mapstructure:"message"`
}

// SQSQueueURLs defines the SQS queue URLs for business features
type SQSQueueURLs struct {
	SqsAuditEventQueue string `mapstructure:"sqs_audit_event_queue"`
}

// SQSMessageConfig defines message handling configuration
type SQSMessageConfig struct {
	// Maximum retry attempts
	MaxRetries int `mapstructure:"max_retries"`

	// Base delay for exponential backoff
	BaseRetryDelay time.Duration `mapstructure:"base_retry_delay"`

	// Maximum delay between retries
	MaxRetryDelay time.Duration `mapstructure:"max_retry_delay"`
}
