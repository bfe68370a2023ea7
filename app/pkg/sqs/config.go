package sqs

import "time"

// Config holds SQS configuration
type Config struct {
	// AWS Region
	Region string `yaml:"region" mapstructure:"region"`

	// AWS Endpoint (for LocalStack or custom endpoints)
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Queue URLs for business features
	QueueURLs QueueURLs `yaml:"queue_urls" mapstructure:"queue_urls"`

	// Message configuration
	Message MessageConfig `yaml:"message" mapstructure:"message"`
}

// QueueURLs defines the SQS queue URLs for business features
type QueueURLs struct {
	SqsAuditEventQueue string `mapstructure:"sqs_audit_event_queue"`
}

// MessageConfig defines message handling configuration
type MessageConfig struct {
	// Maximum retry attempts
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`

	// Base delay for exponential backoff
	BaseRetryDelay time.Duration `yaml:"base_retry_delay" mapstructure:"base_retry_delay"`

	// Maximum delay between retries
	MaxRetryDelay time.Duration `yaml:"max_retry_delay" mapstructure:"max_retry_delay"`
}

// DefaultConfig returns a default SQS configuration
func DefaultConfig() Config {
	return Config{
		Region: "us-east-1",
		QueueURLs: QueueURLs{
			SqsAuditEventQueue: "",
		},
		Message: MessageConfig{
			MaxRetries:     3,
			BaseRetryDelay: 30 * time.Second,
			MaxRetryDelay:  15 * time.Minute,
		},
	}
}
