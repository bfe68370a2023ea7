package config

import sqsPkg "backend/identity-platform/app/pkg/sqs"

type AwsConfig struct {
	Region   string    `mapstructure:"region"`
	Endpoint string    `mapstructure:"endpoint"`
	Sqs      SQSConfig `mapstructure:"sqs"`
}

// ToSQSPackageConfig converts the application AWS configuration into the sqs
// package's own config type.
func (a AwsConfig) ToSQSPackageConfig() sqsPkg.Config {
	return sqsPkg.Config{
		Region:   a.Region,
		Endpoint: a.Endpoint,
		QueueURLs: sqsPkg.QueueURLs{
			SqsAuditEventQueue: a.Sqs.QueueURLs.SqsAuditEventQueue,
		},
		Message: sqsPkg.MessageConfig{
			MaxRetries:     a.Sqs.Message.MaxRetries,
			BaseRetryDelay: a.Sqs.Message.BaseRetryDelay,
			MaxRetryDelay:  a.Sqs.Message.MaxRetryDelay,
		},
	}
}
