package config

import "time"

// VerificationConfig controls verification code issuance and throttling.
type VerificationConfig struct {
	CodeLength    int           `mapstructure:"code_length"`
	CodeTTL       time.Duration `mapstructure:"code_ttl"`
	SendPerMinute int           `mapstructure:"send_per_minute"`
	MaxAttempts   int           `mapstructure:"max_attempts"`
}
