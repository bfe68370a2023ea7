package config

import "time"

// SmsConfig configures the outbound SMS gateway used for verification codes.
type SmsConfig struct {
	BaseAPI string        `mapstructure:"base_api"`
	ApiKey  string        `mapstructure:"api_key"`
	Sender  string        `mapstructure:"sender"`
	Timeout time.Duration `mapstructure:"timeout"`
	UseMock bool          `mapstructure:"use_mock"`
}
