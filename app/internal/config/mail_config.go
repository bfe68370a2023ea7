package config

import "time"

// MailConfig configures the transactional email provider used for
// verification codes.
type MailConfig struct {
	BaseAPI string        `mapstructure:"base_api"`
	ApiKey  string        `mapstructure:"api_key"`
	Sender  string        `mapstructure:"sender"`
	Timeout time.Duration `mapstructure:"timeout"`
	UseMock bool          `mapstructure:"use_mock"`
}
