package config

// AdminConfig holds API keys granted to internal service callers of the
// admin endpoints. Keys map to a caller name used for audit logging.
type AdminConfig struct {
	ApiKeys map[string]string `mapstructure:"api_keys"`
}
