package config

import "time"

type JwtConfig struct {
	Issuer            string        `mapstructure:"issuer"`
	SecretKey         string        `mapstructure:"secret_key"`
	AccessExpiration  time.Duration `mapstructure:"access_expiration"`
	RefreshExpiration time.Duration `mapstructure:"refresh_expiration"`
	// RotateRefresh re-issues the refresh token on every successful refresh
	// and revokes the old session.
	RotateRefresh bool `mapstructure:"rotate_refresh"`
}
