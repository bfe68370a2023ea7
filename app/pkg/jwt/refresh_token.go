package jwt

import "time"

type AccessToken struct {
	Token     string
	ExpiredAt time.Time
}

type RefreshToken struct {
	Token       string
	TokenBase64 string
	ExpiredAt   time.Time
}
