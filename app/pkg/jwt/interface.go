package jwt

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	// TokenTypeBearer is the scheme reported to clients.
	TokenTypeBearer = "Bearer"
)

// Subject is the identity snapshot embedded into issued tokens.
type Subject struct {
	UserID      uuid.UUID
	Username    string
	Nickname    string
	Email       *string
	PhoneNumber *string
}

type Claims struct {
	UserID             *uuid.UUID `json:"user_id,omitempty"`
	Username           *string    `json:"username,omitempty"`
	Nickname           *string    `json:"nickname,omitempty"`
	Email              *string    `json:"email,omitempty"`
	PhoneNumber        *string    `json:"phone_number,omitempty"`
	TokenType          string     `json:"token_type"`
	RefreshTokenBase64 *string    `json:"refresh_token,omitempty"`
	jwt.RegisteredClaims
}

type Jwt interface {
	GetExpirationTime() int64
	ParseToken(token string) (*jwt.Token, error)
	ValidateToken(token string) (*Claims, error)
	GenerateAccessToken(subject Subject) (*AccessToken, error)
	GenerateRefreshToken(subject Subject) (*RefreshToken, error)
	SignClaims(claims *Claims) (string, error)
	GetClaims(c echo.Context) (*Claims, error)
}
