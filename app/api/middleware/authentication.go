// Package middleware provides the authentication middleware for the HTTP API.
//
// Supported mechanisms:
// - JWT Bearer tokens (primary handler for user authentication)
// - API Key authentication (for internal service-to-service endpoints)
package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// Context keys
	contextUserID      = "user_id"
	contextUserUUID    = "user_uuid"
	contextEmail       = "email"
	contextUsername    = "username"
	contextNickname    = "nickname"
	contextPhoneNumber = "phone_number"
	contextAuthMethod  = "auth_method"
	contextServiceName = "service_name"

	// Authentication methods
	authMethodJWT    = "jwt"
	authMethodAPIKey = "api_key"

	// Token constants
	tokenParts     = 2
	authHeaderName = "Authorization"
	apiKeyHeader   = "X-API-Key"

	// Error messages
	errMsgAuthRequired        = "Authentication required"
	errMsgInvalidCredentials  = "Invalid credentials"
	errMsgHeaderMissing       = "Authorization header missing"
	errMsgInvalidHeaderFormat = "Invalid authorization header format"
	errMsgInvalidAPIKey       = "Invalid API key"
)

// AuthenticationResult represents the result of an authentication attempt
type AuthenticationResult struct {
	Success     bool
	UserID      *uuid.UUID
	Username    *string
	Nickname    *string
	Email       *string
	PhoneNumber *string
	Method      string
	ServiceName *string // for API key auth
}

type Authentication interface {
	// GetName returns the name of this authentication handler
	GetName() string
	// CanHandle returns true if this handler can handle the request
	CanHandle(ec echo.Context) bool
	// RequireAuth validates credentials for this handler
	RequireAuth() echo.MiddlewareFunc
	// Authenticate performs authentication and returns the result
	Authenticate(ec echo.Context) (*AuthenticationResult, error)
	// SetUserContext sets all user-related context values from the result
	SetUserContext(c echo.Context, result *AuthenticationResult)
	// CreateErrorResponse creates a standardized error response
	CreateErrorResponse(statusCode int, message string) *echo.HTTPError
}
