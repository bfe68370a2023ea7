package middleware

import (
	"backend/identity-platform/app/api/client/response"
	"backend/identity-platform/app/internal/runtime"
	"backend/identity-platform/app/pkg/jwt"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type JwtAuthentication struct {
	jwt jwt.Jwt
	res runtime.Resource
}

func NewJwtAuthentication(res runtime.Resource) JwtAuthentication {
	newJwt := jwt.NewJwt(res.Config.JwtConfig)
	return JwtAuthentication{
		jwt: newJwt,
		res: res,
	}
}

func (j JwtAuthentication) GetName() string {
	return authMethodJWT
}

func (j JwtAuthentication) CanHandle(ec echo.Context) bool {
	authHeader := ec.Request().Header.Get(authHeaderName)
	if authHeader == "" {
		return false
	}

	parts := strings.SplitN(authHeader, " ", tokenParts)
	if len(parts) != tokenParts {
		return false
	}

	return strings.EqualFold(parts[0], jwt.TokenTypeBearer)
}

func (j JwtAuthentication) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !j.CanHandle(c) {
				return j.CreateErrorResponse(http.StatusUnauthorized, errMsgAuthRequired)
			}

			result, err := j.Authenticate(c)
			if err != nil {
				j.res.Logger.Debug("JWT authentication failed",
					zap.String("handler", j.GetName()),
					zap.String("error", err.Error()))
				return j.CreateErrorResponse(http.StatusUnauthorized, errMsgInvalidCredentials)
			}

			if !result.Success {
				return j.CreateErrorResponse(http.StatusUnauthorized, errMsgInvalidCredentials)
			}

			j.SetUserContext(c, result)
			return next(c)
		}
	}
}

func (j JwtAuthentication) Authenticate(ec echo.Context) (*AuthenticationResult, error) {
	token, err := j.extractToken(ec)
	if err != nil {
		return nil, err
	}

	claims, err := j.jwt.ValidateToken(token)
	if err != nil {
		return nil, errors.New(errMsgInvalidCredentials)
	}

	// Refresh tokens never authenticate API requests.
	if claims.TokenType != jwt.TokenTypeAccess {
		return nil, errors.New(errMsgInvalidCredentials)
	}

	return &AuthenticationResult{
		Success:     true,
		UserID:      claims.UserID,
		Username:    claims.Username,
		Nickname:    claims.Nickname,
		Email:       claims.Email,
		PhoneNumber: claims.PhoneNumber,
		Method:      authMethodJWT,
	}, nil
}

func (j JwtAuthentication) SetUserContext(c echo.Context, result *AuthenticationResult) {
	if result.UserID != nil {
		c.Set(contextUserID, result.UserID.String())
		c.Set(contextUserUUID, *result.UserID)
	}
	if result.Username != nil {
		c.Set(contextUsername, *result.Username)
	}
	if result.Nickname != nil {
		c.Set(contextNickname, *result.Nickname)
	}
	if result.Email != nil {
		c.Set(contextEmail, *result.Email)
	}
	if result.PhoneNumber != nil {
		c.Set(contextPhoneNumber, *result.PhoneNumber)
	}

	c.Set(contextAuthMethod, result.Method)
	if result.ServiceName != nil {
		c.Set(contextServiceName, *result.ServiceName)
	}
}

func (j JwtAuthentication) CreateErrorResponse(statusCode int, message string) *echo.HTTPError {
	return echo.NewHTTPError(statusCode, response.ToErrorResponse(statusCode, message))
}

func (j *JwtAuthentication) extractToken(ec echo.Context) (string, error) {
	authHeader := ec.Request().Header.Get(authHeaderName)
	if authHeader == "" {
		return "", errors.New(errMsgHeaderMissing)
	}

	parts := strings.SplitN(authHeader, " ", tokenParts)
	if len(parts) != tokenParts {
		return "", errors.New(errMsgInvalidHeaderFormat)
	}

	if !strings.EqualFold(parts[0], jwt.TokenTypeBearer) {
		return "", errors.New(errMsgInvalidHeaderFormat)
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New(errMsgInvalidHeaderFormat)
	}

	return token, nil
}
