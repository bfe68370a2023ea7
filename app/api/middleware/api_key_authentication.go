package middleware

import (
	"backend/identity-platform/app/api/client/response"
	"backend/identity-platform/app/internal/runtime"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ApiKeyAuthentication guards internal service endpoints. Keys map to the
// calling service's name and come from the admin.api_keys configuration.
type ApiKeyAuthentication struct {
	res          runtime.Resource
	validAPIKeys map[string]string // key -> service name
}

func NewApiKeyAuthentication(res runtime.Resource) ApiKeyAuthentication {
	return ApiKeyAuthentication{
		res:          res,
		validAPIKeys: res.Config.AdminConfig.ApiKeys,
	}
}

func (ak *ApiKeyAuthentication) GetName() string {
	return authMethodAPIKey
}

func (ak *ApiKeyAuthentication) CanHandle(c echo.Context) bool {
	apiKey := c.Request().Header.Get(apiKeyHeader)
	return apiKey != ""
}

func (ak *ApiKeyAuthentication) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !ak.CanHandle(c) {
				return ak.CreateErrorResponse(http.StatusUnauthorized, errMsgAuthRequired)
			}

			result, err := ak.Authenticate(c)
			if err != nil {
				ak.res.Logger.Debug("API key authentication failed",
					zap.String("handler", ak.GetName()),
					zap.String("error", err.Error()))
				return ak.CreateErrorResponse(http.StatusUnauthorized, errMsgInvalidAPIKey)
			}

			if !result.Success {
				return ak.CreateErrorResponse(http.StatusUnauthorized, errMsgInvalidAPIKey)
			}

			ak.SetUserContext(c, result)
			return next(c)
		}
	}
}

func (ak *ApiKeyAuthentication) Authenticate(c echo.Context) (*AuthenticationResult, error) {
	apiKey := c.Request().Header.Get(apiKeyHeader)
	if apiKey == "" {
		return nil, errors.New(errMsgInvalidAPIKey)
	}

	serviceName, exists := ak.validAPIKeys[apiKey]
	if !exists {
		return nil, errors.New(errMsgInvalidAPIKey)
	}

	return &AuthenticationResult{
		Success:     true,
		Method:      authMethodAPIKey,
		ServiceName: &serviceName,
	}, nil
}

func (ak *ApiKeyAuthentication) SetUserContext(c echo.Context, result *AuthenticationResult) {
	c.Set(contextAuthMethod, result.Method)
	if result.ServiceName != nil {
		c.Set(contextServiceName, *result.ServiceName)
	}
}

func (ak *ApiKeyAuthentication) CreateErrorResponse(statusCode int, message string) *echo.HTTPError {
	return echo.NewHTTPError(statusCode, response.ToErrorResponse(statusCode, message))
}

// IsServiceAccount reports whether the current request authenticated with an
// API key.
func (ak *ApiKeyAuthentication) IsServiceAccount(c echo.Context) bool {
	method, ok := c.Get(contextAuthMethod).(string)
	return ok && method == authMethodAPIKey
}
