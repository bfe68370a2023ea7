package middleware

import (
	"backend/identity-platform/app/internal/runtime"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	JwtAuthentication    JwtAuthentication
	ApiKeyAuthentication ApiKeyAuthentication
}

func NewMiddleware(res runtime.Resource) *Middleware {
	return &Middleware{
		JwtAuthentication:    NewJwtAuthentication(res),
		ApiKeyAuthentication: NewApiKeyAuthentication(res),
	}
}

func (m *Middleware) RequireAuth() echo.MiddlewareFunc {
	return m.JwtAuthentication.RequireAuth()
}

func (m *Middleware) RequireApiKey() echo.MiddlewareFunc {
	return m.ApiKeyAuthentication.RequireAuth()
}
