package controller_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/identity-platform/app/api/client/request"
	"backend/identity-platform/app/api/client/response"
	"backend/identity-platform/app/api/controller"
	"backend/identity-platform/app/internal/runtime"
	"backend/identity-platform/app/manager"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubAuthManager serves VerifyAccessToken from canned data and counts calls.
type stubAuthManager struct {
	verifyResp  *response.VerifyTokenResponse
	verifyErr   error
	verifyCalls int
}

func (s *stubAuthManager) Register(context.Context, request.RegisterRequest, string) (*response.RegisterResponse, error) {
	return nil, nil
}

func (s *stubAuthManager) Login(context.Context, request.LoginRequest, string) (*response.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthManager) ObtainTokenPair(context.Context, request.TokenRequest, string) (*response.TokenPairResponse, error) {
	return nil, nil
}

func (s *stubAuthManager) RefreshToken(context.Context, string) (*response.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthManager) VerifyAccessToken(context.Context, string) (*response.VerifyTokenResponse, error) {
	s.verifyCalls++
	return s.verifyResp, s.verifyErr
}

func (s *stubAuthManager) Logout(context.Context, string) error { return nil }

func verifyTokenRequest(t *testing.T, stub *stubAuthManager, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	res := runtime.Resource{Logger: zap.NewNop()}
	ac := controller.NewAuthController(&manager.Managers{AuthManager: stub}, res)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, ac.VerifyToken(e.NewContext(req, rec)))
	return rec
}

func TestVerifyTokenWithBearerToken(t *testing.T) {
	stub := &stubAuthManager{verifyResp: &response.VerifyTokenResponse{Valid: true}}

	rec := verifyTokenRequest(t, stub, "Bearer some-access-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stub.verifyCalls)
}

func TestVerifyTokenAcceptsLowercaseScheme(t *testing.T) {
	stub := &stubAuthManager{verifyResp: &response.VerifyTokenResponse{Valid: true}}

	rec := verifyTokenRequest(t, stub, "bearer some-access-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stub.verifyCalls)
}

func TestVerifyTokenRejectsOtherSchemes(t *testing.T) {
	stub := &stubAuthManager{verifyResp: &response.VerifyTokenResponse{Valid: true}}

	rec := verifyTokenRequest(t, stub, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, stub.verifyCalls)
}

func TestVerifyTokenMissingHeader(t *testing.T) {
	stub := &stubAuthManager{}

	rec := verifyTokenRequest(t, stub, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, stub.verifyCalls)
}
