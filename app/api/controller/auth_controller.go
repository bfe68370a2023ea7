package controller

import (
	"net/http"
	"strings"

	"backend/identity-platform/app/api/client/request"
	"backend/identity-platform/app/api/client/response"
	"backend/identity-platform/app/internal/runtime"
	"backend/identity-platform/app/manager"
	cookieUtil "backend/identity-platform/app/pkg/util/cookie"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthController struct {
	res      runtime.Resource
	managers *manager.Managers
}

func NewAuthController(managers *manager.Managers, res runtime.Resource) *AuthController {
	return &AuthController{
		res:      res,
		managers: managers,
	}
}

// Register godoc
//
//	@Summary		Register user
//	@Description	Create a new account with username, password and phone number
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.RegisterRequest	true	"Registration"
//	@Success		201		{object}	response.RegisterResponse
//	@Failure		400
//	@Failure		500
//	@Router			/api/v1/auth/register [post]
func (c *AuthController) Register(ec echo.Context) error {
	ctx := ec.Request().Context()
	var req request.RegisterRequest
	if err := ec.Bind(&req); err != nil {
		return ec.JSON(http.StatusBadRequest, response.ToErrorResponse(http.StatusBadRequest, "Invalid request format"))
	}
	if err := ec.Validate(&req); err != nil {
		return err
	}

	resp, err := c.managers.AuthManager.Register(ctx, req, ec.RealIP())
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusCreated, response.ToSuccessResponse(resp))
}

// Login godoc
//
//	@Summary		User login
//	@Description	Authenticate with username or phone number plus password
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.LoginRequest	true	"Login credentials"
//	@Success		200		{object}	response.AuthResponse
//	@Failure		400
//	@Failure		401
//	@Failure		500
//	@Router			/api/v1/auth/login [post]
func (c *AuthController) Login(ec echo.Context) error {
	ctx := ec.Request().Context()
	var req request.LoginRequest
	if err := ec.Bind(&req); err != nil {
		c.res.Logger.Error("Failed to bind request", zap.Error(err))
		return ec.JSON(http.StatusBadRequest, response.ToErrorResponse(http.StatusBadRequest, "Invalid request format"))
	}
	if err := ec.Validate(&req); err != nil {
		return err
	}

	resp, err := c.managers.AuthManager.Login(ctx, req, ec.RealIP())
	if err != nil {
		return err
	}

	ec.SetCookie(cookieUtil.NewRefreshTokenCookie(ec.Request(), resp.RefreshToken, c.res.Config.JwtConfig.RefreshExpiration))
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(resp))
}

// ObtainTokenPair godoc
//
//	@Summary		Obtain token pair
//	@Description	Authenticate and return tokens with flattened claims
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.TokenRequest	true	"Credentials"
//	@Success		200		{object}	response.TokenPairResponse
//	@Failure		400
//	@Failure		401
//	@Router			/api/v1/auth/token [post]
func (c *AuthController) ObtainTokenPair(ec echo.Context) error {
	ctx := ec.Request().Context()
	var req request.TokenRequest
	if err := ec.Bind(&req); err != nil {
		return ec.JSON(http.StatusBadRequest, response.ToErrorResponse(http.StatusBadRequest, "Invalid request format"))
	}
	if err := ec.Validate(&req); err != nil {
		return err
	}

	resp, err := c.managers.AuthManager.ObtainTokenPair(ctx, req, ec.RealIP())
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(resp))
}

// RefreshToken godoc
//
//	@Summary		Refresh access token
//	@Description	Get a new access token using the refresh token from the body or cookie
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.RefreshTokenRequest	false	"Refresh token"
//	@Success		200		{object}	response.AuthResponse
//	@Failure		401
//	@Router			/api/v1/auth/refresh [post]
func (c *AuthController) RefreshToken(ec echo.Context) error {
	var req request.RefreshTokenRequest
	if err := ec.Bind(&req); err != nil {
		return ec.JSON(http.StatusBadRequest, response.ToErrorResponse(http.StatusBadRequest, "Invalid request format"))
	}
	token := req.RefreshToken
	if token == "" {
		if rtCookie, err := ec.Cookie("refresh_token"); err == nil && rtCookie != nil {
			token = rtCookie.Value
		}
	}
	if token == "" {
		return ec.JSON(http.StatusUnauthorized, response.ToErrorResponse(http.StatusUnauthorized, "Missing refresh token"))
	}

	resp, err := c.managers.AuthManager.RefreshToken(ec.Request().Context(), token)
	if err != nil {
		return err
	}

	if resp.RefreshToken != "" {
		ec.SetCookie(cookieUtil.NewRefreshTokenCookie(ec.Request(), resp.RefreshToken, c.res.Config.JwtConfig.RefreshExpiration))
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(resp))
}

// VerifyToken godoc
//
//	@Summary		Verify access token
//	@Description	Check the Bearer token and return the identity it carries
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	response.VerifyTokenResponse
//	@Failure		401
//	@Router			/api/v1/auth/verify [get]
func (c *AuthController) VerifyToken(ec echo.Context) error {
	authHeader := ec.Request().Header.Get("Authorization")
	const prefix = "Bearer "
	if len(authHeader) <= len(prefix) || !strings.EqualFold(authHeader[:len(prefix)], prefix) {
		return ec.JSON(http.StatusUnauthorized, response.VerifyTokenResponse{Valid: false})
	}

	resp, err := c.managers.AuthManager.VerifyAccessToken(ec.Request().Context(), authHeader[len(prefix):])
	if err != nil {
		return ec.JSON(http.StatusUnauthorized, response.VerifyTokenResponse{Valid: false})
	}
	return ec.JSON(http.StatusOK, resp)
}

// Logout godoc
//
//	@Summary		User logout
//	@Description	Revoke the refresh token's session when one is presented
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	request.LogoutRequest	false	"Logout request"
//	@Success		200
//	@Router			/api/v1/auth/logout [post]
func (c *AuthController) Logout(ec echo.Context) error {
	var req request.LogoutRequest
	if err := ec.Bind(&req); err != nil {
		return ec.JSON(http.StatusBadRequest, response.ToErrorResponse(http.StatusBadRequest, "Invalid request format"))
	}
	token := req.RefreshToken
	if token == "" {
		if rtCookie, err := ec.Cookie("refresh_token"); err == nil && rtCookie != nil {
			token = rtCookie.Value
		}
	}

	if err := c.managers.AuthManager.Logout(ec.Request().Context(), token); err != nil {
		c.res.Logger.Error("Logout failed", zap.Error(err))
		return ec.JSON(http.StatusInternalServerError, response.ToErrorResponse(http.StatusInternalServerError, "Internal server error"))
	}

	ec.SetCookie(cookieUtil.ExpireCookie("refresh_token"))
	return ec.JSON(http.StatusOK, response.ToSuccessResponse("Logged out successfully"))
}
