package controller

import (
	"net/http"

	"backend/identity-platform/app/api/client/request"
	"backend/identity-platform/app/api/client/response"
	"backend/identity-platform/app/internal/runtime"
	"backend/identity-platform/app/manager"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type UserController struct {
	res      runtime.Resource
	managers *manager.Managers
}

func NewUserController(managers *manager.Managers, res runtime.Resource) *UserController {
	return &UserController{
		res:      res,
		managers: managers,
	}
}

// currentUserID reads the authenticated user's id set by the JWT middleware.
func currentUserID(ec echo.Context) (uuid.UUID, error) {
	id, ok := ec.Get("user_uuid").(uuid.UUID)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized,
			response.ToErrorResponse(http.StatusUnauthorized, "Authentication required"))
	}
	return id, nil
}

// Me godoc
//
//	@Summary		Get current user
//	@Description	Return the authenticated user with profile
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	response.UserResponse
//	@Failure		401
//	@Router			/api/v1/users/me [get]
func (c *UserController) Me(ec echo.Context) error {
	id, err := currentUserID(ec)
	if err != nil {
		return err
	}
	resp, err := c.managers.UserManager.GetUser(ec.Request().Context(), id)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(resp))
}

// UpdateMe godoc
//
//	@Summary		Update current user
//	@Description	Partially update the authenticated user's base fields
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.UpdateUserRequest	true	"Fields to update"
//	@Success		200		{object}	response.UserResponse
//	@Failure		400
//	@Failure		401
//	@Router			/api/v1/users/me [put]
func (c *UserController) UpdateMe(ec echo.Context) error {
	id, err := currentUserID(ec)
	if err != nil {
		return err
	}

	var req request.UpdateUserRequest
	if err := ec.Bind(&req); err != nil {
		return ec.JSON(http.StatusBadRequest, response.ToErrorResponse(http.StatusBadRequest, "Invalid request format"))
	}
	if err := ec.Validate(&req); err != nil {
		return err
	}

	resp, err := c.managers.UserManager.UpdateInfo(ec.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(resp))
}

// ChangePassword godoc
//
//	@Summary		Change password
//	@Description	Replace the current password after checking the old one
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body	request.ChangePasswordRequest	true	"Passwords"
//	@Success		200
//	@Failure		400
//	@Failure		401
//	@Router			/api/v1/users/me/password [post]
func (c *UserController) ChangePassword(ec echo.Context) error {
	id, err := currentUserID(ec)
	if err != nil {
		return err
	}

	var req request.ChangePasswordRequest
	if err := ec.Bind(&req); err != nil {
		return ec.JSON(http.StatusBadRequest, response.ToErrorResponse(http.StatusBadRequest, "Invalid request format"))
	}
	if err := ec.Validate(&req); err != nil {
		return err
	}

	if err := c.managers.UserManager.ChangePassword(ec.Request().Context(), id, req, ec.RealIP()); err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse("Password changed successfully"))
}

// GetProfile godoc
//
//	@Summary		Get profile
//	@Description	Return the authenticated user's extended profile
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	response.ProfileResponse
//	@Failure		401
//	@Router			/api/v1/users/me/profile [get]
func (c *UserController) GetProfile(ec echo.Context) error {
	id, err := currentUserID(ec)
	if err != nil {
		return err
	}
	resp, err := c.managers.UserManager.GetProfile(ec.Request().Context(), id)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(resp))
}

// UpdateProfile godoc
//
//	@Summary		Update profile
//	@Description	Partially update the authenticated user's extended profile
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.UpdateProfileRequest	true	"Fields to update"
//	@Success		200		{object}	response.ProfileResponse
//	@Failure		400
//	@Failure		401
//	@Router			/api/v1/users/me/profile [put]
func (c *UserController) UpdateProfile(ec echo.Context) error {
	id, err := currentUserID(ec)
	if err != nil {
		return err
	}

	var req request.UpdateProfileRequest
	if err := ec.Bind(&req); err != nil {
		return ec.JSON(http.StatusBadRequest, response.ToErrorResponse(http.StatusBadRequest, "Invalid request format"))
	}
	if err := ec.Validate(&req); err != nil {
		return err
	}

	resp, err := c.managers.UserManager.UpdateProfile(ec.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(resp))
}

// SendVerificationCode godoc
//
//	@Summary		Send verification code
//	@Description	Rate-limited dispatch of a verification code over sms or email
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body	request.SendVerificationCodeRequest	false	"Delivery channel"
//	@Success		200
//	@Failure		400
//	@Failure		429
//	@Router			/api/v1/users/me/verify-code [post]
func (c *UserController) SendVerificationCode(ec echo.Context) error {
	id, err := currentUserID(ec)
	if err != nil {
		return err
	}

	var req request.SendVerificationCodeRequest
	if err := ec.Bind(&req); err != nil {
		return ec.JSON(http.StatusBadRequest, response.ToErrorResponse(http.StatusBadRequest, "Invalid request format"))
	}
	if err := ec.Validate(&req); err != nil {
		return err
	}

	if err := c.managers.UserManager.SendVerificationCode(ec.Request().Context(), id, req.Channel); err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse("Verification code sent"))
}

// VerifyPhone godoc
//
//	@Summary		Verify phone number
//	@Description	Confirm the verification code sent to the user's phone
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body	request.VerifyPhoneRequest	true	"Verification code"
//	@Success		200
//	@Failure		400
//	@Failure		429
//	@Router			/api/v1/users/me/verify-phone [post]
func (c *UserController) VerifyPhone(ec echo.Context) error {
	id, err := currentUserID(ec)
	if err != nil {
		return err
	}

	var req request.VerifyPhoneRequest
	if err := ec.Bind(&req); err != nil {
		return ec.JSON(http.StatusBadRequest, response.ToErrorResponse(http.StatusBadRequest, "Invalid request format"))
	}
	if err := ec.Validate(&req); err != nil {
		return err
	}

	if err := c.managers.UserManager.VerifyPhone(ec.Request().Context(), id, req.Code); err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse("Phone number verified"))
}
