package controller

import (
	"net/http"

	"backend/identity-platform/app/api/client/request"
	"backend/identity-platform/app/api/client/response"
	"backend/identity-platform/app/internal/runtime"
	"backend/identity-platform/app/manager"

	"github.com/labstack/echo/v4"
)

type AdminController struct {
	res      runtime.Resource
	managers *manager.Managers
}

func NewAdminController(managers *manager.Managers, res runtime.Resource) *AdminController {
	return &AdminController{
		res:      res,
		managers: managers,
	}
}

// GetStatistics godoc
//
//	@Summary		Platform statistics
//	@Description	Aggregate user counts for operational dashboards
//	@Tags			admin
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200	{object}	response.StatisticsResponse
//	@Failure		401
//	@Router			/api/v1/admin/statistics [get]
func (c *AdminController) GetStatistics(ec echo.Context) error {
	resp, err := c.managers.UserManager.GetStatistics(ec.Request().Context())
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(resp))
}

// SearchUsers godoc
//
//	@Summary		Search users
//	@Description	Paginated user listing with optional status and gender filters
//	@Tags			admin
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			page	query		int		false	"Page number"
//	@Param			size	query		int		false	"Page size"
//	@Param			status	query		string	false	"User status filter"
//	@Param			gender	query		string	false	"Gender filter"
//	@Success		200		{object}	response.PaginationResponse[response.UserResponse]
//	@Failure		401
//	@Router			/api/v1/admin/users [get]
func (c *AdminController) SearchUsers(ec echo.Context) error {
	var req request.SearchUsersRequest
	if err := ec.Bind(&req); err != nil {
		return ec.JSON(http.StatusBadRequest, response.ToErrorResponse(http.StatusBadRequest, "Invalid request format"))
	}
	if err := ec.Validate(&req); err != nil {
		return err
	}

	users, total, err := c.managers.UserManager.SearchUsers(ec.Request().Context(), req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToPaginationResponse(users, int64(total), req.Page, req.Size))
}
