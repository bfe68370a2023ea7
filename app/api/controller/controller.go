package controller

import (
	"backend/identity-platform/app/internal/runtime"
	"backend/identity-platform/app/manager"
)

type Controllers struct {
	AuthController   *AuthController
	UserController   *UserController
	AdminController  *AdminController
	HealthController *HealthController
}

func NewControllers(managers *manager.Managers, res runtime.Resource) *Controllers {
	return &Controllers{
		AuthController:   NewAuthController(managers, res),
		UserController:   NewUserController(managers, res),
		AdminController:  NewAdminController(managers, res),
		HealthController: NewHealthController(managers, res),
	}
}
