package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"backend/identity-platform/app/api/controller"
	"backend/identity-platform/app/api/middleware"
	"backend/identity-platform/app/database/repository"
	"backend/identity-platform/app/internal/runtime"
	"backend/identity-platform/app/internal/validator"
	ctxutil "backend/identity-platform/app/pkg/util/context"
	echoUtil "backend/identity-platform/app/pkg/util/echo"
	_ "backend/identity-platform/docs"
)

const (
	// Base paths
	apiV1BasePath = "/api/v1"
	swaggerPath   = "/swagger/*"
	healthPath    = "/health"

	// Route prefixes
	authPrefix  = "/auth"
	usersPrefix = "/users"
	adminPrefix = "/admin"
)

type Router struct {
	*echo.Echo
	res          runtime.Resource
	vals         *validator.Validators
	middleware   *middleware.Middleware
	controllers  *controller.Controllers
	repositories *repository.Repositories
}

// NewRouter @title Identity Platform
// @description This is API documentation of Identity Platform
// @version 1.0
// @host localhost:8081
// @BasePath /api/v1
func NewRouter(
	res runtime.Resource,
	vals *validator.Validators,
	middleware *middleware.Middleware,
	controllers *controller.Controllers,
	repositories *repository.Repositories,
) *Router {
	if controllers == nil {
		panic("controllers cannot be nil")
	}
	if vals == nil {
		panic("validators cannot be nil")
	}

	r := &Router{
		Echo:         echo.New(),
		res:          res,
		vals:         vals,
		middleware:   middleware,
		controllers:  controllers,
		repositories: repositories,
	}

	r.setupEcho()
	r.setupMiddlewares()
	r.setupSwagger()
	r.setupHealthRoutes()
	r.setupRoutes()

	return r
}

func (r *Router) setupEcho() {
	r.Echo.HidePort = true
	r.Echo.HideBanner = true
	r.Echo.Validator = r.vals
}

func (r *Router) setupMiddlewares() {
	r.Echo.Use(echoMiddleware.RequestID())
	r.Echo.Use(echoUtil.SetupCORSMiddleware(r.res))
	r.Echo.Use(echoUtil.SetupLoggerMiddleware(r.res))
}

func (r *Router) setupSwagger() {
	env := ctxutil.GetAppModeFromEnv()
	if env == ctxutil.AppModeDev || env == ctxutil.AppModeLocal {
		r.Echo.Debug = true
		r.Echo.GET(swaggerPath, echoSwagger.WrapHandler)
	}
}

func (r *Router) setupHealthRoutes() {
	r.Echo.GET(healthPath, r.controllers.HealthController.HealthCheck)
}

func (r *Router) setupRoutes() {
	apiGroup := r.Echo.Group(apiV1BasePath)

	r.setupAuthRoutes(apiGroup)
	r.setupUserRoutes(apiGroup)
	r.setupAdminRoutes(apiGroup)
}

func (r *Router) setupAuthRoutes(apiGroup *echo.Group) {
	authGroup := apiGroup.Group(authPrefix)
	authGroup.POST("/register", r.controllers.AuthController.Register)
	authGroup.POST("/login", r.controllers.AuthController.Login)
	authGroup.POST("/token", r.controllers.AuthController.ObtainTokenPair)
	authGroup.POST("/refresh", r.controllers.AuthController.RefreshToken)
	authGroup.GET("/verify", r.controllers.AuthController.VerifyToken)
	authGroup.POST("/logout", r.controllers.AuthController.Logout)
}

func (r *Router) setupUserRoutes(apiGroup *echo.Group) {
	usersGroup := apiGroup.Group(usersPrefix, r.middleware.RequireAuth())
	usersGroup.GET("/me", r.controllers.UserController.Me)
	usersGroup.PUT("/me", r.controllers.UserController.UpdateMe)
	usersGroup.PATCH("/me", r.controllers.UserController.UpdateMe)
	usersGroup.POST("/me/password", r.controllers.UserController.ChangePassword)
	usersGroup.GET("/me/profile", r.controllers.UserController.GetProfile)
	usersGroup.PUT("/me/profile", r.controllers.UserController.UpdateProfile)
	usersGroup.POST("/me/verify-code", r.controllers.UserController.SendVerificationCode)
	usersGroup.POST("/me/verify-phone", r.controllers.UserController.VerifyPhone)
}

func (r *Router) setupAdminRoutes(apiGroup *echo.Group) {
	adminGroup := apiGroup.Group(adminPrefix, r.middleware.RequireApiKey())
	adminGroup.GET("/statistics", r.controllers.AdminController.GetStatistics)
	adminGroup.GET("/users", r.controllers.AdminController.SearchUsers)
}
