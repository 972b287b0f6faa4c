package auth

import (
	"go-destinations-api/core/cache"
	"go-destinations-api/core/database"
	"go-destinations-api/core/middleware"
	"go-destinations-api/modules/auth/controller"
	"go-destinations-api/modules/auth/repository"
	"go-destinations-api/modules/auth/router"
	"go-destinations-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init wires the auth module.
func Init(e *echo.Echo, db database.Database, c cache.Cache, mw *middleware.Middleware) {
	authRepo := repository.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, c)
	authController := controller.NewAuthController(authService)
	router.Setup(e, authController, mw)
}
