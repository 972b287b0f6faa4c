package router

import (
	"go-destinations-api/core/middleware"
	"go-destinations-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

// Setup registers auth routes.
func Setup(e *echo.Echo, c *controller.AuthController, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	public := v1.Group("/public")
	public.GET("/auth/google", c.GoogleLogin)
	public.GET("/auth/google/callback", c.GoogleCallback)
	public.GET("/users/:id", c.GetUser)

	private := v1.Group("/private")
	private.Use(mw.AuthMiddleware())
	private.POST("/auth/logout", c.Logout)
	private.GET("/auth/status", c.Status)
}
