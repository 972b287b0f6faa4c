package router

import (
	"go-destinations-api/core/middleware"
	"go-destinations-api/modules/destination/controller"

	"github.com/labstack/echo/v4"
)

// Setup registers destination routes. Browsing and detail pages are
// public; everything that writes requires an access token.
func Setup(e *echo.Echo, c *controller.DestinationController, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	public := v1.Group("/public")
	public.GET("/destinations", c.Browse)
	public.GET("/destinations/:id", c.Get)

	private := v1.Group("/private")
	private.Use(mw.AuthMiddleware())
	private.POST("/destinations", c.Create)
	private.GET("/destinations", c.ListMine)
	private.PATCH("/destinations/:id/cancel", c.Cancel)
	private.DELETE("/destinations/:id", c.Delete)
	private.POST("/destinations/:id/participate", c.Participate)
	private.DELETE("/destinations/:id/participate", c.Unparticipate)

	private.POST("/jobs/status-sweep", c.RunStatusSweep)
	private.GET("/jobs/status-sweep", c.StatusSweepStatus)
}
