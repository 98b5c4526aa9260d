package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mumu_delivery/internal/controllers"
	"mumu_delivery/internal/session"
)

// Deps is everything the handlers need.
type Deps struct {
	Sessions  *session.Manager
	Auth      *controllers.AuthController
	Routes    *controllers.RouteController
	Locations *controllers.LocationController
	Drivers   *controllers.DriverController
}

// SetupRouter registers every group. Middleware in mw runs ahead of
// every route, so it has to be passed in rather than added afterwards.
func SetupRouter(d Deps, mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	AuthRoutes(r, d)
	AdminRoutes(r, d)
	DriverRoutes(r, d)
	return r
}
