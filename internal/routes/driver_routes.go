package routes

import (
	"github.com/gin-gonic/gin"

	"mumu_delivery/internal/middleware"
	"mumu_delivery/internal/models"
)

func DriverRoutes(r *gin.Engine, d Deps) {
	driver := r.Group("/driver")
	driver.Use(middleware.RequireAuth(d.Sessions), middleware.RequireRole(models.RoleDriver))
	{
		driver.GET("/routes", d.Drivers.MyRoutes)
		driver.POST("/routes/:id/log", d.Drivers.RecordLog)
	}
}
