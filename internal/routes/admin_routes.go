package routes

import (
	"github.com/gin-gonic/gin"

	"mumu_delivery/internal/middleware"
	"mumu_delivery/internal/models"
)

func AdminRoutes(r *gin.Engine, d Deps) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuth(d.Sessions), middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/drivers", d.Routes.ListDrivers)
		admin.GET("/board", d.Routes.Board)

		admin.GET("/locations", d.Locations.List)
		admin.POST("/locations", d.Locations.Create)
		admin.PUT("/locations/:id", d.Locations.Update)
		admin.DELETE("/locations/:id", d.Locations.Delete)
		admin.GET("/locations/:id/history", d.Locations.History)

		admin.GET("/routes", d.Routes.List)
		admin.POST("/routes", d.Routes.Assign)
		admin.POST("/routes/reorder", d.Routes.Reorder)
		admin.DELETE("/routes/:id", d.Routes.Remove)
		admin.PATCH("/routes/:id/instruction", d.Routes.SetInstruction)
	}
}
