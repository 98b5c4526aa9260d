package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mumu_delivery/internal/services"
)

// DriverController serves the signed-in driver's own day.
type DriverController struct {
	Routes     *services.RouteService
	Deliveries *services.DeliveryService
}

func NewDriverController(routes *services.RouteService, deliveries *services.DeliveryService) *DriverController {
	return &DriverController{Routes: routes, Deliveries: deliveries}
}

func (dc *DriverController) MyRoutes(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	day, err := dc.Routes.List(c.Request.Context(), c.Query("date"), s.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (dc *DriverController) RecordLog(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input struct {
		Type string `json:"type" binding:"required"`
		Memo string `json:"memo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	stop, err := dc.Deliveries.Record(c.Request.Context(), s, services.RecordInput{
		RouteID: id,
		Type:    input.Type,
		Memo:    input.Memo,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stop": stop})
}
