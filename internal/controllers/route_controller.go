package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mumu_delivery/internal/services"
)

// RouteController serves the admin side of the daily plan.
type RouteController struct {
	Routes *services.RouteService
}

func NewRouteController(routes *services.RouteService) *RouteController {
	return &RouteController{Routes: routes}
}

func (rc *RouteController) ListDrivers(c *gin.Context) {
	drivers, err := rc.Routes.Drivers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": drivers})
}

func (rc *RouteController) Board(c *gin.Context) {
	board, err := rc.Routes.Board(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (rc *RouteController) List(c *gin.Context) {
	var q struct {
		Date     string `form:"date"`
		DriverID uint   `form:"driver_id" binding:"required"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	day, err := rc.Routes.List(c.Request.Context(), q.Date, q.DriverID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (rc *RouteController) Assign(c *gin.Context) {
	var input struct {
		Date       string `json:"date" binding:"required"`
		DriverID   uint   `json:"driver_id" binding:"required"`
		LocationID uint   `json:"location_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	day, err := rc.Routes.Assign(c.Request.Context(), services.AssignInput{
		Date:       input.Date,
		DriverID:   input.DriverID,
		LocationID: input.LocationID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, day)
}

func (rc *RouteController) Remove(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	day, err := rc.Routes.Remove(c.Request.Context(), id, confirmed(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (rc *RouteController) Reorder(c *gin.Context) {
	var input struct {
		Date      string `json:"date" binding:"required"`
		DriverID  uint   `json:"driver_id" binding:"required"`
		Index     *int   `json:"index" binding:"required,min=0"`
		Direction string `json:"direction" binding:"required,oneof=up down"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	day, err := rc.Routes.Reorder(c.Request.Context(), services.ReorderInput{
		Date:      input.Date,
		DriverID:  input.DriverID,
		Index:     *input.Index,
		Direction: input.Direction,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// SetInstruction takes {"instruction": "..."}; null or blank clears it.
func (rc *RouteController) SetInstruction(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input struct {
		Instruction *string `json:"instruction"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	day, err := rc.Routes.SetInstruction(c.Request.Context(), id, input.Instruction)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}
