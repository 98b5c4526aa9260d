package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mumu_delivery/internal/services"
)

type LocationController struct {
	Locations *services.LocationService
}

func NewLocationController(locations *services.LocationService) *LocationController {
	return &LocationController{Locations: locations}
}

type locationInput struct {
	Name       string  `json:"name" binding:"required"`
	Address    string  `json:"address" binding:"required"`
	Region     string  `json:"region" binding:"required"`
	AccessInfo string  `json:"access_info" binding:"required"`
	Geometry   *string `json:"geometry"`
}

func (in locationInput) toService() services.LocationInput {
	return services.LocationInput{
		Name:       in.Name,
		Address:    in.Address,
		Region:     in.Region,
		AccessInfo: in.AccessInfo,
		Geometry:   in.Geometry,
	}
}

// List returns every location, or the matches when ?q= is present.
func (lc *LocationController) List(c *gin.Context) {
	var (
		locs []services.LocationView
		err  error
	)
	if q, ok := c.GetQuery("q"); ok {
		locs, err = lc.Locations.Search(c.Request.Context(), q)
	} else {
		locs, err = lc.Locations.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": locs})
}

func (lc *LocationController) Create(c *gin.Context) {
	var input locationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	loc, err := lc.Locations.Create(c.Request.Context(), input.toService())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"location": loc})
}

func (lc *LocationController) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input locationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	loc, err := lc.Locations.Update(c.Request.Context(), id, input.toService())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": loc})
}

func (lc *LocationController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := lc.Locations.Delete(c.Request.Context(), id, confirmed(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (lc *LocationController) History(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	loc, history, err := lc.Locations.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": loc, "history": history})
}
