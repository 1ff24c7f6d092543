package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fleet_admin/internal/images"
	"fleet_admin/internal/models"
	"fleet_admin/internal/repository"
	"fleet_admin/internal/services"
)

type StationController struct {
	Service *services.StationService
}

// Create registers a new station from a multipart form; the image part is
// required on this endpoint.
func (ctl *StationController) Create(c *gin.Context) {
	var input struct {
		Name     string `form:"name" binding:"required"`
		Locality string `form:"locality" binding:"required"`
		Routes   string `form:"routes" binding:"required"`
		Active   *bool  `form:"active"`
	}
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station input: " + err.Error()})
		return
	}

	up, err := formImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image upload: " + err.Error()})
		return
	}
	if up == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An image file is required"})
		return
	}

	station, err := ctl.Service.Create(c.Request.Context(), services.CreateStationInput{
		Name:     input.Name,
		Locality: input.Locality,
		Routes:   input.Routes,
		Active:   input.Active,
	}, up)
	if err != nil {
		if errors.Is(err, images.ErrNotImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create station: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"station": station})
}

// List returns stations newest first, optionally narrowed by id, locality
// and active.
func (ctl *StationController) List(c *gin.Context) {
	var filter repository.StationFilter
	if raw := c.Query("id"); raw != "" {
		id64, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id filter"})
			return
		}
		id := uint(id64)
		filter.ID = &id
	}
	if raw := c.Query("locality"); raw != "" {
		filter.Locality = &raw
	}
	if raw := c.Query("active"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.Active = &v
		}
	}

	stations, err := ctl.Service.List(c.Request.Context(), filter)
	if err != nil {
		logrus.WithError(err).Error("Failed to list stations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing stations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stations})
}

func (ctl *StationController) Get(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID"})
		return
	}

	station, err := ctl.Service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"station": station})
}

func (ctl *StationController) Update(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID"})
		return
	}

	var input struct {
		Name     *string `form:"name"`
		Locality *string `form:"locality"`
		Routes   *string `form:"routes"`
		Active   *bool   `form:"active"`
	}
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update: " + err.Error()})
		return
	}

	up, err := formImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image upload: " + err.Error()})
		return
	}

	station, err := ctl.Service.Update(c.Request.Context(), id, models.StationPatch{
		Name:     input.Name,
		Locality: input.Locality,
		Routes:   input.Routes,
		Active:   input.Active,
	}, up)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"station": station})
}

func (ctl *StationController) SetActive(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID"})
		return
	}

	active, err := strconv.ParseBool(c.Query("active"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid active value"})
		return
	}

	station, err := ctl.Service.SetActive(c.Request.Context(), id, active)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"station": station})
}

func (ctl *StationController) Delete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID"})
		return
	}

	if err := ctl.Service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete station: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Station deleted"})
}

func (ctl *StationController) IDs(c *gin.Context) {
	ids, err := ctl.Service.IDs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing station ids"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ids": ids})
}

func (ctl *StationController) Details(c *gin.Context) {
	stations, err := ctl.Service.List(c.Request.Context(), repository.StationFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing stations"})
		return
	}
	c.JSON(http.StatusOK, stations)
}
