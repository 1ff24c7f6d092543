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

type BusController struct {
	Service *services.BusService
}

// Create registers a new bus from a multipart form. The image part is
// required on this endpoint; a failed upload fails the whole create.
func (ctl *BusController) Create(c *gin.Context) {
	var input struct {
		Name     string `form:"name" binding:"required"`
		Category string `form:"category" binding:"required"`
		Active   *bool  `form:"active"`
	}
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus input: " + err.Error()})
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

	bus, err := ctl.Service.Create(c.Request.Context(), services.CreateBusInput{
		Name:     input.Name,
		Category: input.Category,
		Active:   input.Active,
	}, up)
	if err != nil {
		if errors.Is(err, images.ErrNotImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bus: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bus": bus})
}

// List returns buses, optionally narrowed by id, category and active. An
// unparsable active value is ignored rather than rejected.
func (ctl *BusController) List(c *gin.Context) {
	var filter repository.BusFilter
	if raw := c.Query("id"); raw != "" {
		id64, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id filter"})
			return
		}
		id := uint(id64)
		filter.ID = &id
	}
	if raw := c.Query("category"); raw != "" {
		filter.Category = &raw
	}
	if raw := c.Query("active"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.Active = &v
		}
	}

	buses, err := ctl.Service.List(c.Request.Context(), filter)
	if err != nil {
		logrus.WithError(err).Error("Failed to list buses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing buses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": buses})
}

func (ctl *BusController) Get(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus ID"})
		return
	}

	bus, err := ctl.Service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bus not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bus": bus})
}

// Update patches the sent fields and optionally replaces the image. Fields
// left out of the form keep their stored values.
func (ctl *BusController) Update(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus ID"})
		return
	}

	var input struct {
		Name     *string `form:"name"`
		Category *string `form:"category"`
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

	bus, err := ctl.Service.Update(c.Request.Context(), id, models.BusPatch{
		Name:     input.Name,
		Category: input.Category,
		Active:   input.Active,
	}, up)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bus not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bus": bus})
}

// SetActive flips the soft state flag via ?active=true|false.
func (ctl *BusController) SetActive(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus ID"})
		return
	}

	active, err := strconv.ParseBool(c.Query("active"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid active value"})
		return
	}

	bus, err := ctl.Service.SetActive(c.Request.Context(), id, active)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bus not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bus": bus})
}

func (ctl *BusController) Delete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus ID"})
		return
	}

	if err := ctl.Service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bus not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bus: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bus deleted"})
}

func (ctl *BusController) IDs(c *gin.Context) {
	ids, err := ctl.Service.IDs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing bus ids"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ids": ids})
}

// Details returns the full bus list without filters, for the admin views.
func (ctl *BusController) Details(c *gin.Context) {
	buses, err := ctl.Service.List(c.Request.Context(), repository.BusFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing buses"})
		return
	}
	c.JSON(http.StatusOK, buses)
}
