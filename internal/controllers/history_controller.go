package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet_admin/internal/history"
)

type HistoryController struct {
	Log *history.Log
}

// List returns every recorded deletion, oldest first.
func (ctl *HistoryController) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": ctl.Log.All()})
}
