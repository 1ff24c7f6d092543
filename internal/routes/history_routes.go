package routes

import (
	"github.com/gin-gonic/gin"

	"fleet_admin/internal/controllers"
)

func HistoryRoutes(r *gin.Engine, ctl *controllers.HistoryController) {
	r.GET("/history", ctl.List)
}
