package routes

import (
	"github.com/gin-gonic/gin"

	"fleet_admin/internal/controllers"
)

func StationRoutes(r *gin.Engine, ctl *controllers.StationController) {
	stations := r.Group("/stations")
	{
		stations.POST("", ctl.Create)
		stations.GET("", ctl.List)
		stations.GET("/ids", ctl.IDs)
		stations.GET("/details", ctl.Details)
		stations.GET("/:id", ctl.Get)
		stations.PUT("/:id", ctl.Update)
		stations.PUT("/:id/status", ctl.SetActive)
		stations.DELETE("/:id", ctl.Delete)
	}
}
