package routes

import (
	"github.com/gin-gonic/gin"

	"fleet_admin/internal/controllers"
)

func BusRoutes(r *gin.Engine, ctl *controllers.BusController) {
	buses := r.Group("/buses")
	{
		buses.POST("", ctl.Create)
		buses.GET("", ctl.List)
		buses.GET("/ids", ctl.IDs)
		buses.GET("/details", ctl.Details)
		buses.GET("/:id", ctl.Get)
		buses.PUT("/:id", ctl.Update)
		buses.PUT("/:id/status", ctl.SetActive)
		buses.DELETE("/:id", ctl.Delete)
	}
}
