package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fleet_admin/internal/controllers"
	"fleet_admin/internal/middleware"
)

// SetupRouter wires the controllers onto a gin engine with recovery,
// request logging and permissive CORS for the admin frontend.
func SetupRouter(
	bus *controllers.BusController,
	station *controllers.StationController,
	hist *controllers.HistoryController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	BusRoutes(r, bus)
	StationRoutes(r, station)
	HistoryRoutes(r, hist)

	return r
}
