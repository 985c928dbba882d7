package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/santabrisa/crm-server/repository"
	"github.com/santabrisa/crm-server/utils"
)

// RegisterRoutes registra todas las rutas de la API.
func RegisterRoutes(router *gin.Engine) {
	RegisterAuthRoutes(router)
	RegisterTeamRoutes(router)
	RegisterAccountRoutes(router)
	RegisterInteractionRoutes(router)
	RegisterCarteraRoutes(router)
	RegisterInventoryRoutes(router)
	RegisterProductionRoutes(router)
	RegisterPurchaseRoutes(router)
	RegisterDashboardRoutes(router)

	// Comprobacion de vida
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Estado de la base de datos
	router.GET("/api/db-status", func(c *gin.Context) {
		status, err := repository.GetDatabaseStatus()
		if err != nil {
			utils.ErrorResponse(c, "error consultando estado de la base de datos: "+err.Error(), 500)
			return
		}
		c.JSON(200, status)
	})

	// Metricas prometheus
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
