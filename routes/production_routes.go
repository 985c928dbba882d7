package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/santabrisa/crm-server/controllers"
	"github.com/santabrisa/crm-server/middleware"
)

// RegisterProductionRoutes rutas de ordenes de produccion.
func RegisterProductionRoutes(router *gin.Engine) {
	production := router.Group("/api/production")
	production.Use(middleware.AuthMiddleware())
	{
		production.GET("/runs", middleware.PermissionMiddleware("production", "read"), controllers.GetProductionRuns)
		production.GET("/runs/:id", middleware.PermissionMiddleware("production", "read"), controllers.GetProductionRun)
		production.POST("/runs", middleware.PermissionMiddleware("production", "create"), controllers.CreateProductionRun)
		production.POST("/runs/:id/close", middleware.PermissionMiddleware("production", "update"), controllers.CloseProductionRun)
	}
}
