package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/santabrisa/crm-server/controllers"
	"github.com/santabrisa/crm-server/middleware"
)

// RegisterInventoryRoutes rutas de inventario.
func RegisterInventoryRoutes(router *gin.Engine) {
	inventory := router.Group("/api/inventory")
	inventory.Use(middleware.AuthMiddleware())
	{
		inventory.GET("/materials", middleware.PermissionMiddleware("inventory", "read"), controllers.GetMaterials)
		inventory.POST("/materials", middleware.PermissionMiddleware("inventory", "create"), controllers.CreateMaterial)
		inventory.GET("/batches", middleware.PermissionMiddleware("inventory", "read"), controllers.GetBatches)
		inventory.POST("/batches", middleware.PermissionMiddleware("inventory", "create"), controllers.CreateBatch)
		inventory.GET("/records", middleware.PermissionMiddleware("inventory", "read"), controllers.GetInventoryRecords)
		inventory.GET("/stats", middleware.PermissionMiddleware("inventory", "read"), controllers.GetInventoryStats)
	}
}
