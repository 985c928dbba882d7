package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/santabrisa/crm-server/controllers"
	"github.com/santabrisa/crm-server/middleware"
)

// RegisterInteractionRoutes rutas de interacciones y pedidos.
func RegisterInteractionRoutes(router *gin.Engine) {
	interactions := router.Group("/api/interactions")
	interactions.Use(middleware.AuthMiddleware())
	{
		interactions.GET("/account/:accountId", middleware.PermissionMiddleware("interactions", "read"), controllers.GetAccountInteractions)
		interactions.POST("", middleware.PermissionMiddleware("interactions", "create"), controllers.CreateInteraction)
		interactions.PUT("/:id", middleware.PermissionMiddleware("interactions", "update"), controllers.UpdateInteraction)
		interactions.DELETE("/:id", middleware.PermissionMiddleware("interactions", "delete"), controllers.DeleteInteraction)
	}
}
