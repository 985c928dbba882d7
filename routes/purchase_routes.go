package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/santabrisa/crm-server/controllers"
	"github.com/santabrisa/crm-server/middleware"
)

// RegisterPurchaseRoutes rutas de compras.
func RegisterPurchaseRoutes(router *gin.Engine) {
	purchases := router.Group("/api/purchases")
	purchases.Use(middleware.AuthMiddleware())
	{
		purchases.GET("", middleware.PermissionMiddleware("purchases", "read"), controllers.GetPurchases)
		purchases.POST("", middleware.PermissionMiddleware("purchases", "create"), controllers.CreatePurchase)
		purchases.POST("/:id/receive", middleware.PermissionMiddleware("purchases", "update"), controllers.ReceivePurchase)
		purchases.POST("/:id/cancel", middleware.PermissionMiddleware("purchases", "update"), controllers.CancelPurchase)
	}
}
