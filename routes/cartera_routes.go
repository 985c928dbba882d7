package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/santabrisa/crm-server/controllers"
	"github.com/santabrisa/crm-server/middleware"
)

// RegisterCarteraRoutes rutas del dashboard de cartera.
func RegisterCarteraRoutes(router *gin.Engine) {
	cartera := router.Group("/api/cartera")
	cartera.Use(middleware.AuthMiddleware(), middleware.PermissionMiddleware("cartera", "read"))
	{
		cartera.GET("", controllers.GetCartera)
		cartera.GET("/summary", controllers.GetCarteraSummary)
	}
}
