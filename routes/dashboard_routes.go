package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/santabrisa/crm-server/controllers"
	"github.com/santabrisa/crm-server/middleware"
)

// RegisterDashboardRoutes rutas del panel de indicadores.
func RegisterDashboardRoutes(router *gin.Engine) {
	dashboard := router.Group("/api/dashboard")
	dashboard.Use(middleware.AuthMiddleware())
	{
		dashboard.GET("/stats", middleware.PermissionMiddleware("dashboard", "read"), controllers.GetDashboardStats)
	}
}
