package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/santabrisa/crm-server/controllers"
	"github.com/santabrisa/crm-server/middleware"
)

// RegisterAuthRoutes rutas de autenticacion.
func RegisterAuthRoutes(router *gin.Engine) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/login", controllers.Login)
		auth.POST("/register", controllers.Register)
		auth.GET("/validate", middleware.AuthMiddleware(), controllers.Validate)
		auth.POST("/approve", middleware.AuthMiddleware(), middleware.PermissionMiddleware("team", "update"), controllers.Approve)
	}
}
