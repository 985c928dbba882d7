package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/santabrisa/crm-server/controllers"
	"github.com/santabrisa/crm-server/middleware"
)

// RegisterAccountRoutes rutas de cuentas.
func RegisterAccountRoutes(router *gin.Engine) {
	accounts := router.Group("/api/accounts")
	accounts.Use(middleware.AuthMiddleware())
	{
		accounts.GET("", middleware.PermissionMiddleware("accounts", "read"), controllers.GetAccounts)
		accounts.GET("/:id", middleware.PermissionMiddleware("accounts", "read"), controllers.GetAccount)
		accounts.POST("", middleware.PermissionMiddleware("accounts", "create"), controllers.CreateAccount)
		accounts.PUT("/:id", middleware.PermissionMiddleware("accounts", "update"), controllers.UpdateAccount)
		accounts.DELETE("/:id", middleware.PermissionMiddleware("accounts", "delete"), controllers.DeleteAccount)
	}
}
