package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/santabrisa/crm-server/controllers"
	"github.com/santabrisa/crm-server/middleware"
)

// RegisterTeamRoutes rutas de gestion del equipo.
func RegisterTeamRoutes(router *gin.Engine) {
	team := router.Group("/api/team")
	team.Use(middleware.AuthMiddleware())
	{
		team.GET("", controllers.GetTeamMembers)
		team.GET("/:id", controllers.GetTeamMember)
		team.POST("", middleware.PermissionMiddleware("team", "create"), controllers.CreateTeamMember)
		team.PUT("/:id", middleware.PermissionMiddleware("team", "update"), controllers.UpdateTeamMember)
	}
}
