package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tarelfish/tarel-api/controllers"
)

func AuthRoutes(api *gin.RouterGroup, auth *controllers.AuthController, requireAuth gin.HandlerFunc) {
	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)

	users := api.Group("/users", requireAuth)
	users.GET("/me", auth.Me)
	users.PATCH("/me", auth.UpdateMe)
}
