package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tarelfish/tarel-api/controllers"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
	server.GET("/health", controllers.HealthCheck)
}
