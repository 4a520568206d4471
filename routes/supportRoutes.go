package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tarelfish/tarel-api/controllers"
)

func SupportRoutes(api *gin.RouterGroup, support *controllers.SupportController, requireAuth gin.HandlerFunc) {
	group := api.Group("/support", requireAuth)
	group.POST("", support.Create)
	group.GET("", support.ListMine)
	group.GET("/:id", support.GetMine)
}
