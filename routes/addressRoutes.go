package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tarelfish/tarel-api/controllers"
)

func AddressRoutes(api *gin.RouterGroup, addresses *controllers.AddressController) {
	api.GET("/address/autocomplete/:term", addresses.Autocomplete)
	api.GET("/address/get/:id", addresses.Get)
}
