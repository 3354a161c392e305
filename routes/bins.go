package routes

import (
	"recycup/controllers"

	"github.com/gin-gonic/gin"
)

func GetBinsRouteHandler(ctx *gin.Context) {
	controllers.GetBins(ctx)
}

func GetNearbyBinsRouteHandler(ctx *gin.Context) {
	controllers.GetNearbyBins(ctx)
}
