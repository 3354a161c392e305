package routes

import (
	"recycup/controllers"

	"github.com/gin-gonic/gin"
)

func SubmitCupPhotoRouteHandler(ctx *gin.Context) {
	controllers.SubmitCupPhoto(ctx)
}

func SubmitBinPhotoRouteHandler(ctx *gin.Context) {
	controllers.SubmitBinPhoto(ctx)
}

func SubmitVerificationRouteHandler(ctx *gin.Context) {
	controllers.SubmitVerification(ctx)
}

func VerificationStatusRouteHandler(ctx *gin.Context) {
	controllers.VerificationStatus(ctx)
}
