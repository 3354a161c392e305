package routes

import (
	"recycup/controllers"

	"github.com/gin-gonic/gin"
)

func SignUpRouteHandler(ctx *gin.Context) {
	controllers.SignUp(ctx)
}

func LoginRouteHandler(ctx *gin.Context) {
	controllers.Login(ctx)
}

func LogoutRouteHandler(ctx *gin.Context) {
	controllers.Logout(ctx)
}

func SessionRouteHandler(ctx *gin.Context) {
	controllers.Session(ctx)
}
