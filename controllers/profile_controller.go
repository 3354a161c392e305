package controllers

import (
	"context"
	"net/http"
	"time"

	"recycup/db"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetProfile returns the caller's profile with the derived level label. The
// document is read fresh on every call; there is no cache in front of it.
func GetProfile(ctx *gin.Context) {
	email := ctx.GetString("email")
	if email == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := db.GetUserProfile(dbCtx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"profile": gin.H{
			"email":     user.Email,
			"nickname":  user.Nickname,
			"mileage":   user.Mileage,
			"authCount": user.AuthCount,
			"level":     user.Level(),
		},
	})
}
