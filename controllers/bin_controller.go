package controllers

import (
	"net/http"
	"strconv"

	"recycup/assets"

	"github.com/gin-gonic/gin"
)

// GetBins returns the full bundled marker list
func GetBins(ctx *gin.Context) {
	bins := assets.TrashBins()
	ctx.JSON(http.StatusOK, gin.H{
		"bins":  bins,
		"total": len(bins),
	})
}

// GetNearbyBins returns bins sorted by distance from a one-shot device fix
func GetNearbyBins(ctx *gin.Context) {
	latitude, err := strconv.ParseFloat(ctx.Query("latitude"), 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid latitude"})
		return
	}
	longitude, err := strconv.ParseFloat(ctx.Query("longitude"), 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid longitude"})
		return
	}

	limit := 5
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	bins := assets.Nearby(latitude, longitude, limit)
	ctx.JSON(http.StatusOK, gin.H{
		"bins":  bins,
		"total": len(bins),
	})
}
