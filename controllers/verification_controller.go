package controllers

import (
	"io"
	"net/http"

	"recycup/models"
	"recycup/services"
	"recycup/structs"

	"github.com/gin-gonic/gin"
)

// readUpload pulls the uploaded photo out of the multipart form
func readUpload(ctx *gin.Context, field string) (string, []byte, bool) {
	fileHeader, err := ctx.FormFile(field)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing photo", "message": err.Error()})
		return "", nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable photo", "message": err.Error()})
		return "", nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable photo", "message": err.Error()})
		return "", nil, false
	}

	return fileHeader.Filename, data, true
}

// SubmitCupPhoto accepts a cup photo and runs the classification call
func SubmitCupPhoto(ctx *gin.Context) {
	email := ctx.GetString("email")
	if email == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	filename, data, ok := readUpload(ctx, "file")
	if !ok {
		return
	}

	message, indicator := services.GetVerificationService().SubmitCup(ctx, email, filename, data)

	ctx.JSON(http.StatusOK, structs.CaptureResponse{
		Message:   message,
		Indicator: indicator,
		Image:     models.ImageRef{Filename: filename, Size: int64(len(data))},
	})
}

// SubmitBinPhoto accepts a trash-bin photo and runs the detection call
func SubmitBinPhoto(ctx *gin.Context) {
	email := ctx.GetString("email")
	if email == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	filename, data, ok := readUpload(ctx, "image")
	if !ok {
		return
	}

	message, indicator := services.GetVerificationService().SubmitBin(ctx, email, filename, data)

	ctx.JSON(http.StatusOK, structs.CaptureResponse{
		Message:   message,
		Indicator: indicator,
		Image:     models.ImageRef{Filename: filename, Size: int64(len(data))},
	})
}

// SubmitVerification evaluates the attempt and awards mileage when both
// photos passed
func SubmitVerification(ctx *gin.Context) {
	email := ctx.GetString("email")
	if email == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result := services.GetVerificationService().Submit(ctx, email)

	ctx.JSON(http.StatusOK, structs.SubmitResponse{
		Message:      result.Message,
		Awarded:      result.Awarded,
		Points:       result.Points,
		NewMileage:   result.NewMileage,
		NewAuthCount: result.NewAuthCount,
	})
}

// VerificationStatus reports the current attempt snapshot
func VerificationStatus(ctx *gin.Context) {
	email := ctx.GetString("email")
	if email == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx.JSON(http.StatusOK, services.GetVerificationService().Snapshot(email))
}
