package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Photo kinds accepted by the verification workflow
const (
	PhotoKindCup = "cup"
	PhotoKindBin = "trashbin"
)

// ImageRef identifies an uploaded photo held by an in-flight attempt
type ImageRef struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// AttemptSnapshot is the externally visible state of one verification attempt
type AttemptSnapshot struct {
	CupImage      *ImageRef `json:"cupImage,omitempty"`
	TrashbinImage *ImageRef `json:"trashbinImage,omitempty"`
	EmptyCup      int       `json:"emptyCup"`
	DetectedBin   int       `json:"detectedBin"`
	PredictText   string    `json:"predictText,omitempty"`
	DetectText    string    `json:"detectText,omitempty"`
}

// VerificationRecord is the persisted ledger entry written after a
// successful award
type VerificationRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Points    int                `bson:"points" json:"points"`
	CupImage  string             `bson:"cupImage" json:"cupImage"`
	BinImage  string             `bson:"binImage" json:"binImage"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// AwardEvent is broadcast to websocket clients after a successful award
type AwardEvent struct {
	Type         string    `json:"type"`
	Email        string    `json:"email"`
	Points       int       `json:"points"`
	NewMileage   int       `json:"newMileage"`
	NewAuthCount int       `json:"newAuthCount"`
	Level        string    `json:"level"`
	Timestamp    time.Time `json:"timestamp"`
}
