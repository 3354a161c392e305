package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Level labels derived from a user's verification count.
const (
	LevelSprout = "sprout"
	LevelTree   = "tree"
	LevelFruit  = "fruit"
)

// Mileage points granted per successful verification, and the matching
// bump of the verification counter. The two always move together.
const (
	MileagePerAward   = 10
	AuthCountPerAward = 1
)

// User defines a user profile document, keyed by email in the users collection
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	Nickname     string             `bson:"nickname" json:"nickname"`
	PasswordHash string             `bson:"passwordHash,omitempty" json:"-"`
	Mileage      int                `bson:"mileage" json:"mileage"`
	AuthCount    int                `bson:"authCount" json:"authCount"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// LevelForAuthCount maps a verification count onto the three-tier level label.
func LevelForAuthCount(authCount int) string {
	switch {
	case authCount >= 15:
		return LevelFruit
	case authCount >= 5:
		return LevelTree
	default:
		return LevelSprout
	}
}

// Level returns the user's current tier label.
func (u *User) Level() string {
	return LevelForAuthCount(u.AuthCount)
}
