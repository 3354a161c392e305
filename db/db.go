package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"recycup/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database

// extractDBName parses the database name from the URI, defaulting to "recycup"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "recycup"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "recycup"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
func ConnectMongoDB(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	MongoDatabase = client.Database(dbName)
	return nil
}

// CreateUserProfile inserts the initial profile document for a new account,
// with both counters zeroed
func CreateUserProfile(ctx context.Context, email, nickname, passwordHash string) error {
	user := models.User{
		Email:        email,
		Nickname:     nickname,
		PasswordHash: passwordHash,
		Mileage:      0,
		AuthCount:    0,
		CreatedAt:    time.Now(),
	}
	_, err := MongoDatabase.Collection("users").InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user profile: %w", err)
	}
	return nil
}

// GetUserProfile fetches the profile document for an email, or
// mongo.ErrNoDocuments when none exists
func GetUserProfile(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := MongoDatabase.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AwardMileage applies the award increments to a user's profile in one
// document update. Mongo applies the whole update atomically, so mileage and
// authCount move in lock-step or not at all. Returns the updated profile.
func AwardMileage(ctx context.Context, email string) (*models.User, error) {
	update := bson.M{
		"$inc": bson.M{
			"mileage":   models.MileagePerAward,
			"authCount": models.AuthCountPerAward,
		},
	}

	result := MongoDatabase.Collection("users").FindOneAndUpdate(
		ctx,
		bson.M{"email": email},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.User
	if err := result.Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to award mileage: %w", err)
	}
	return &updated, nil
}

// RecordVerification appends a ledger entry for a completed award
func RecordVerification(ctx context.Context, record models.VerificationRecord) error {
	_, err := MongoDatabase.Collection("verifications").InsertOne(ctx, record)
	if err != nil {
		log.Printf("Error saving verification record: %v", err)
		return err
	}
	return nil
}
