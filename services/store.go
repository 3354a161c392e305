package services

import (
	"context"

	"recycup/db"
	"recycup/models"
)

// MongoAwardStore backs the verification workflow with the users and
// verifications collections
type MongoAwardStore struct{}

func (MongoAwardStore) AwardMileage(ctx context.Context, email string) (*models.User, error) {
	return db.AwardMileage(ctx, email)
}

func (MongoAwardStore) RecordVerification(ctx context.Context, record models.VerificationRecord) error {
	return db.RecordVerification(ctx, record)
}
