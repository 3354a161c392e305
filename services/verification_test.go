package services

import (
	"context"
	"errors"
	"testing"

	"recycup/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClassifier struct {
	PredictFunc func(ctx context.Context, filename string, image []byte) (*PredictResponse, error)
	DetectFunc  func(ctx context.Context, filename string, image []byte) (*DetectResponse, error)
}

func (m *mockClassifier) Predict(ctx context.Context, filename string, image []byte) (*PredictResponse, error) {
	return m.PredictFunc(ctx, filename, image)
}

func (m *mockClassifier) Detect(ctx context.Context, filename string, image []byte) (*DetectResponse, error) {
	return m.DetectFunc(ctx, filename, image)
}

type mockStore struct {
	AwardFunc  func(ctx context.Context, email string) (*models.User, error)
	awardCalls int
	records    []models.VerificationRecord
}

func (m *mockStore) AwardMileage(ctx context.Context, email string) (*models.User, error) {
	m.awardCalls++
	return m.AwardFunc(ctx, email)
}

func (m *mockStore) RecordVerification(ctx context.Context, record models.VerificationRecord) error {
	m.records = append(m.records, record)
	return nil
}

func classifierReturning(result string, probability float64, detected bool) *mockClassifier {
	return &mockClassifier{
		PredictFunc: func(ctx context.Context, filename string, image []byte) (*PredictResponse, error) {
			return &PredictResponse{Result: result, Probability: probability}, nil
		},
		DetectFunc: func(ctx context.Context, filename string, image []byte) (*DetectResponse, error) {
			return &DetectResponse{Detected: detected}, nil
		},
	}
}

func storeAwarding(mileage, authCount int) *mockStore {
	return &mockStore{
		AwardFunc: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{Email: email, Mileage: mileage, AuthCount: authCount}, nil
		},
	}
}

func TestSubmitCup_EmptyResult(t *testing.T) {
	vs := NewVerificationService(classifierReturning("empty", 0.92, false), storeAwarding(10, 1), nil)

	message, indicator := vs.SubmitCup(context.Background(), "a@b.com", "cup.jpg", []byte("jpeg"))

	assert.Equal(t, 1, indicator)
	assert.Contains(t, message, "empty")
	assert.Contains(t, message, "92.0%")
}

func TestSubmitCup_FullResult(t *testing.T) {
	vs := NewVerificationService(classifierReturning("full", 0.3, false), storeAwarding(10, 1), nil)

	message, indicator := vs.SubmitCup(context.Background(), "a@b.com", "cup.jpg", []byte("jpeg"))

	assert.Equal(t, 0, indicator)
	assert.Contains(t, message, "30.0%")
}

func TestSubmitCup_FailureOverwritesIndicator(t *testing.T) {
	classifier := classifierReturning("empty", 0.9, false)
	vs := NewVerificationService(classifier, storeAwarding(10, 1), nil)

	_, indicator := vs.SubmitCup(context.Background(), "a@b.com", "cup.jpg", []byte("jpeg"))
	require.Equal(t, 1, indicator)

	classifier.PredictFunc = func(ctx context.Context, filename string, image []byte) (*PredictResponse, error) {
		return nil, errors.New("connection refused")
	}

	message, indicator := vs.SubmitCup(context.Background(), "a@b.com", "cup2.jpg", []byte("jpeg"))
	assert.Equal(t, 0, indicator, "a failed retry must not keep the stale positive")
	assert.Equal(t, MsgPredictFailed, message)
	assert.NotNil(t, vs.Snapshot("a@b.com").CupImage, "image reference stays attached after a failed call")
}

func TestSubmitBin(t *testing.T) {
	vs := NewVerificationService(classifierReturning("", 0, true), storeAwarding(10, 1), nil)

	_, indicator := vs.SubmitBin(context.Background(), "a@b.com", "bin.jpg", []byte("jpeg"))
	assert.Equal(t, 1, indicator)

	vs = NewVerificationService(classifierReturning("", 0, false), storeAwarding(10, 1), nil)
	_, indicator = vs.SubmitBin(context.Background(), "a@b.com", "bin.jpg", []byte("jpeg"))
	assert.Equal(t, 0, indicator)
}

func TestSubmit_DecisionMatrix(t *testing.T) {
	tests := []struct {
		name        string
		cupResult   string
		detected    bool
		wantMessage string
		wantAwarded bool
	}{
		{"both recognized", "empty", true, MsgAwardSuccess, true},
		{"bin only", "full", true, MsgCupNotRecognized, false},
		{"cup only", "empty", false, MsgBinNotRecognized, false},
		{"neither", "full", false, MsgNothingRecognized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storeAwarding(10, 1)
			vs := NewVerificationService(classifierReturning(tt.cupResult, 0.8, tt.detected), store, nil)

			vs.SubmitCup(context.Background(), "a@b.com", "cup.jpg", []byte("jpeg"))
			vs.SubmitBin(context.Background(), "a@b.com", "bin.jpg", []byte("jpeg"))

			result := vs.Submit(context.Background(), "a@b.com")

			assert.Equal(t, tt.wantMessage, result.Message)
			assert.Equal(t, tt.wantAwarded, result.Awarded)
			if tt.wantAwarded {
				assert.Equal(t, 1, store.awardCalls)
			} else {
				assert.Zero(t, store.awardCalls, "no mutation may be attempted without both indicators")
			}
		})
	}
}

func TestSubmit_SuccessClearsImagesAndNotifies(t *testing.T) {
	store := storeAwarding(40, 4)
	var events []models.AwardEvent
	vs := NewVerificationService(classifierReturning("empty", 0.95, true), store, func(e models.AwardEvent) {
		events = append(events, e)
	})

	vs.SubmitCup(context.Background(), "a@b.com", "cup.jpg", []byte("jpeg"))
	vs.SubmitBin(context.Background(), "a@b.com", "bin.jpg", []byte("jpeg"))

	result := vs.Submit(context.Background(), "a@b.com")
	require.True(t, result.Awarded)
	assert.Equal(t, models.MileagePerAward, result.Points)
	assert.Equal(t, 40, result.NewMileage)
	assert.Equal(t, 4, result.NewAuthCount)

	snapshot := vs.Snapshot("a@b.com")
	assert.Nil(t, snapshot.CupImage)
	assert.Nil(t, snapshot.TrashbinImage)

	require.Len(t, events, 1)
	assert.Equal(t, "mileage_awarded", events[0].Type)
	assert.Equal(t, models.LevelSprout, events[0].Level)

	require.Len(t, store.records, 1)
	assert.Equal(t, "cup.jpg", store.records[0].CupImage)
	assert.Equal(t, "bin.jpg", store.records[0].BinImage)
}

func TestSubmit_StoreFailureRetainsImages(t *testing.T) {
	store := &mockStore{
		AwardFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, errors.New("write conflict")
		},
	}
	notified := false
	vs := NewVerificationService(classifierReturning("empty", 0.95, true), store, func(models.AwardEvent) {
		notified = true
	})

	vs.SubmitCup(context.Background(), "a@b.com", "cup.jpg", []byte("jpeg"))
	vs.SubmitBin(context.Background(), "a@b.com", "bin.jpg", []byte("jpeg"))

	result := vs.Submit(context.Background(), "a@b.com")

	assert.False(t, result.Awarded)
	assert.Equal(t, MsgAwardSaveFailed, result.Message)

	snapshot := vs.Snapshot("a@b.com")
	assert.NotNil(t, snapshot.CupImage, "photos stay attached so the user does not retake them")
	assert.NotNil(t, snapshot.TrashbinImage)
	assert.False(t, notified)
	assert.Empty(t, store.records)
}

func TestSnapshot_Empty(t *testing.T) {
	vs := NewVerificationService(classifierReturning("", 0, false), storeAwarding(0, 0), nil)

	snapshot := vs.Snapshot("nobody@b.com")
	assert.Nil(t, snapshot.CupImage)
	assert.Nil(t, snapshot.TrashbinImage)
	assert.Zero(t, snapshot.EmptyCup)
	assert.Zero(t, snapshot.DetectedBin)
}
