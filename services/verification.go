package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"recycup/models"
)

// User-facing messages produced by the verification workflow
const (
	MsgAwardSuccess      = "Verification succeeded! 10 mileage points added."
	MsgAwardSaveFailed   = "Verification succeeded, but saving your mileage failed."
	MsgCupNotRecognized  = "The empty cup was not recognized."
	MsgBinNotRecognized  = "The trash bin was not recognized."
	MsgNothingRecognized = "Neither photo was recognized."

	MsgPredictFailed = "Error while calling the prediction API"
	MsgDetectFailed  = "Error while calling the detection API"
)

// Classifier is the slice of the inference client the workflow needs
type Classifier interface {
	Predict(ctx context.Context, filename string, image []byte) (*PredictResponse, error)
	Detect(ctx context.Context, filename string, image []byte) (*DetectResponse, error)
}

// AwardStore applies the mileage award and records the ledger entry
type AwardStore interface {
	AwardMileage(ctx context.Context, email string) (*models.User, error)
	RecordVerification(ctx context.Context, record models.VerificationRecord) error
}

// AwardNotifier fans a completed award out to connected clients
type AwardNotifier func(event models.AwardEvent)

// attempt holds one user's in-flight verification state. The two indicator
// slots are written independently by the cup and bin paths; the latest
// settled remote call wins its slot.
type attempt struct {
	cupImage      *models.ImageRef
	trashbinImage *models.ImageRef
	emptyCup      int
	detectedBin   int
	predictText   string
	detectText    string
}

// VerificationService owns the photo-verification workflow state per user
type VerificationService struct {
	classifier Classifier
	store      AwardStore
	notify     AwardNotifier

	attempts map[string]*attempt
	mutex    sync.RWMutex
}

var (
	verificationService *VerificationService
	verificationOnce    sync.Once
)

// InitVerificationService wires the singleton workflow with its collaborators
func InitVerificationService(classifier Classifier, store AwardStore, notify AwardNotifier) *VerificationService {
	verificationOnce.Do(func() {
		verificationService = NewVerificationService(classifier, store, notify)
	})
	return verificationService
}

// GetVerificationService returns the singleton workflow
func GetVerificationService() *VerificationService {
	return verificationService
}

// NewVerificationService builds an unshared workflow instance, used directly in tests
func NewVerificationService(classifier Classifier, store AwardStore, notify AwardNotifier) *VerificationService {
	return &VerificationService{
		classifier: classifier,
		store:      store,
		notify:     notify,
		attempts:   make(map[string]*attempt),
	}
}

func (vs *VerificationService) attemptFor(email string) *attempt {
	if a, ok := vs.attempts[email]; ok {
		return a
	}
	a := &attempt{}
	vs.attempts[email] = a
	return a
}

// SubmitCup stores the cup photo reference and classifies it. The empty-cup
// indicator reflects only this call: 1 for an "empty" result, 0 otherwise,
// including on a failed call.
func (vs *VerificationService) SubmitCup(ctx context.Context, email, filename string, image []byte) (string, int) {
	ref := &models.ImageRef{Filename: filename, Size: int64(len(image))}

	vs.mutex.Lock()
	vs.attemptFor(email).cupImage = ref
	vs.mutex.Unlock()

	resp, err := vs.classifier.Predict(ctx, filename, image)

	vs.mutex.Lock()
	defer vs.mutex.Unlock()
	a := vs.attemptFor(email)

	if err != nil {
		log.Printf("Predict call failed for %s: %v", email, err)
		a.emptyCup = 0
		a.predictText = MsgPredictFailed
		return a.predictText, a.emptyCup
	}

	a.predictText = fmt.Sprintf("Prediction: %s (%.1f%%)", resp.Result, resp.Probability*100)
	if resp.Result == "empty" {
		a.emptyCup = 1
	} else {
		a.emptyCup = 0
	}
	return a.predictText, a.emptyCup
}

// SubmitBin stores the trash-bin photo reference and runs detection on it.
// Same slot semantics as SubmitCup.
func (vs *VerificationService) SubmitBin(ctx context.Context, email, filename string, image []byte) (string, int) {
	ref := &models.ImageRef{Filename: filename, Size: int64(len(image))}

	vs.mutex.Lock()
	vs.attemptFor(email).trashbinImage = ref
	vs.mutex.Unlock()

	resp, err := vs.classifier.Detect(ctx, filename, image)

	vs.mutex.Lock()
	defer vs.mutex.Unlock()
	a := vs.attemptFor(email)

	if err != nil {
		log.Printf("Detect call failed for %s: %v", email, err)
		a.detectedBin = 0
		a.detectText = MsgDetectFailed
		return a.detectText, a.detectedBin
	}

	if resp.Detected {
		a.detectedBin = 1
		a.detectText = "Detection: trash bin found"
	} else {
		a.detectedBin = 0
		a.detectText = "Detection: no trash bin found"
	}
	return a.detectText, a.detectedBin
}

// AwardResult is the outcome of one submit evaluation
type AwardResult struct {
	Message      string
	Awarded      bool
	Points       int
	NewMileage   int
	NewAuthCount int
}

// Submit evaluates the two indicators and, when both passed, applies the
// mileage award. On a store failure the photos stay attached to the attempt
// so the user does not have to retake them; no retry is scheduled. The
// bin-recognized branch is checked before the cup-recognized one, so a
// single missing indicator always names the missing photo.
func (vs *VerificationService) Submit(ctx context.Context, email string) AwardResult {
	vs.mutex.Lock()
	a := vs.attemptFor(email)
	emptyCup, detectedBin := a.emptyCup, a.detectedBin
	cupImage, binImage := a.cupImage, a.trashbinImage
	vs.mutex.Unlock()

	if detectedBin == 1 && emptyCup == 1 {
		updated, err := vs.store.AwardMileage(ctx, email)
		if err != nil {
			log.Printf("Mileage update failed for %s: %v", email, err)
			return AwardResult{Message: MsgAwardSaveFailed}
		}

		record := models.VerificationRecord{
			Email:     email,
			Points:    models.MileagePerAward,
			CreatedAt: time.Now(),
		}
		if cupImage != nil {
			record.CupImage = cupImage.Filename
		}
		if binImage != nil {
			record.BinImage = binImage.Filename
		}
		if err := vs.store.RecordVerification(ctx, record); err != nil {
			// The award already landed; the ledger entry is best-effort
			log.Printf("Verification record failed for %s: %v", email, err)
		}

		vs.mutex.Lock()
		a = vs.attemptFor(email)
		a.cupImage = nil
		a.trashbinImage = nil
		vs.mutex.Unlock()

		if vs.notify != nil {
			vs.notify(models.AwardEvent{
				Type:         "mileage_awarded",
				Email:        email,
				Points:       models.MileagePerAward,
				NewMileage:   updated.Mileage,
				NewAuthCount: updated.AuthCount,
				Level:        updated.Level(),
				Timestamp:    time.Now(),
			})
		}

		return AwardResult{
			Message:      MsgAwardSuccess,
			Awarded:      true,
			Points:       models.MileagePerAward,
			NewMileage:   updated.Mileage,
			NewAuthCount: updated.AuthCount,
		}
	} else if detectedBin == 1 {
		return AwardResult{Message: MsgCupNotRecognized}
	} else if emptyCup == 1 {
		return AwardResult{Message: MsgBinNotRecognized}
	}
	return AwardResult{Message: MsgNothingRecognized}
}

// Snapshot reports the current attempt state for a user
func (vs *VerificationService) Snapshot(email string) models.AttemptSnapshot {
	vs.mutex.RLock()
	defer vs.mutex.RUnlock()

	a, ok := vs.attempts[email]
	if !ok {
		return models.AttemptSnapshot{}
	}
	return models.AttemptSnapshot{
		CupImage:      a.cupImage,
		TrashbinImage: a.trashbinImage,
		EmptyCup:      a.emptyCup,
		DetectedBin:   a.detectedBin,
		PredictText:   a.predictText,
		DetectText:    a.detectText,
	}
}
