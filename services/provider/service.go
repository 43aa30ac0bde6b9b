// File: urbanserve/services/provider/service.go
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"urbanserve/database/repository"
	"urbanserve/models"
	"urbanserve/services/storage"
	"urbanserve/services/verification"
	"urbanserve/utils"

	"go.uber.org/zap"
)

// ValidationError is a client-fault rejection with a human-readable reason.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// Upload is one multipart document attached to a profile submission.
type Upload struct {
	FileName string
	Reader   io.Reader
}

// WorkerProfileInput holds a worker's onboarding submission.
type WorkerProfileInput struct {
	ServiceType string
	Price       float64
	IDDocument  *Upload
}

// TutorProfileInput holds a tutor's onboarding submission.
type TutorProfileInput struct {
	Subject               string
	Price                 float64
	QualificationText     string
	ExperienceDescription string
	DemoTranscript        string
	IDDocument            *Upload
	QualificationDocument *Upload
}

// Verifier is the slice of the verification pipeline this service needs.
type Verifier interface {
	VerifyIdentity(ctx context.Context, hasDocument bool, documentRef string) verification.IdentityResult
	EvaluateTutor(ctx context.Context, qualificationText, experienceText, demoTranscript string) verification.TutorResult
}

// ProviderService orchestrates profile onboarding and provider search.
type ProviderService interface {
	CreateWorkerProfile(ctx context.Context, user *models.User, input WorkerProfileInput) (*models.WorkerProfile, error)
	CreateTutorProfile(ctx context.Context, user *models.User, input TutorProfileInput) (*models.TutorProfile, error)
	GetWorkerProfile(ctx context.Context, userID uint) (*models.WorkerProfile, error)
	GetTutorProfile(ctx context.Context, userID uint) (*models.TutorProfile, error)
	Search(ctx context.Context, serviceType, subject string) ([]SearchResult, error)
}

// DefaultProviderService implements ProviderService. Profile creation is a
// two-phase commit around the oracle call: the pending row is durably
// committed before the oracle is invoked, then finalized in a second write.
// A crash in between leaves the profile pending for manual reprocessing.
type DefaultProviderService struct {
	WorkerRepo repository.WorkerProfileRepository
	TutorRepo  repository.TutorProfileRepository
	AuditRepo  repository.AuditLogRepository
	Verifier   Verifier
	Storage    storage.StorageService
}

// CreateWorkerProfile creates the profile in pending state, runs identity
// verification and finalizes the one-shot status transition.
func (s *DefaultProviderService) CreateWorkerProfile(ctx context.Context, user *models.User, input WorkerProfileInput) (*models.WorkerProfile, error) {
	if _, err := s.WorkerRepo.GetByUserID(user.ID); err == nil {
		return nil, ValidationError{Reason: "Profile already exists"}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if !models.IsHomeServiceType(input.ServiceType) {
		return nil, ValidationError{Reason: fmt.Sprintf("Invalid service type. Allowed: %s", strings.Join(models.HomeServiceTypes, ", "))}
	}
	if input.Price < 0 {
		return nil, ValidationError{Reason: "Price must be a positive number"}
	}

	docRef, err := s.storeDocument(ctx, "worker_ids", input.IDDocument)
	if err != nil {
		return nil, err
	}

	rate := round2(input.Price)
	profile := &models.WorkerProfile{
		UserID:             user.ID,
		ServiceType:        input.ServiceType,
		HourlyRate:         &rate,
		IDDocumentRef:      docRef,
		VerificationStatus: models.VerificationPending,
	}
	if err := s.WorkerRepo.Create(profile); err != nil {
		return nil, err
	}

	result := s.Verifier.VerifyIdentity(ctx, docRef != "", docRef)
	s.writeAudit(user.ID, models.DecisionIdentityVerification, result.Raw)

	profile.VerificationStatus = models.VerificationRejected
	if result.Approved {
		profile.VerificationStatus = models.VerificationApproved
	}
	if err := s.WorkerRepo.Save(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// CreateTutorProfile creates the profile in pending state, runs the
// qualification evaluation and finalizes status, scores and summary.
func (s *DefaultProviderService) CreateTutorProfile(ctx context.Context, user *models.User, input TutorProfileInput) (*models.TutorProfile, error) {
	if _, err := s.TutorRepo.GetByUserID(user.ID); err == nil {
		return nil, ValidationError{Reason: "Profile already exists"}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if !models.IsTutorSubject(input.Subject) {
		return nil, ValidationError{Reason: fmt.Sprintf("Invalid subject. Allowed: %s", strings.Join(models.TutorSubjects, ", "))}
	}
	if input.Price < 0 {
		return nil, ValidationError{Reason: "Price must be a positive number"}
	}
	if strings.TrimSpace(input.DemoTranscript) == "" {
		return nil, ValidationError{Reason: "demo_transcript is required"}
	}

	idRef, err := s.storeDocument(ctx, "tutor_ids", input.IDDocument)
	if err != nil {
		return nil, err
	}
	qualRef, err := s.storeDocument(ctx, "tutor_qualifications", input.QualificationDocument)
	if err != nil {
		return nil, err
	}

	rate := round2(input.Price)
	profile := &models.TutorProfile{
		UserID:                user.ID,
		Subject:               input.Subject,
		HourlyRate:            &rate,
		QualificationText:     input.QualificationText,
		ExperienceDescription: input.ExperienceDescription,
		DemoTranscript:        input.DemoTranscript,
		IDDocumentRef:         idRef,
		QualificationDocRef:   qualRef,
		VerificationStatus:    models.VerificationPending,
	}
	if err := s.TutorRepo.Create(profile); err != nil {
		return nil, err
	}

	result := s.Verifier.EvaluateTutor(ctx, input.QualificationText, input.ExperienceDescription, input.DemoTranscript)
	s.writeAudit(user.ID, models.DecisionTutorEvaluation, result.Raw)

	qScore, sScore := result.QualificationScore, result.SkillScore
	profile.QualificationScore = &qScore
	profile.SkillScore = &sScore
	profile.ProfileSummary = result.ProfileSummary
	profile.VerificationStatus = models.VerificationRejected
	if result.Approved {
		profile.VerificationStatus = models.VerificationApproved
	}
	if err := s.TutorRepo.Save(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetWorkerProfile returns the worker's own profile.
func (s *DefaultProviderService) GetWorkerProfile(ctx context.Context, userID uint) (*models.WorkerProfile, error) {
	return s.WorkerRepo.GetByUserID(userID)
}

// GetTutorProfile returns the tutor's own profile.
func (s *DefaultProviderService) GetTutorProfile(ctx context.Context, userID uint) (*models.TutorProfile, error) {
	return s.TutorRepo.GetByUserID(userID)
}

func (s *DefaultProviderService) storeDocument(ctx context.Context, folder string, doc *Upload) (string, error) {
	if doc == nil || doc.FileName == "" {
		return "", nil
	}
	ref, err := s.Storage.Upload(ctx, folder, doc.FileName, doc.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to store document: %w", err)
	}
	return ref, nil
}

// writeAudit records the oracle's raw output. The write happens regardless
// of the verification outcome; a storage failure is logged, not raised.
func (s *DefaultProviderService) writeAudit(userID uint, decisionType, raw string) {
	entry := &models.AIDecisionLog{
		UserID:       userID,
		DecisionType: decisionType,
		RawResponse:  raw,
	}
	if err := s.AuditRepo.Create(entry); err != nil {
		utils.GetLogger().Error("failed to write AI decision log",
			zap.Uint("user_id", userID),
			zap.String("decision_type", decisionType),
			zap.Error(err))
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
