package provider

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"urbanserve/database/repository"
	"urbanserve/models"
	"urbanserve/services/storage"
	"urbanserve/services/verification"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.WorkerProfile{}, &models.TutorProfile{}, &models.AIDecisionLog{},
	))
	return db
}

// fakeVerifier returns canned pipeline verdicts and records its inputs.
type fakeVerifier struct {
	identity verification.IdentityResult
	tutor    verification.TutorResult

	sawDocument bool
	sawRef      string
}

func (f *fakeVerifier) VerifyIdentity(ctx context.Context, hasDocument bool, documentRef string) verification.IdentityResult {
	f.sawDocument = hasDocument
	f.sawRef = documentRef
	return f.identity
}

func (f *fakeVerifier) EvaluateTutor(ctx context.Context, q, e, d string) verification.TutorResult {
	return f.tutor
}

func newService(t *testing.T, v Verifier) (*DefaultProviderService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return &DefaultProviderService{
		WorkerRepo: repository.NewGormWorkerProfileRepo(db),
		TutorRepo:  repository.NewGormTutorProfileRepo(db),
		AuditRepo:  repository.NewGormAuditLogRepo(db),
		Verifier:   v,
		Storage:    store,
	}, db
}

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	u := models.User{Name: "P", Email: fmt.Sprintf("%s-%d@test.local", role, time.Now().UnixNano()), PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func auditCount(t *testing.T, db *gorm.DB, userID uint, decisionType string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.AIDecisionLog{}).
		Where("user_id = ? AND decision_type = ?", userID, decisionType).Count(&count).Error)
	return count
}

func TestCreateWorkerProfile_ApprovedPath(t *testing.T) {
	v := &fakeVerifier{identity: verification.IdentityResult{Approved: true, Confidence: 0.9, Raw: `{"confidence":0.9}`}}
	svc, db := newService(t, v)
	u := seedUser(t, db, models.RoleWorker)

	doc := &Upload{FileName: "id.png", Reader: strings.NewReader("fake-image-bytes")}
	profile, err := svc.CreateWorkerProfile(context.Background(), u, WorkerProfileInput{
		ServiceType: "plumber", Price: 450.556, IDDocument: doc,
	})
	require.NoError(t, err)
	require.Equal(t, models.VerificationApproved, profile.VerificationStatus)
	require.Equal(t, 450.56, *profile.HourlyRate)
	require.NotEmpty(t, profile.IDDocumentRef)
	require.True(t, v.sawDocument)
	require.Equal(t, profile.IDDocumentRef, v.sawRef)
	require.Equal(t, int64(1), auditCount(t, db, u.ID, models.DecisionIdentityVerification))
}

func TestCreateWorkerProfile_RejectedStillAudited(t *testing.T) {
	v := &fakeVerifier{identity: verification.IdentityResult{Approved: false, Raw: "AI verification failed: timeout"}}
	svc, db := newService(t, v)
	u := seedUser(t, db, models.RoleWorker)

	profile, err := svc.CreateWorkerProfile(context.Background(), u, WorkerProfileInput{ServiceType: "cleaning"})
	require.NoError(t, err)
	require.Equal(t, models.VerificationRejected, profile.VerificationStatus)
	require.False(t, v.sawDocument)
	require.Equal(t, int64(1), auditCount(t, db, u.ID, models.DecisionIdentityVerification))

	var entry models.AIDecisionLog
	require.NoError(t, db.Where("user_id = ?", u.ID).First(&entry).Error)
	require.Contains(t, entry.RawResponse, "timeout")
}

func TestCreateWorkerProfile_Validation(t *testing.T) {
	v := &fakeVerifier{identity: verification.IdentityResult{Approved: true}}
	svc, db := newService(t, v)
	u := seedUser(t, db, models.RoleWorker)

	_, err := svc.CreateWorkerProfile(context.Background(), u, WorkerProfileInput{ServiceType: "astrology"})
	require.IsType(t, ValidationError{}, err)

	_, err = svc.CreateWorkerProfile(context.Background(), u, WorkerProfileInput{ServiceType: "plumber", Price: -10})
	require.IsType(t, ValidationError{}, err)

	// Rejected submissions leave no audit rows behind.
	require.Equal(t, int64(0), auditCount(t, db, u.ID, models.DecisionIdentityVerification))
}

func TestCreateWorkerProfile_DuplicateRejected(t *testing.T) {
	v := &fakeVerifier{identity: verification.IdentityResult{Approved: true}}
	svc, db := newService(t, v)
	u := seedUser(t, db, models.RoleWorker)

	_, err := svc.CreateWorkerProfile(context.Background(), u, WorkerProfileInput{ServiceType: "plumber"})
	require.NoError(t, err)

	_, err = svc.CreateWorkerProfile(context.Background(), u, WorkerProfileInput{ServiceType: "painting"})
	require.IsType(t, ValidationError{}, err)
}

func TestCreateTutorProfile_ApprovedPath(t *testing.T) {
	v := &fakeVerifier{tutor: verification.TutorResult{
		QualificationScore: 82, SkillScore: 76, Approved: true,
		ProfileSummary: "Patient and structured teacher.",
		Raw:            `{"qualification_score":82}`,
	}}
	svc, db := newService(t, v)
	u := seedUser(t, db, models.RoleTutor)

	profile, err := svc.CreateTutorProfile(context.Background(), u, TutorProfileInput{
		Subject: "mathematics", Price: 600,
		QualificationText: "MSc Mathematics", ExperienceDescription: "6 years",
		DemoTranscript: "Today we will factor quadratics...",
	})
	require.NoError(t, err)
	require.Equal(t, models.VerificationApproved, profile.VerificationStatus)
	require.Equal(t, 82, *profile.QualificationScore)
	require.Equal(t, 76, *profile.SkillScore)
	require.Equal(t, "Patient and structured teacher.", profile.ProfileSummary)
	require.Equal(t, int64(1), auditCount(t, db, u.ID, models.DecisionTutorEvaluation))
}

func TestCreateTutorProfile_RejectedKeepsScores(t *testing.T) {
	v := &fakeVerifier{tutor: verification.TutorResult{QualificationScore: 40, SkillScore: 90, Approved: false, Raw: "{}"}}
	svc, db := newService(t, v)
	u := seedUser(t, db, models.RoleTutor)

	profile, err := svc.CreateTutorProfile(context.Background(), u, TutorProfileInput{
		Subject: "coding", DemoTranscript: "let's write a loop",
	})
	require.NoError(t, err)
	require.Equal(t, models.VerificationRejected, profile.VerificationStatus)
	require.Equal(t, 40, *profile.QualificationScore)
	require.Equal(t, int64(1), auditCount(t, db, u.ID, models.DecisionTutorEvaluation))
}

func TestCreateTutorProfile_Validation(t *testing.T) {
	v := &fakeVerifier{}
	svc, db := newService(t, v)
	u := seedUser(t, db, models.RoleTutor)

	_, err := svc.CreateTutorProfile(context.Background(), u, TutorProfileInput{Subject: "alchemy", DemoTranscript: "x"})
	require.IsType(t, ValidationError{}, err)

	_, err = svc.CreateTutorProfile(context.Background(), u, TutorProfileInput{Subject: "coding", DemoTranscript: "   "})
	require.IsType(t, ValidationError{}, err)

	_, err = svc.CreateTutorProfile(context.Background(), u, TutorProfileInput{Subject: "coding", DemoTranscript: "x", Price: -1})
	require.IsType(t, ValidationError{}, err)
}

func TestSearch_FiltersAndShapes(t *testing.T) {
	v := &fakeVerifier{}
	svc, db := newService(t, v)

	wu := seedUser(t, db, models.RoleWorker)
	rate := 500.0
	require.NoError(t, db.Create(&models.WorkerProfile{
		UserID: wu.ID, ServiceType: "plumber", VerificationStatus: models.VerificationApproved, Rating: 4.2, HourlyRate: &rate,
	}).Error)

	pending := seedUser(t, db, models.RoleWorker)
	require.NoError(t, db.Create(&models.WorkerProfile{
		UserID: pending.ID, ServiceType: "plumber", VerificationStatus: models.VerificationPending,
	}).Error)

	tu := seedUser(t, db, models.RoleTutor)
	qs, ss := 80, 90
	require.NoError(t, db.Create(&models.TutorProfile{
		UserID: tu.ID, Subject: "coding", VerificationStatus: models.VerificationApproved,
		QualificationScore: &qs, SkillScore: &ss, ProfileSummary: "Great with beginners.",
	}).Error)

	// Worker-only search.
	results, err := svc.Search(context.Background(), "plumber", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, wu.ID, results[0].ID)
	require.Equal(t, models.RoleWorker, results[0].Role)
	require.Equal(t, 500.0, *results[0].Price)

	// Combined search appends tutors after workers.
	results, err = svc.Search(context.Background(), "plumber", "coding")
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, models.RoleTutor, results[1].Role)
	require.Equal(t, 80, *results[1].QualificationScore)
	require.Equal(t, "Great with beginners.", results[1].ProfileSummary)

	// Unknown vocabulary contributes nothing; exact match only, no
	// normalization on this endpoint.
	results, err = svc.Search(context.Background(), "Plumber", "")
	require.NoError(t, err)
	require.Empty(t, results)
}
