package rating

import (
	"context"
	"fmt"
	"testing"
	"time"

	"urbanserve/database/repository"
	"urbanserve/models"

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
		&models.User{}, &models.WorkerProfile{}, &models.TutorProfile{}, &models.Rating{},
	))
	return db
}

func newService(t *testing.T) (*DefaultRatingService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return &DefaultRatingService{
		RatingRepo: repository.NewGormRatingRepo(db),
		WorkerRepo: repository.NewGormWorkerProfileRepo(db),
	}, db
}

func seedWorkerWithProfile(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	u := models.User{Name: "Worker", Email: "w@test.local", PasswordHash: "x", Role: models.RoleWorker}
	require.NoError(t, db.Create(&u).Error)
	p := models.WorkerProfile{UserID: u.ID, ServiceType: "plumber", VerificationStatus: models.VerificationApproved}
	require.NoError(t, db.Create(&p).Error)
	return u.ID
}

func TestCreate_RejectsOutOfRangeScore(t *testing.T) {
	svc, _ := newService(t)
	for _, score := range []float64{0, 0.9, 5.1, 6, -1} {
		_, err := svc.Create(context.Background(), 1, CreateInput{ProviderID: 2, Score: score})
		require.Error(t, err, "score %v", score)
		require.IsType(t, ValidationError{}, err)
	}
}

func TestCreate_AcceptsBoundaryScores(t *testing.T) {
	svc, db := newService(t)
	provider := seedWorkerWithProfile(t, db)
	for _, score := range []float64{1, 5} {
		_, err := svc.Create(context.Background(), 1, CreateInput{ProviderID: provider, Score: score})
		require.NoError(t, err)
	}
}

func TestCreate_UpdatesWorkerRunningAverage(t *testing.T) {
	svc, db := newService(t)
	provider := seedWorkerWithProfile(t, db)

	_, err := svc.Create(context.Background(), 1, CreateInput{ProviderID: provider, Score: 5})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 1, CreateInput{ProviderID: provider, Score: 4, Comment: "good work"})
	require.NoError(t, err)

	var p models.WorkerProfile
	require.NoError(t, db.Where("user_id = ?", provider).First(&p).Error)
	require.Equal(t, 4.5, p.Rating)

	var count int64
	require.NoError(t, db.Model(&models.Rating{}).Where("provider_id = ?", provider).Count(&count).Error)
	require.Equal(t, int64(2), count)
}

func TestCreate_TutorRatingAsymmetry(t *testing.T) {
	// Tutors keep their qualification-derived rating: the rating row is
	// appended but no tutor profile field changes.
	svc, db := newService(t)
	u := models.User{Name: "Tutor", Email: "t@test.local", PasswordHash: "x", Role: models.RoleTutor}
	require.NoError(t, db.Create(&u).Error)
	qs, ss := 85, 90
	p := models.TutorProfile{UserID: u.ID, Subject: "coding", VerificationStatus: models.VerificationApproved, QualificationScore: &qs, SkillScore: &ss}
	require.NoError(t, db.Create(&p).Error)

	_, err := svc.Create(context.Background(), 1, CreateInput{ProviderID: u.ID, Score: 2})
	require.NoError(t, err)

	var after models.TutorProfile
	require.NoError(t, db.Where("user_id = ?", u.ID).First(&after).Error)
	require.Equal(t, 85, *after.QualificationScore)
	require.Equal(t, 90, *after.SkillScore)

	var count int64
	require.NoError(t, db.Model(&models.Rating{}).Where("provider_id = ?", u.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)
}
