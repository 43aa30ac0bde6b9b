package repository

import (
	"fmt"
	"testing"
	"time"

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
		&models.User{}, &models.WorkerProfile{}, &models.TutorProfile{},
		&models.Booking{}, &models.Rating{}, &models.AIDecisionLog{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	u := models.User{Name: "U", Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func TestUserRepo_NotFoundSentinel(t *testing.T) {
	repo := NewGormUserRepo(newTestDB(t))

	_, err := repo.GetByID(42)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByEmail("nobody@test.local")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepo_CreateAndTrustScoreUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepo(db)

	u := &models.User{Name: "A", Email: "a@test.local", PasswordHash: "x", Role: models.RoleWorker}
	require.NoError(t, repo.Create(u))
	require.NotZero(t, u.ID)

	require.NoError(t, repo.UpdateTrustScore(u.ID, 87.5))
	got, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	require.Equal(t, 87.5, got.TrustScore)
}

func TestWorkerRepo_FindApprovedPreloadsUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormWorkerProfileRepo(db)

	u := seedUser(t, db, "w@test.local", models.RoleWorker)
	require.NoError(t, repo.Create(&models.WorkerProfile{
		UserID: u.ID, ServiceType: "plumber", VerificationStatus: models.VerificationApproved,
	}))
	seedUser(t, db, "other@test.local", models.RoleWorker)

	profiles, err := repo.FindApprovedByService("plumber")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	require.Equal(t, "w@test.local", profiles[0].User.Email)
}

func TestTutorRepo_FindApprovedBySubject(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormTutorProfileRepo(db)

	u := seedUser(t, db, "t@test.local", models.RoleTutor)
	require.NoError(t, repo.Create(&models.TutorProfile{
		UserID: u.ID, Subject: "coding", VerificationStatus: models.VerificationApproved,
	}))
	rejected := seedUser(t, db, "r@test.local", models.RoleTutor)
	require.NoError(t, repo.Create(&models.TutorProfile{
		UserID: rejected.ID, Subject: "coding", VerificationStatus: models.VerificationRejected,
	}))

	profiles, err := repo.FindApprovedBySubject("coding")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	require.Equal(t, u.ID, profiles[0].UserID)
}

func TestBookingRepo_ListForUserNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormBookingRepo(db)

	customer := seedUser(t, db, "c@test.local", models.RoleCustomer)
	provider := seedUser(t, db, "p@test.local", models.RoleWorker)

	old := models.Booking{CustomerID: customer.ID, ProviderID: provider.ID, ServiceType: "plumber", TotalPrice: 100, Status: models.BookingPending}
	require.NoError(t, repo.Create(&old))
	// Force distinct creation timestamps.
	require.NoError(t, db.Model(&old).Update("created_at", time.Now().Add(-time.Hour)).Error)
	recent := models.Booking{CustomerID: customer.ID, ProviderID: provider.ID, ServiceType: "plumber", TotalPrice: 200, Status: models.BookingPending}
	require.NoError(t, repo.Create(&recent))

	list, err := repo.ListForUser(customer.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, recent.ID, list[0].ID)

	// Provider sees the same bookings from the other side.
	list, err = repo.ListForUser(provider.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestBookingRepo_Counts(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormBookingRepo(db)

	customer := seedUser(t, db, "c@test.local", models.RoleCustomer)
	provider := seedUser(t, db, "p@test.local", models.RoleWorker)
	for _, status := range []string{models.BookingCompleted, models.BookingCompleted, models.BookingCancelled, models.BookingPending} {
		require.NoError(t, repo.Create(&models.Booking{
			CustomerID: customer.ID, ProviderID: provider.ID, ServiceType: "plumber", TotalPrice: 100, Status: status,
		}))
	}

	total, err := repo.CountForProvider(provider.ID)
	require.NoError(t, err)
	require.Equal(t, int64(4), total)

	completed, err := repo.CountForProviderByStatus(provider.ID, models.BookingCompleted)
	require.NoError(t, err)
	require.Equal(t, int64(2), completed)

	cancelled, err := repo.CountForProviderByStatus(provider.ID, models.BookingCancelled)
	require.NoError(t, err)
	require.Equal(t, int64(1), cancelled)
}

func TestRatingRepo_AverageDefaultsToZero(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormRatingRepo(db)

	avg, err := repo.AverageForProvider(99)
	require.NoError(t, err)
	require.Zero(t, avg)

	require.NoError(t, repo.Create(&models.Rating{CustomerID: 1, ProviderID: 99, Score: 4}))
	require.NoError(t, repo.Create(&models.Rating{CustomerID: 2, ProviderID: 99, Score: 5}))
	avg, err = repo.AverageForProvider(99)
	require.NoError(t, err)
	require.Equal(t, 4.5, avg)
}

func TestAuditRepo_Create(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAuditLogRepo(db)

	require.NoError(t, repo.Create(&models.AIDecisionLog{
		UserID: 1, DecisionType: models.DecisionIdentityVerification, RawResponse: `{"confidence":0.9}`,
	}))

	var entry models.AIDecisionLog
	require.NoError(t, db.First(&entry).Error)
	require.NotZero(t, entry.Timestamp)
	require.Equal(t, models.DecisionIdentityVerification, entry.DecisionType)
}
