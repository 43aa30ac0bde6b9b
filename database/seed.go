// File: urbanserve/database/seed.go
package database

import (
	"fmt"
	"math/rand"

	"urbanserve/models"
	"urbanserve/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dev-only fixture data for chat and search testing. Idempotent per
// account: existing seed emails are skipped.
var workerSeed = []struct {
	serviceType string
	count       int
}{
	{"cleaning", 3},
	{"plumber", 3},
	{"electrician", 3},
	{"painting", 2},
	{"gardening", 2},
}

var tutorSeed = []struct {
	subject string
	count   int
}{
	{"mathematics", 2},
	{"coding", 2},
	{"language", 2},
}

var workerNames = []string{
	"Raj Kumar", "Amit Sharma", "Vikram Singh", "Suresh Nair", "Deepak Patel",
	"Ramesh Iyer", "Karthik Reddy", "Anil Mehta", "Sunil Joshi", "Manoj Gupta",
	"Prakash Rao", "Sandeep Verma", "Ravi Krishnan", "Naveen Pillai",
}

var tutorNames = []string{
	"Priya Nair", "Anita Desai", "Meera Krishnan", "Kavitha Rao", "Lakshmi Iyer",
	"Divya Menon", "Shruti Patel", "Neha Sharma",
}

// SeedProviders inserts approved dummy providers so matching and search
// return something on a fresh database. Returns the number of profiles
// created.
func SeedProviders(db *gorm.DB) (int, error) {
	passwordHash, err := utils.HashPassword("seed123")
	if err != nil {
		return 0, fmt.Errorf("failed to hash seed password: %w", err)
	}

	created := 0
	nameIdx := 0
	for _, s := range workerSeed {
		for i := 0; i < s.count; i++ {
			name := fmt.Sprintf("%s (%s)", workerNames[nameIdx%len(workerNames)], s.serviceType)
			nameIdx++
			email := fmt.Sprintf("worker-%s-%d@seed.urban.local", s.serviceType, i+1)
			if seedEmailExists(db, email) {
				continue
			}
			user := models.User{
				Name:         name,
				Email:        email,
				PasswordHash: passwordHash,
				Role:         models.RoleWorker,
				TrustScore:   randomTrustScore(),
			}
			if err := db.Create(&user).Error; err != nil {
				return created, err
			}
			rate := randomPrice()
			profile := models.WorkerProfile{
				UserID:             user.ID,
				ServiceType:        s.serviceType,
				VerificationStatus: models.VerificationApproved,
				Rating:             randomRating(),
				HourlyRate:         &rate,
			}
			if err := db.Create(&profile).Error; err != nil {
				return created, err
			}
			created++
		}
	}

	nameIdx = 0
	for _, s := range tutorSeed {
		for i := 0; i < s.count; i++ {
			name := fmt.Sprintf("%s (%s)", tutorNames[nameIdx%len(tutorNames)], s.subject)
			nameIdx++
			email := fmt.Sprintf("tutor-%s-%d@seed.urban.local", s.subject, i+1)
			if seedEmailExists(db, email) {
				continue
			}
			user := models.User{
				Name:         name,
				Email:        email,
				PasswordHash: passwordHash,
				Role:         models.RoleTutor,
				TrustScore:   randomTrustScore(),
			}
			if err := db.Create(&user).Error; err != nil {
				return created, err
			}
			rate := randomPrice()
			qs := 70 + rand.Intn(26)
			ss := 70 + rand.Intn(26)
			profile := models.TutorProfile{
				UserID:             user.ID,
				Subject:            s.subject,
				VerificationStatus: models.VerificationApproved,
				QualificationScore: &qs,
				SkillScore:         &ss,
				HourlyRate:         &rate,
			}
			if err := db.Create(&profile).Error; err != nil {
				return created, err
			}
			created++
		}
	}

	if created > 0 {
		utils.GetLogger().Info("seeded dev providers", zap.Int("created", created))
	}
	return created, nil
}

func seedEmailExists(db *gorm.DB, email string) bool {
	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	return count > 0
}

func randomRating() float64 {
	return round1(3.5 + rand.Float64()*1.5)
}

func randomTrustScore() float64 {
	return round1(70.0 + rand.Float64()*25.0)
}

func randomPrice() float64 {
	return float64(200 + rand.Intn(1301))
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
