// database/repository/tutor.go
package repository

import (
	"errors"
	"fmt"

	"urbanserve/models"

	"gorm.io/gorm"
)

// TutorProfileRepository defines the interface for tutor profile data access.
type TutorProfileRepository interface {
	GetByUserID(userID uint) (*models.TutorProfile, error)
	Create(profile *models.TutorProfile) error
	Save(profile *models.TutorProfile) error
	FindApprovedBySubject(subject string) ([]models.TutorProfile, error)
}

// GormTutorProfileRepo implements TutorProfileRepository using GORM.
type GormTutorProfileRepo struct {
	DB *gorm.DB
}

func NewGormTutorProfileRepo(db *gorm.DB) *GormTutorProfileRepo {
	return &GormTutorProfileRepo{DB: db}
}

// GetByUserID retrieves the profile owned by the given user.
func (repo *GormTutorProfileRepo) GetByUserID(userID uint) (*models.TutorProfile, error) {
	var profile models.TutorProfile
	err := repo.DB.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tutor profile for user %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve tutor profile for user %d: %w", userID, err)
	}
	return &profile, nil
}

// Create inserts a new tutor profile record.
func (repo *GormTutorProfileRepo) Create(profile *models.TutorProfile) error {
	if err := repo.DB.Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create tutor profile: %w", err)
	}
	return nil
}

// Save persists the updated profile record.
func (repo *GormTutorProfileRepo) Save(profile *models.TutorProfile) error {
	if err := repo.DB.Save(profile).Error; err != nil {
		return fmt.Errorf("failed to update tutor profile %d: %w", profile.ID, err)
	}
	return nil
}

// FindApprovedBySubject retrieves approved profiles for the given subject,
// with the owning user preloaded.
func (repo *GormTutorProfileRepo) FindApprovedBySubject(subject string) ([]models.TutorProfile, error) {
	var profiles []models.TutorProfile
	err := repo.DB.Joins("User").
		Where("tutor_profiles.subject = ? AND tutor_profiles.verification_status = ?",
			subject, models.VerificationApproved).
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query tutors for %s: %w", subject, err)
	}
	return profiles, nil
}
