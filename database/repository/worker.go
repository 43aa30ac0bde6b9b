// database/repository/worker.go
package repository

import (
	"errors"
	"fmt"

	"urbanserve/models"

	"gorm.io/gorm"
)

// WorkerProfileRepository defines the interface for worker profile data access.
type WorkerProfileRepository interface {
	GetByUserID(userID uint) (*models.WorkerProfile, error)
	Create(profile *models.WorkerProfile) error
	Save(profile *models.WorkerProfile) error
	UpdateRating(userID uint, rating float64) error
	FindApprovedByService(serviceType string) ([]models.WorkerProfile, error)
}

// GormWorkerProfileRepo implements WorkerProfileRepository using GORM.
type GormWorkerProfileRepo struct {
	DB *gorm.DB
}

func NewGormWorkerProfileRepo(db *gorm.DB) *GormWorkerProfileRepo {
	return &GormWorkerProfileRepo{DB: db}
}

// GetByUserID retrieves the profile owned by the given user.
func (repo *GormWorkerProfileRepo) GetByUserID(userID uint) (*models.WorkerProfile, error) {
	var profile models.WorkerProfile
	err := repo.DB.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("worker profile for user %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve worker profile for user %d: %w", userID, err)
	}
	return &profile, nil
}

// Create inserts a new worker profile record.
func (repo *GormWorkerProfileRepo) Create(profile *models.WorkerProfile) error {
	if err := repo.DB.Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create worker profile: %w", err)
	}
	return nil
}

// Save persists the updated profile record.
func (repo *GormWorkerProfileRepo) Save(profile *models.WorkerProfile) error {
	if err := repo.DB.Save(profile).Error; err != nil {
		return fmt.Errorf("failed to update worker profile %d: %w", profile.ID, err)
	}
	return nil
}

// UpdateRating writes the running average rating for the given worker.
func (repo *GormWorkerProfileRepo) UpdateRating(userID uint, rating float64) error {
	if err := repo.DB.Model(&models.WorkerProfile{}).Where("user_id = ?", userID).
		Update("rating", rating).Error; err != nil {
		return fmt.Errorf("failed to update rating for worker %d: %w", userID, err)
	}
	return nil
}

// FindApprovedByService retrieves approved profiles in the given category,
// with the owning user preloaded.
func (repo *GormWorkerProfileRepo) FindApprovedByService(serviceType string) ([]models.WorkerProfile, error) {
	var profiles []models.WorkerProfile
	err := repo.DB.Joins("User").
		Where("worker_profiles.service_type = ? AND worker_profiles.verification_status = ?",
			serviceType, models.VerificationApproved).
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query workers for %s: %w", serviceType, err)
	}
	return profiles, nil
}
