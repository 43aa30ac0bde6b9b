// database/repository/rating.go
package repository

import (
	"fmt"

	"urbanserve/models"

	"gorm.io/gorm"
)

// RatingRepository defines the interface for rating data access.
// Ratings are append-only; there are no update or delete operations.
type RatingRepository interface {
	Create(rating *models.Rating) error
	AverageForProvider(providerID uint) (float64, error)
}

// GormRatingRepo implements RatingRepository using GORM.
type GormRatingRepo struct {
	DB *gorm.DB
}

func NewGormRatingRepo(db *gorm.DB) *GormRatingRepo {
	return &GormRatingRepo{DB: db}
}

// Create appends a new rating record.
func (repo *GormRatingRepo) Create(rating *models.Rating) error {
	if err := repo.DB.Create(rating).Error; err != nil {
		return fmt.Errorf("failed to create rating: %w", err)
	}
	return nil
}

// AverageForProvider returns the arithmetic mean of all rating scores for
// the provider, or 0 when no ratings exist.
func (repo *GormRatingRepo) AverageForProvider(providerID uint) (float64, error) {
	var avg float64
	err := repo.DB.Model(&models.Rating{}).
		Where("provider_id = ?", providerID).
		Select("COALESCE(AVG(score), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to average ratings for provider %d: %w", providerID, err)
	}
	return avg, nil
}
