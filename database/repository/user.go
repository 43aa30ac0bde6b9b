// database/repository/user.go
package repository

import (
	"errors"
	"fmt"

	"urbanserve/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// UserRepository defines the interface for user data access.
type UserRepository interface {
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	UpdateTrustScore(id uint, score float64) error
}

// GormUserRepo implements UserRepository using GORM.
type GormUserRepo struct {
	DB *gorm.DB
}

func NewGormUserRepo(db *gorm.DB) *GormUserRepo {
	return &GormUserRepo{DB: db}
}

// GetByID retrieves a user by their ID.
func (repo *GormUserRepo) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := repo.DB.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve user with id %d: %w", id, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email.
func (repo *GormUserRepo) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := repo.DB.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve user with email %s: %w", email, err)
	}
	return &user, nil
}

// Create inserts a new user record into the database.
func (repo *GormUserRepo) Create(user *models.User) error {
	if err := repo.DB.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateTrustScore persists a newly computed trust score in a single write.
func (repo *GormUserRepo) UpdateTrustScore(id uint, score float64) error {
	if err := repo.DB.Model(&models.User{}).Where("id = ?", id).
		Update("trust_score", score).Error; err != nil {
		return fmt.Errorf("failed to update trust score for user %d: %w", id, err)
	}
	return nil
}
