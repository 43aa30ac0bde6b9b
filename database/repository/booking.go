// database/repository/booking.go
package repository

import (
	"errors"
	"fmt"

	"urbanserve/models"

	"gorm.io/gorm"
)

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	GetByID(id uint) (*models.Booking, error)
	Create(booking *models.Booking) error
	Save(booking *models.Booking) error
	ListForUser(userID uint) ([]models.Booking, error)
	CountForProvider(providerID uint) (int64, error)
	CountForProviderByStatus(providerID uint, status string) (int64, error)
}

// GormBookingRepo implements BookingRepository using GORM.
type GormBookingRepo struct {
	DB *gorm.DB
}

func NewGormBookingRepo(db *gorm.DB) *GormBookingRepo {
	return &GormBookingRepo{DB: db}
}

// GetByID retrieves a booking by its ID.
func (repo *GormBookingRepo) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	err := repo.DB.First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve booking %d: %w", id, err)
	}
	return &booking, nil
}

// Create inserts a new booking record.
func (repo *GormBookingRepo) Create(booking *models.Booking) error {
	if err := repo.DB.Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// Save persists the updated booking record.
func (repo *GormBookingRepo) Save(booking *models.Booking) error {
	if err := repo.DB.Save(booking).Error; err != nil {
		return fmt.Errorf("failed to update booking %d: %w", booking.ID, err)
	}
	return nil
}

// ListForUser retrieves all bookings where the user is either party,
// newest first.
func (repo *GormBookingRepo) ListForUser(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := repo.DB.Where("customer_id = ? OR provider_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for user %d: %w", userID, err)
	}
	return bookings, nil
}

// CountForProvider counts all bookings assigned to the provider.
func (repo *GormBookingRepo) CountForProvider(providerID uint) (int64, error) {
	var count int64
	err := repo.DB.Model(&models.Booking{}).
		Where("provider_id = ?", providerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings for provider %d: %w", providerID, err)
	}
	return count, nil
}

// CountForProviderByStatus counts the provider's bookings in the given status.
func (repo *GormBookingRepo) CountForProviderByStatus(providerID uint, status string) (int64, error) {
	var count int64
	err := repo.DB.Model(&models.Booking{}).
		Where("provider_id = ? AND status = ?", providerID, status).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count %s bookings for provider %d: %w", status, providerID, err)
	}
	return count, nil
}
