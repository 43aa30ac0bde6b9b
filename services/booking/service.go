// File: urbanserve/services/booking/service.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"math"

	"urbanserve/database/repository"
	"urbanserve/models"
	"urbanserve/services/trust"
	"urbanserve/utils"

	"go.uber.org/zap"
)

// CreateInput holds a customer's booking request.
type CreateInput struct {
	ProviderID  uint    `json:"provider_id"`
	ServiceType string  `json:"service_type"`
	Subject     string  `json:"subject,omitempty"`
	TotalPrice  float64 `json:"total_price"`
}

// BookingService defines the booking lifecycle operations.
type BookingService interface {
	Create(ctx context.Context, customerID uint, input CreateInput) (*models.Booking, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, actorID uint, status string) (*models.Booking, error)
}

// DefaultBookingService implements the lifecycle state machine and the
// synchronous trust feedback on completion.
type DefaultBookingService struct {
	UserRepo       repository.UserRepository
	WorkerRepo     repository.WorkerProfileRepository
	TutorRepo      repository.TutorProfileRepository
	BookingRepo    repository.BookingRepository
	RatingRepo     repository.RatingRepository
	CommissionRate float64
}

// Create validates the provider and category, freezes the commission split
// and inserts the booking in pending state.
func (s *DefaultBookingService) Create(ctx context.Context, customerID uint, input CreateInput) (*models.Booking, error) {
	if input.TotalPrice <= 0 {
		return nil, ValidationError{Reason: "total_price must be greater than zero"}
	}

	provider, err := s.UserRepo.GetByID(input.ProviderID)
	if err != nil {
		return nil, err
	}

	switch provider.Role {
	case models.RoleWorker:
		profile, err := s.WorkerRepo.GetByUserID(provider.ID)
		if err != nil || profile.VerificationStatus != models.VerificationApproved {
			return nil, ValidationError{Reason: "Provider is not approved"}
		}
		if profile.ServiceType != input.ServiceType {
			return nil, ValidationError{Reason: "Service type mismatch"}
		}
	case models.RoleTutor:
		profile, err := s.TutorRepo.GetByUserID(provider.ID)
		if err != nil || profile.VerificationStatus != models.VerificationApproved {
			return nil, ValidationError{Reason: "Provider is not approved"}
		}
		// Tutors match on an explicit subject or on the overloaded
		// service_type field.
		subjectMatch := (input.Subject != "" && input.Subject == profile.Subject) ||
			(input.ServiceType != "" && input.ServiceType == profile.Subject)
		if !subjectMatch {
			return nil, ValidationError{Reason: "Subject mismatch"}
		}
	default:
		return nil, ValidationError{Reason: "Selected user is not a provider"}
	}

	commission, earning := splitCommission(input.TotalPrice, s.CommissionRate)
	booking := &models.Booking{
		CustomerID:       customerID,
		ProviderID:       provider.ID,
		ServiceType:      input.ServiceType,
		Subject:          input.Subject,
		TotalPrice:       input.TotalPrice,
		CommissionAmount: commission,
		ProviderEarning:  earning,
		Status:           models.BookingPending,
	}
	if err := s.BookingRepo.Create(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// ListForUser returns all bookings where the user is either party.
func (s *DefaultBookingService) ListForUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	return s.BookingRepo.ListForUser(userID)
}

// UpdateStatus applies one forward transition of the state machine:
// pending -> accepted -> completed, or pending/accepted -> cancelled.
// Completion synchronously recomputes the provider's trust score.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID, actorID uint, status string) (*models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	if status != models.BookingAccepted && status != models.BookingCompleted && status != models.BookingCancelled {
		return nil, ValidationError{Reason: "Invalid status"}
	}
	if err := checkTransition(booking.Status, status); err != nil {
		return nil, err
	}

	switch status {
	case models.BookingAccepted:
		if booking.ProviderID != actorID {
			return nil, AuthorizationError{Reason: "Only the provider can accept a booking"}
		}
	case models.BookingCompleted, models.BookingCancelled:
		if booking.CustomerID != actorID && booking.ProviderID != actorID {
			return nil, AuthorizationError{Reason: "Only the customer or provider can complete or cancel"}
		}
	}

	booking.Status = status
	if err := s.BookingRepo.Save(booking); err != nil {
		return nil, err
	}

	if status == models.BookingCompleted {
		if err := s.recomputeTrust(booking.ProviderID); err != nil {
			return nil, fmt.Errorf("booking completed but trust update failed: %w", err)
		}
	}
	return booking, nil
}

// checkTransition enforces the forward-only state machine. completed and
// cancelled are terminal for every subsequent attempt.
func checkTransition(current, next string) error {
	switch current {
	case models.BookingPending:
		if next == models.BookingAccepted || next == models.BookingCancelled {
			return nil
		}
	case models.BookingAccepted:
		if next == models.BookingCompleted || next == models.BookingCancelled {
			return nil
		}
	case models.BookingCompleted, models.BookingCancelled:
		return ValidationError{Reason: fmt.Sprintf("Booking is already %s", current)}
	}
	return ValidationError{Reason: fmt.Sprintf("Cannot move booking from %s to %s", current, next)}
}

// recomputeTrust rebuilds the provider's trust score from their full
// booking and rating history and persists it.
func (s *DefaultBookingService) recomputeTrust(providerID uint) error {
	total, err := s.BookingRepo.CountForProvider(providerID)
	if err != nil {
		return err
	}
	completed, err := s.BookingRepo.CountForProviderByStatus(providerID, models.BookingCompleted)
	if err != nil {
		return err
	}
	cancelled, err := s.BookingRepo.CountForProviderByStatus(providerID, models.BookingCancelled)
	if err != nil {
		return err
	}

	var completionRate, cancellationRate float64
	if total > 0 {
		completionRate = float64(completed) / float64(total)
		cancellationRate = float64(cancelled) / float64(total)
	}

	avgRating, err := s.RatingRepo.AverageForProvider(providerID)
	if err != nil {
		return err
	}

	aiApproved := false
	if wp, err := s.WorkerRepo.GetByUserID(providerID); err == nil {
		aiApproved = wp.VerificationStatus == models.VerificationApproved
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if !aiApproved {
		if tp, err := s.TutorRepo.GetByUserID(providerID); err == nil {
			aiApproved = tp.VerificationStatus == models.VerificationApproved
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}

	score := trust.Compute(aiApproved, completionRate, cancellationRate, avgRating)
	if err := s.UserRepo.UpdateTrustScore(providerID, score); err != nil {
		return err
	}
	utils.GetLogger().Info("trust score recomputed",
		zap.Uint("provider_id", providerID),
		zap.Float64("trust_score", score))
	return nil
}

// splitCommission freezes the platform's cut at creation time. The two
// parts always sum back to the total at 2 decimals.
func splitCommission(totalPrice, rate float64) (commission, earning float64) {
	commission = round2(totalPrice * rate)
	earning = round2(totalPrice - commission)
	return commission, earning
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
