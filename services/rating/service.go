// File: urbanserve/services/rating/service.go
package rating

import (
	"context"
	"errors"

	"urbanserve/database/repository"
	"urbanserve/models"
)

// ValidationError is a client-fault rejection with a human-readable reason.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// CreateInput holds a customer's rating submission.
type CreateInput struct {
	ProviderID uint    `json:"provider_id"`
	BookingID  *uint   `json:"booking_id,omitempty"`
	Score      float64 `json:"score"`
	Comment    string  `json:"comment,omitempty"`
}

// RatingService appends customer feedback and maintains the worker-side
// running average.
type RatingService interface {
	Create(ctx context.Context, customerID uint, input CreateInput) (*models.Rating, error)
}

// DefaultRatingService implements RatingService.
type DefaultRatingService struct {
	RatingRepo repository.RatingRepository
	WorkerRepo repository.WorkerProfileRepository
}

// Create validates the score, appends the rating and refreshes the
// provider's worker-profile running average. Tutor profiles keep their
// qualification-derived rating; real ratings only reach tutors through the
// trust score on booking completion.
func (s *DefaultRatingService) Create(ctx context.Context, customerID uint, input CreateInput) (*models.Rating, error) {
	if input.Score < 1 || input.Score > 5 {
		return nil, ValidationError{Reason: "Score must be 1-5"}
	}

	rating := &models.Rating{
		CustomerID: customerID,
		ProviderID: input.ProviderID,
		BookingID:  input.BookingID,
		Score:      input.Score,
		Comment:    input.Comment,
	}
	if err := s.RatingRepo.Create(rating); err != nil {
		return nil, err
	}

	avg, err := s.RatingRepo.AverageForProvider(input.ProviderID)
	if err != nil {
		return nil, err
	}
	if err := s.WorkerRepo.UpdateRating(input.ProviderID, avg); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}
	return rating, nil
}
