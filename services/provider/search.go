// File: urbanserve/services/provider/search.go
package provider

import (
	"context"

	"urbanserve/models"
)

// SearchResult is one approved provider row in the public directory.
type SearchResult struct {
	ID                 uint     `json:"id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Role               string   `json:"role"`
	TrustScore         float64  `json:"trust_score"`
	ServiceType        string   `json:"service_type,omitempty"`
	Subject            string   `json:"subject,omitempty"`
	VerificationStatus string   `json:"verification_status"`
	Rating             *float64 `json:"rating,omitempty"`
	QualificationScore *int     `json:"qualification_score,omitempty"`
	SkillScore         *int     `json:"skill_score,omitempty"`
	ProfileSummary     string   `json:"profile_summary,omitempty"`
	Price              *float64 `json:"price,omitempty"`
}

// Search lists approved providers by exact category match. Unknown
// categories simply contribute no rows. Both filters may be combined.
func (s *DefaultProviderService) Search(ctx context.Context, serviceType, subject string) ([]SearchResult, error) {
	results := []SearchResult{}

	if serviceType != "" && models.IsHomeServiceType(serviceType) {
		workers, err := s.WorkerRepo.FindApprovedByService(serviceType)
		if err != nil {
			return nil, err
		}
		for i := range workers {
			p := workers[i]
			rating := p.Rating
			results = append(results, SearchResult{
				ID:                 p.User.ID,
				Name:               p.User.Name,
				Email:              p.User.Email,
				Role:               models.RoleWorker,
				TrustScore:         p.User.TrustScore,
				ServiceType:        p.ServiceType,
				VerificationStatus: p.VerificationStatus,
				Rating:             &rating,
				Price:              p.HourlyRate,
			})
		}
	}

	if subject != "" && models.IsTutorSubject(subject) {
		tutors, err := s.TutorRepo.FindApprovedBySubject(subject)
		if err != nil {
			return nil, err
		}
		for i := range tutors {
			p := tutors[i]
			results = append(results, SearchResult{
				ID:                 p.User.ID,
				Name:               p.User.Name,
				Email:              p.User.Email,
				Role:               models.RoleTutor,
				TrustScore:         p.User.TrustScore,
				Subject:            p.Subject,
				VerificationStatus: p.VerificationStatus,
				QualificationScore: p.QualificationScore,
				SkillScore:         p.SkillScore,
				ProfileSummary:     p.ProfileSummary,
				Price:              p.HourlyRate,
			})
		}
	}

	return results, nil
}
