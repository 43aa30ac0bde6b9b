// File: urbanserve/services/matching/candidates.go
package matching

import (
	"math"
	"math/rand"
	"strings"

	"urbanserve/models"
)

// Filler ranges for profiles that carry no hourly rate. These are mock
// values: range-bounded, not deterministic.
const (
	workerPriceMin = 200
	workerPriceMax = 1500
	tutorPriceMin  = 300
	tutorPriceMax  = 2000
	distanceMinKm  = 1.0
	distanceMaxKm  = 12.0
)

// Derived tutor rating bounds. Approved tutors never score below the
// approval threshold, so the floor is cosmetic rather than a real filter.
const (
	tutorRatingFloor   = 3.5
	tutorRatingCeil    = 5.0
	tutorScoreFallback = 70
)

// candidate is the ranking view over both provider kinds: a worker or a
// tutor reduced to the shared sort keys and output fields.
type candidate struct {
	id         uint
	name       string
	category   string
	rating     float64
	trustScore float64
	hourlyRate *float64
	tutor      bool
}

// NormalizeCategory lowercases the input and collapses whitespace runs to
// single underscores, matching the closed vocabulary's spelling.
func NormalizeCategory(category string) string {
	return strings.Join(strings.Fields(strings.ToLower(category)), "_")
}

func workerCandidate(p models.WorkerProfile) candidate {
	return candidate{
		id:         p.UserID,
		name:       p.User.Name,
		category:   p.ServiceType,
		rating:     p.Rating,
		trustScore: p.User.TrustScore,
		hourlyRate: p.HourlyRate,
	}
}

func tutorCandidate(p models.TutorProfile) candidate {
	qs := tutorScoreFallback
	if p.QualificationScore != nil {
		qs = *p.QualificationScore
	}
	ss := tutorScoreFallback
	if p.SkillScore != nil {
		ss = *p.SkillScore
	}
	rating := round1(float64(qs+ss) / 40.0)
	rating = math.Max(tutorRatingFloor, math.Min(tutorRatingCeil, rating))

	return candidate{
		id:         p.UserID,
		name:       p.User.Name,
		category:   p.Subject,
		rating:     rating,
		trustScore: p.User.TrustScore,
		hourlyRate: p.HourlyRate,
		tutor:      true,
	}
}

func (c candidate) summary() models.ProviderSummary {
	price := 0.0
	if c.hourlyRate != nil {
		price = *c.hourlyRate
	} else if c.tutor {
		price = math.Round(uniform(tutorPriceMin, tutorPriceMax))
	} else {
		price = math.Round(uniform(workerPriceMin, workerPriceMax))
	}
	return models.ProviderSummary{
		ID:          c.id,
		Name:        c.name,
		ServiceType: c.category,
		Rating:      round1(c.rating),
		TrustScore:  round1(c.trustScore),
		Price:       price,
		Distance:    round1(uniform(distanceMinKm, distanceMaxKm)),
	}
}

func uniform(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
