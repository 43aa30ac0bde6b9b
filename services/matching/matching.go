// File: urbanserve/services/matching/matching.go
package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"urbanserve/database/repository"
	"urbanserve/models"
	"urbanserve/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheTTL = 30 * time.Second

// MatchingService ranks approved providers for a requested category.
type MatchingService interface {
	RankProviders(ctx context.Context, category string, limit int, preferRating bool) ([]models.ProviderSummary, error)
}

// DefaultMatchingService implements MatchingService over the worker and
// tutor repositories, with an optional Redis cache in front.
type DefaultMatchingService struct {
	WorkerRepo repository.WorkerProfileRepository
	TutorRepo  repository.TutorProfileRepository
	Cache      *redis.Client // nil disables caching
}

// RankProviders returns at most limit approved providers in the category,
// ordered by trust score (default) or by rating when preferRating is set.
// Unrecognized categories yield an empty sequence, not an error.
func (s *DefaultMatchingService) RankProviders(ctx context.Context, category string, limit int, preferRating bool) ([]models.ProviderSummary, error) {
	category = NormalizeCategory(category)

	if cached, ok := s.cacheGet(ctx, category, preferRating, limit); ok {
		return cached, nil
	}

	var (
		candidates []candidate
		err        error
	)
	switch {
	case models.IsHomeServiceType(category):
		candidates, err = s.workerCandidates(category)
	case models.IsTutorSubject(category):
		candidates, err = s.tutorCandidates(category)
	default:
		return []models.ProviderSummary{}, nil
	}
	if err != nil {
		return nil, err
	}

	rank(candidates, preferRating)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]models.ProviderSummary, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, c.summary())
	}

	s.cachePut(ctx, category, preferRating, limit, results)
	return results, nil
}

func (s *DefaultMatchingService) workerCandidates(serviceType string) ([]candidate, error) {
	profiles, err := s.WorkerRepo.FindApprovedByService(serviceType)
	if err != nil {
		return nil, err
	}
	candidates := make([]candidate, 0, len(profiles))
	for _, p := range profiles {
		candidates = append(candidates, workerCandidate(p))
	}
	return candidates, nil
}

func (s *DefaultMatchingService) tutorCandidates(subject string) ([]candidate, error) {
	profiles, err := s.TutorRepo.FindApprovedBySubject(subject)
	if err != nil {
		return nil, err
	}
	candidates := make([]candidate, 0, len(profiles))
	for _, p := range profiles {
		candidates = append(candidates, tutorCandidate(p))
	}
	return candidates, nil
}

// rank orders candidates in place. Default order is trust score descending
// with rating as tie-break; the urgent order flips the two keys.
func rank(candidates []candidate, preferRating bool) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if preferRating {
			if a.rating != b.rating {
				return a.rating > b.rating
			}
			return a.trustScore > b.trustScore
		}
		if a.trustScore != b.trustScore {
			return a.trustScore > b.trustScore
		}
		return a.rating > b.rating
	})
}

func (s *DefaultMatchingService) cacheKey(category string, preferRating bool, limit int) string {
	return fmt.Sprintf("match:%s:%t:%d", category, preferRating, limit)
}

func (s *DefaultMatchingService) cacheGet(ctx context.Context, category string, preferRating bool, limit int) ([]models.ProviderSummary, bool) {
	if s.Cache == nil {
		return nil, false
	}
	data, err := s.Cache.Get(ctx, s.cacheKey(category, preferRating, limit)).Result()
	if err != nil {
		return nil, false
	}
	var results []models.ProviderSummary
	if err := json.Unmarshal([]byte(data), &results); err != nil {
		return nil, false
	}
	return results, true
}

func (s *DefaultMatchingService) cachePut(ctx context.Context, category string, preferRating bool, limit int, results []models.ProviderSummary) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, s.cacheKey(category, preferRating, limit), data, cacheTTL).Err(); err != nil {
		utils.GetLogger().Debug("ranking cache write failed", zap.Error(err))
	}
}
