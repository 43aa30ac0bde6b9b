// File: urbanserve/services/trust/score.go
package trust

import "math"

// Weights of the trust formula. The four terms sum to at most 100 when the
// cancellation penalty is zero.
const (
	aiApprovedBase      = 40.0
	completionMaxBonus  = 25.0
	cancellationMaxLoss = 20.0
	ratingMaxBonus      = 35.0
)

// Compute combines the AI verification outcome and behavioral history into
// a bounded trust score.
//
// Inputs: completionRate and cancellationRate in [0,1]; avgRating in [1,5],
// or 0 when the provider has no ratings yet. Deterministic and side-effect
// free; identical inputs always yield the identical score.
func Compute(aiApproved bool, completionRate, cancellationRate, avgRating float64) float64 {
	base := 0.0
	if aiApproved {
		base = aiApprovedBase
	}
	completionBonus := completionRate * completionMaxBonus
	cancellationPenalty := cancellationRate * cancellationMaxLoss

	ratingScore := 0.0
	if avgRating > 0 {
		// Map [1,5] onto [0,35].
		ratingScore = ((avgRating - 1) / 4) * ratingMaxBonus
	}

	score := base + completionBonus - cancellationPenalty + ratingScore
	score = math.Round(score*10) / 10
	return math.Max(0.0, math.Min(100.0, score))
}
