package ranking

import (
	"math"

	"tableScout/domain"
)

// ScoreCandidate computes the weighted preference score for a candidate whose
// DistanceMeters is already set. A nil weight vector makes the feature inert:
// every candidate scores 0 and the breakdown is all zeros.
//
// Normalization is fixed:
//   - foodQuality: quality_score if set, else rating*2, then /10
//   - ambiance:    ambiance_score/10 (stored on a 0-10 scale)
//   - proximity:   1 - distance/radius
//   - price:       1 - (tier-1)/3, cheaper is higher
//   - reviews:     min(count/50, 1)
func ScoreCandidate(c *domain.Candidate, radiusMeters float64, weights *domain.PreferenceWeights) domain.ScoreBreakdown {
	var breakdown domain.ScoreBreakdown
	if weights == nil {
		return breakdown
	}

	v := c.Venue

	foodQuality := v.QualityScore
	if foodQuality <= 0 {
		foodQuality = v.Rating * 2
	}
	breakdown.Raw.FoodQuality = foodQuality / 10

	breakdown.Raw.Ambiance = v.AmbianceScore / 10

	if radiusMeters > 0 {
		breakdown.Raw.Proximity = 1 - c.DistanceMeters/radiusMeters
	}

	breakdown.Raw.Price = 1 - float64(v.PriceTier-1)/3

	breakdown.Raw.Reviews = math.Min(float64(v.ReviewCount)/50, 1)

	breakdown.Weighted = domain.SignalValues{
		FoodQuality: breakdown.Raw.FoodQuality * weights.FoodQuality,
		Ambiance:    breakdown.Raw.Ambiance * weights.Ambiance,
		Proximity:   breakdown.Raw.Proximity * weights.Proximity,
		Price:       breakdown.Raw.Price * weights.Price,
		Reviews:     breakdown.Raw.Reviews * weights.Reviews,
	}

	breakdown.Total = breakdown.Weighted.FoodQuality +
		breakdown.Weighted.Ambiance +
		breakdown.Weighted.Proximity +
		breakdown.Weighted.Price +
		breakdown.Weighted.Reviews

	return breakdown
}

// AmbianceIsTopPriority reports whether ambiance is among the two
// highest-weighted signals. Presentation uses this to prefer ambiance-tagged
// media and reviews; it never changes the ranking itself.
func AmbianceIsTopPriority(weights *domain.PreferenceWeights) bool {
	if weights == nil {
		return false
	}

	higher := 0
	for _, w := range []float64{
		weights.FoodQuality,
		weights.Proximity,
		weights.Price,
		weights.Reviews,
	} {
		if w > weights.Ambiance {
			higher++
		}
	}

	return higher < 2
}
