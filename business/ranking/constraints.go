package ranking

import "tableScout/domain"

// requiredSet builds the effective hard-requirement set from context signals:
// every hard constraint plus the meal period, when one was asserted.
func requiredSet(signals *domain.ContextSignals) map[string]bool {
	if signals == nil {
		return nil
	}

	required := make(map[string]bool, len(signals.HardConstraints)+1)
	for key, val := range signals.HardConstraints {
		if val {
			required[key] = true
		}
	}
	if signals.MealPeriod != "" {
		required[signals.MealPeriod] = true
	}

	return required
}

// ConstraintScore computes the multiplicative penalty for a venue against the
// required set. A violation is counted only when the venue explicitly says
// "false" for a required attribute; an unknown attribute never penalizes. The
// score is floored so a venue is deprioritized, never eliminated, by soft
// mismatch.
func (s *RankingService) ConstraintScore(venue *domain.Venue, signals *domain.ContextSignals) float64 {
	required := requiredSet(signals)
	if len(required) == 0 {
		return 1.0
	}

	violations := 0
	for key := range required {
		val, known := venue.BoolAttr(key)
		if known && !val {
			violations++
		}
	}

	score := 1.0 - float64(violations)*s.cfg.ConstraintStep
	if score < s.cfg.ConstraintFloor {
		score = s.cfg.ConstraintFloor
	}

	return score
}
