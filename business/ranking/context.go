package ranking

import (
	"context"

	"tableScout/domain"
	"tableScout/pkg/logger"
)

const signalKeyPrefix = "ranking:signals:"

var knownMealPeriods = map[string]bool{
	domain.MealPeriodBreakfast: true,
	domain.MealPeriodBrunch:    true,
	domain.MealPeriodLunch:     true,
	domain.MealPeriodDinner:    true,
	domain.MealPeriodLateNight: true,
}

// extractSignals resolves context signals for the raw context text, cache
// first. It returns nil when no signals are available: cache miss plus a
// failed or cancelled collaborator call. The caller treats nil as "rank
// without context"; extraction is best-effort and never fails the request.
func (s *RankingService) extractSignals(ctx context.Context, contextText string) *domain.ContextSignals {
	key := signalKeyPrefix + contextText

	var cached domain.ContextSignals
	hit, err := s.signalCache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("signal cache read failed", "error", err)
	}
	if hit {
		CacheLookupsTotal.WithLabelValues("signals", "hit").Inc()
		return &cached
	}
	CacheLookupsTotal.WithLabelValues("signals", "miss").Inc()

	signals, err := s.nluClient.ExtractSignals(ctx, contextText)
	if err != nil {
		NLUCallsTotal.WithLabelValues("extract_signals", "failure").Inc()
		logger.Warn("context signal extraction failed, ranking without context", "error", err)
		return nil
	}
	NLUCallsTotal.WithLabelValues("extract_signals", "success").Inc()

	sanitizeSignals(&signals)

	// A cancelled request must not persist a half-completed computation.
	if ctx.Err() != nil {
		return nil
	}

	if err := s.signalCache.Set(ctx, key, signals, s.cfg.SignalTTL); err != nil {
		logger.Warn("signal cache write failed", "error", err)
	}

	return &signals
}

// sanitizeSignals enforces the signal invariants regardless of what the
// collaborator returned: hard constraints keep only literal true entries,
// the meal period must be a known value, and soft signals are capped at six.
func sanitizeSignals(signals *domain.ContextSignals) {
	constraints := make(map[string]bool, len(signals.HardConstraints))
	for key, val := range signals.HardConstraints {
		if val {
			constraints[key] = true
		}
	}
	signals.HardConstraints = constraints

	if !knownMealPeriods[signals.MealPeriod] {
		signals.MealPeriod = ""
	}

	if len(signals.SoftSignals) > 6 {
		signals.SoftSignals = signals.SoftSignals[:6]
	}
}
