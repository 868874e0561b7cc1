package ranking

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"tableScout/domain"
	"tableScout/pkg/logger"
)

const rerankKeyPrefix = "ranking:rerank:"

// rerankCacheKey is the sorted identity list of the shortlist joined with the
// raw context text: a different candidate set or a different phrasing always
// misses.
func rerankCacheKey(shortlist []domain.Candidate, contextText string) string {
	ids := make([]uint64, len(shortlist))
	for i, c := range shortlist {
		ids[i] = c.Venue.ID
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var b strings.Builder
	b.WriteString(rerankKeyPrefix)
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(id, 10))
	}
	b.WriteByte('|')
	b.WriteString(contextText)

	return b.String()
}

// buildSummaries produces the compact per-candidate shape sent to the
// relevance scorer: identity, name, price tier, cuisine tags, attributes the
// venue explicitly has, and a few short review excerpts.
func (s *RankingService) buildSummaries(shortlist []domain.Candidate) []domain.CandidateSummary {
	summaries := make([]domain.CandidateSummary, 0, len(shortlist))

	for _, c := range shortlist {
		summary := domain.CandidateSummary{
			ID:        c.Venue.ID,
			Name:      c.Venue.VenueName,
			PriceTier: c.Venue.PriceTier,
		}

		for _, tag := range c.Venue.Tags {
			if tag.Category == "cuisine" {
				summary.CuisineTags = append(summary.CuisineTags, tag.TagName)
			}
		}

		for key, raw := range c.Venue.Attributes {
			if b, ok := raw.(bool); ok && b {
				summary.TrueAttributes = append(summary.TrueAttributes, key)
			}
		}
		sort.Strings(summary.TrueAttributes)

		for _, review := range c.Venue.Reviews {
			if len(summary.ReviewExcerpts) >= s.cfg.MaxReviewExcerpts {
				break
			}
			summary.ReviewExcerpts = append(summary.ReviewExcerpts, excerpt(review.Body, s.cfg.ExcerptMaxRunes))
		}

		summaries = append(summaries, summary)
	}

	return summaries
}

func excerpt(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes])
}

// applyRerank blends collaborator relevance scores into the ordering for page
// one. Candidates must be in primary order on entry; their index is the rank
// signal. The blend covers the full set, with shortlist-uncovered candidates
// treated as neutral rather than penalized. Returns false when no scores
// could be obtained, in which case the primary order is left untouched.
func (s *RankingService) applyRerank(ctx context.Context, candidates []domain.Candidate, contextText string, signals *domain.ContextSignals) bool {
	k := s.cfg.ShortlistSize
	if len(candidates) < k {
		k = len(candidates)
	}
	shortlist := candidates[:k]

	key := rerankCacheKey(shortlist, contextText)

	scores := make(map[uint64]float64)
	hit, err := s.rerankCache.Get(ctx, key, &scores)
	if err != nil {
		logger.Warn("rerank cache read failed", "error", err)
	}

	if hit {
		CacheLookupsTotal.WithLabelValues("rerank", "hit").Inc()
	} else {
		CacheLookupsTotal.WithLabelValues("rerank", "miss").Inc()

		summaries := s.buildSummaries(shortlist)
		scores, err = s.nluClient.ScoreRelevance(ctx, contextText, signals.SoftSignals, signals.Occasion, summaries)
		if err != nil {
			NLUCallsTotal.WithLabelValues("score_relevance", "failure").Inc()
			logger.Warn("contextual re-rank failed, keeping primary order", "error", err)
			return false
		}
		NLUCallsTotal.WithLabelValues("score_relevance", "success").Inc()

		if ctx.Err() == nil {
			if err := s.rerankCache.Set(ctx, key, scores, s.cfg.RerankTTL); err != nil {
				logger.Warn("rerank cache write failed", "error", err)
			}
		}
	}

	total := len(candidates)
	for i := range candidates {
		normalizedRank := 1.0
		if total > 1 {
			normalizedRank = 1 - float64(i)/float64(total-1)
		}

		relevance, covered := scores[candidates[i].Venue.ID]
		if !covered {
			relevance = s.cfg.NeutralRelevance
		}
		contextScore := relevance / 10

		candidates[i].BlendedScore = (s.cfg.WRank*normalizedRank + s.cfg.WContext*contextScore) * candidates[i].ConstraintScore
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].BlendedScore > candidates[j].BlendedScore
	})

	return true
}

// sortByConstraint orders deeper pages by the constraint penalty alone,
// keeping them consistent with page one's constraint-respecting ordering
// without another collaborator call. The sort is stable, so the primary order
// survives within equal scores.
func sortByConstraint(candidates []domain.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ConstraintScore > candidates[j].ConstraintScore
	})
}
