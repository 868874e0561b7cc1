package ranking

import (
	"context"
	"strings"
	"testing"

	"tableScout/domain"
)

func candidatesFromIDs(ids ...uint64) []domain.Candidate {
	out := make([]domain.Candidate, len(ids))
	for i, id := range ids {
		out[i] = domain.Candidate{
			Venue:           domain.Venue{ID: id},
			ConstraintScore: 1.0,
		}
	}
	return out
}

func TestRerankCacheKey(t *testing.T) {
	a := candidatesFromIDs(3, 1, 2)
	b := candidatesFromIDs(2, 3, 1)

	if rerankCacheKey(a, "text") != rerankCacheKey(b, "text") {
		t.Error("key must not depend on shortlist order")
	}
	if rerankCacheKey(a, "text") == rerankCacheKey(a, "other text") {
		t.Error("different context text must produce a different key")
	}
	if rerankCacheKey(a, "text") == rerankCacheKey(candidatesFromIDs(3, 1), "text") {
		t.Error("different candidate set must produce a different key")
	}
}

func TestBuildSummaries(t *testing.T) {
	svc := newTestService(&fakeVenueRepo{}, &fakeNLU{})

	long := strings.Repeat("x", 500)
	candidates := []domain.Candidate{{
		Venue: domain.Venue{
			ID:        7,
			VenueName: "Trattoria",
			PriceTier: 3,
			Tags: []domain.VenueTag{
				{TagName: "italian", Category: "cuisine"},
				{TagName: "vegan", Category: "dietary"},
			},
			Attributes: map[string]interface{}{
				"outdoorSeating": true,
				"liveMusic":      false,
			},
			Reviews: []domain.VenueReview{
				{Body: long},
				{Body: "great pasta"},
				{Body: "lovely patio"},
				{Body: "fourth review"},
			},
		},
	}}

	summaries := svc.buildSummaries(candidates)
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries", len(summaries))
	}
	s := summaries[0]

	if s.ID != 7 || s.Name != "Trattoria" || s.PriceTier != 3 {
		t.Errorf("summary identity wrong: %+v", s)
	}
	if len(s.CuisineTags) != 1 || s.CuisineTags[0] != "italian" {
		t.Errorf("cuisine tags = %v, want only cuisine-category tags", s.CuisineTags)
	}
	if len(s.TrueAttributes) != 1 || s.TrueAttributes[0] != "outdoorSeating" {
		t.Errorf("true attributes = %v, want only explicitly-true ones", s.TrueAttributes)
	}
	if len(s.ReviewExcerpts) != 3 {
		t.Errorf("review excerpts = %d, want capped at 3", len(s.ReviewExcerpts))
	}
	if len([]rune(s.ReviewExcerpts[0])) != 140 {
		t.Errorf("long review excerpt length = %d, want 140", len([]rune(s.ReviewExcerpts[0])))
	}
}

func TestApplyRerank_NeutralDefaultForUncovered(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShortlistSize = 2
	nlu := &fakeNLU{
		signals: domain.ContextSignals{},
		scores:  map[uint64]float64{1: 5, 2: 5},
	}
	svc := NewRankingService(&fakeVenueRepo{}, nlu, NewMemoryCache(), NewMemoryCache(), cfg)

	// Three candidates, shortlist of two: the third is uncovered and gets
	// the neutral 5/10, not zero.
	candidates := candidatesFromIDs(1, 2, 3)
	ok := svc.applyRerank(context.Background(), candidates, "ctx", &domain.ContextSignals{})
	if !ok {
		t.Fatal("rerank should succeed")
	}

	if len(nlu.lastSummaries) != 2 {
		t.Fatalf("shortlist size sent = %d, want 2", len(nlu.lastSummaries))
	}

	// All context scores are 0.5, so the blend preserves the rank order.
	want := []uint64{1, 2, 3}
	for i := range want {
		if candidates[i].Venue.ID != want[i] {
			t.Fatalf("order changed despite uniform scores: %v at %d", candidates[i].Venue.ID, i)
		}
	}

	// id 3 (uncovered, rank 0): 0.6*0.5 = 0.3
	if !approx(candidates[2].BlendedScore, 0.3) {
		t.Errorf("uncovered blend = %f, want 0.3", candidates[2].BlendedScore)
	}
}

func TestApplyRerank_SingleCandidateRankIsOne(t *testing.T) {
	nlu := &fakeNLU{scores: map[uint64]float64{1: 10}}
	svc := newTestService(&fakeVenueRepo{}, nlu)

	candidates := candidatesFromIDs(1)
	if ok := svc.applyRerank(context.Background(), candidates, "ctx", &domain.ContextSignals{}); !ok {
		t.Fatal("rerank should succeed")
	}

	// rank 1.0, context 1.0: 0.4 + 0.6 = 1.0
	if !approx(candidates[0].BlendedScore, 1.0) {
		t.Errorf("blend = %f, want 1.0", candidates[0].BlendedScore)
	}
}

func TestApplyRerank_FailureLeavesOrderUntouched(t *testing.T) {
	nlu := &fakeNLU{scoresErr: context.DeadlineExceeded}
	svc := newTestService(&fakeVenueRepo{}, nlu)

	candidates := candidatesFromIDs(10, 20, 30)
	candidates[2].ConstraintScore = 0.1

	if ok := svc.applyRerank(context.Background(), candidates, "ctx", &domain.ContextSignals{}); ok {
		t.Fatal("rerank should report failure")
	}

	want := []uint64{10, 20, 30}
	for i := range want {
		if candidates[i].Venue.ID != want[i] {
			t.Fatalf("failed rerank reordered candidates: %v", candidates)
		}
	}
}

func TestApplyRerank_CancelledRequestWritesNoCacheEntry(t *testing.T) {
	nlu := &fakeNLU{scores: map[uint64]float64{1: 8}}
	svc := newTestService(&fakeVenueRepo{}, nlu)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	candidates := candidatesFromIDs(1)
	svc.applyRerank(ctx, candidates, "busy night", &domain.ContextSignals{})

	// A fresh request with the same key must miss the cache.
	fresh := candidatesFromIDs(1)
	svc.applyRerank(context.Background(), fresh, "busy night", &domain.ContextSignals{})

	if nlu.scoreCalls != 2 {
		t.Errorf("relevance calls = %d, want 2 (cancelled call must not populate cache)", nlu.scoreCalls)
	}
}

func TestSortByConstraint_StableWithinEqualScores(t *testing.T) {
	candidates := candidatesFromIDs(1, 2, 3, 4)
	candidates[0].ConstraintScore = 0.6
	candidates[2].ConstraintScore = 0.6

	sortByConstraint(candidates)

	want := []uint64{2, 4, 1, 3}
	for i := range want {
		if candidates[i].Venue.ID != want[i] {
			got := []uint64{candidates[0].Venue.ID, candidates[1].Venue.ID, candidates[2].Venue.ID, candidates[3].Venue.ID}
			t.Fatalf("constraint sort = %v, want %v", got, want)
		}
	}
}
