package ranking

import (
	"context"
	"errors"
	"testing"

	"tableScout/domain"
)

func TestExtractSignals_CacheHitSkipsCollaborator(t *testing.T) {
	nlu := &fakeNLU{
		signals: domain.ContextSignals{SoftSignals: []string{"cozy", "warm", "quiet"}},
	}
	svc := newTestService(&fakeVenueRepo{}, nlu)

	first := svc.extractSignals(context.Background(), "dinner with parents")
	if first == nil {
		t.Fatal("expected signals")
	}
	second := svc.extractSignals(context.Background(), "dinner with parents")
	if second == nil {
		t.Fatal("expected cached signals")
	}

	if nlu.extractCalls != 1 {
		t.Errorf("extract calls = %d, want exactly 1", nlu.extractCalls)
	}
	if len(second.SoftSignals) != 3 {
		t.Errorf("cached signals lost data: %+v", second)
	}
}

func TestExtractSignals_DifferentPhrasingMisses(t *testing.T) {
	nlu := &fakeNLU{signals: domain.ContextSignals{Occasion: "dinner"}}
	svc := newTestService(&fakeVenueRepo{}, nlu)

	svc.extractSignals(context.Background(), "dinner with parents")
	svc.extractSignals(context.Background(), "dinner with my parents")

	if nlu.extractCalls != 2 {
		t.Errorf("extract calls = %d, want 2 for distinct phrasings", nlu.extractCalls)
	}
}

func TestExtractSignals_FailureReturnsNil(t *testing.T) {
	nlu := &fakeNLU{signalsErr: errors.New("upstream 503")}
	svc := newTestService(&fakeVenueRepo{}, nlu)

	if got := svc.extractSignals(context.Background(), "any text"); got != nil {
		t.Errorf("expected nil on collaborator failure, got %+v", got)
	}

	// Failure is not cached; the next request tries again.
	svc.extractSignals(context.Background(), "any text")
	if nlu.extractCalls != 2 {
		t.Errorf("extract calls = %d, want 2 (failures are not cached)", nlu.extractCalls)
	}
}

func TestExtractSignals_CancelledRequestWritesNoCacheEntry(t *testing.T) {
	nlu := &fakeNLU{signals: domain.ContextSignals{Occasion: "brunch"}}
	svc := newTestService(&fakeVenueRepo{}, nlu)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := svc.extractSignals(ctx, "weekend brunch"); got != nil {
		t.Error("cancelled extraction must not return signals")
	}

	// A fresh request must miss and call the collaborator again.
	svc.extractSignals(context.Background(), "weekend brunch")
	if nlu.extractCalls != 2 {
		t.Errorf("extract calls = %d, want 2 (cancelled call must not populate cache)", nlu.extractCalls)
	}
}

func TestSanitizeSignals(t *testing.T) {
	signals := domain.ContextSignals{
		HardConstraints: map[string]bool{
			"outdoorSeating": true,
			"liveMusic":      false,
		},
		MealPeriod:  "second breakfast",
		SoftSignals: []string{"a", "b", "c", "d", "e", "f", "g", "h"},
		Occasion:    "birthday",
	}

	sanitizeSignals(&signals)

	if len(signals.HardConstraints) != 1 || !signals.HardConstraints["outdoorSeating"] {
		t.Errorf("hard constraints = %v, want only outdoorSeating", signals.HardConstraints)
	}
	for key, val := range signals.HardConstraints {
		if !val {
			t.Errorf("constraint %q stored as false", key)
		}
	}
	if signals.MealPeriod != "" {
		t.Errorf("unknown meal period kept: %q", signals.MealPeriod)
	}
	if len(signals.SoftSignals) != 6 {
		t.Errorf("soft signals = %d, want capped at 6", len(signals.SoftSignals))
	}
}
