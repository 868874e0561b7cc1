package domain

// Meal periods the context extractor may assert. Stored as attribute keys on
// venues ("brunch": true means the venue serves brunch).
const (
	MealPeriodBreakfast = "breakfast"
	MealPeriodBrunch    = "brunch"
	MealPeriodLunch     = "lunch"
	MealPeriodDinner    = "dinner"
	MealPeriodLateNight = "late_night"
)

// PreferenceWeights is the caller-supplied weight vector for custom sorting.
// Weights are non-negative and need not sum to 1.
type PreferenceWeights struct {
	FoodQuality float64 `json:"foodQuality" validate:"gte=0"`
	Ambiance    float64 `json:"ambiance" validate:"gte=0"`
	Proximity   float64 `json:"proximity" validate:"gte=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Reviews     float64 `json:"reviews" validate:"gte=0"`
}

// ContextSignals is the structured result of parsing a free-text situational
// description. HardConstraints only ever holds true entries: parsing strips
// everything else, because a negative requirement cannot be checked against a
// venue whose attribute is simply unknown.
type ContextSignals struct {
	HardConstraints map[string]bool `json:"hard_constraints"`
	MealPeriod      string          `json:"meal_period,omitempty"`
	SoftSignals     []string        `json:"soft_signals"`
	Occasion        string          `json:"occasion"`
}

// VenueFilters are the structured (non-geo) filters pushed down to storage.
type VenueFilters struct {
	PriceTiers          []int
	MinRating           float64
	Types               []string
	DietaryRestrictions []string
}

// BoundingBox is a latitude/longitude rectangle used as a storage prefilter.
// It is a superset of the requested radius circle, never a subset.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// SignalValues holds the five normalized ranking signals, each in [0, 1].
type SignalValues struct {
	FoodQuality float64 `json:"foodQuality"`
	Ambiance    float64 `json:"ambiance"`
	Proximity   float64 `json:"proximity"`
	Price       float64 `json:"price"`
	Reviews     float64 `json:"reviews"`
}

// ScoreBreakdown exposes the preference score per signal so callers can audit
// how a total was produced.
type ScoreBreakdown struct {
	Raw      SignalValues `json:"raw"`
	Weighted SignalValues `json:"weighted"`
	Total    float64      `json:"total"`
}

// Candidate is a venue being evaluated in one ranking request. It is built
// fresh per request; the computed fields are filled in by pipeline stages.
type Candidate struct {
	Venue Venue `json:"venue"`

	DistanceMeters  float64         `json:"distance_meters"`
	PreferenceScore float64         `json:"preference_score"`
	Breakdown       *ScoreBreakdown `json:"breakdown,omitempty"`
	ConstraintScore float64         `json:"constraint_score"`
	BlendedScore    float64         `json:"blended_score"`
}

// CandidateSummary is the compact shape sent to the relevance scorer for
// shortlisted candidates.
type CandidateSummary struct {
	ID             uint64   `json:"id"`
	Name           string   `json:"name"`
	PriceTier      int      `json:"price_tier"`
	CuisineTags    []string `json:"cuisine_tags"`
	TrueAttributes []string `json:"attributes"`
	ReviewExcerpts []string `json:"review_excerpts"`
}

// VenuePresentation is the outbound shape for a ranked venue.
type VenuePresentation struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Latitude       float64         `json:"latitude"`
	Longitude      float64         `json:"longitude"`
	PriceTier      int             `json:"price_tier"`
	Rating         float64         `json:"rating"`
	ReviewCount    int             `json:"review_count"`
	DistanceMeters float64         `json:"distance_meters"`
	Tags           []string        `json:"tags"`
	HeroReview     string          `json:"hero_review,omitempty"`
	Breakdown      *ScoreBreakdown `json:"score_breakdown,omitempty"`

	// Debug-only ranking components.
	ConstraintScore *float64 `json:"constraint_score,omitempty"`
	BlendedScore    *float64 `json:"blended_score,omitempty"`
}
