package ranking

import "time"

// Config carries the tunables of the ranking pipeline. Zero values are never
// used directly; construct with DefaultConfig and override.
type Config struct {
	// DefaultRadius is used when the request does not specify one (meters).
	DefaultRadius float64

	// ShortlistSize is how many primary-sorted candidates are sent to the
	// relevance scorer on page 1.
	ShortlistSize int

	DefaultPageSize int
	MaxPageSize     int

	// Blend weights for the final ordering on page 1 with context.
	WRank    float64
	WContext float64

	// NeutralRelevance is assumed for candidates outside the shortlist (0-10).
	NeutralRelevance float64

	// Constraint penalty: score = max(floor, 1 - violations*step).
	ConstraintStep  float64
	ConstraintFloor float64

	SignalTTL time.Duration
	RerankTTL time.Duration

	MaxReviewExcerpts int
	ExcerptMaxRunes   int
}

const (
	defaultRadiusMeters     = 5000.0
	defaultShortlistSize    = 20
	defaultPageSize         = 10
	defaultMaxPageSize      = 50
	defaultWRank            = 0.4
	defaultWContext         = 0.6
	defaultNeutralRelevance = 5.0
	defaultConstraintStep   = 0.4
	defaultConstraintFloor  = 0.1
	defaultSignalTTL        = 30 * time.Minute
	defaultRerankTTL        = 20 * time.Minute
	defaultMaxExcerpts      = 3
	defaultExcerptMaxRunes  = 140
)

func DefaultConfig() Config {
	return Config{
		DefaultRadius:     defaultRadiusMeters,
		ShortlistSize:     defaultShortlistSize,
		DefaultPageSize:   defaultPageSize,
		MaxPageSize:       defaultMaxPageSize,
		WRank:             defaultWRank,
		WContext:          defaultWContext,
		NeutralRelevance:  defaultNeutralRelevance,
		ConstraintStep:    defaultConstraintStep,
		ConstraintFloor:   defaultConstraintFloor,
		SignalTTL:         defaultSignalTTL,
		RerankTTL:         defaultRerankTTL,
		MaxReviewExcerpts: defaultMaxExcerpts,
		ExcerptMaxRunes:   defaultExcerptMaxRunes,
	}
}
