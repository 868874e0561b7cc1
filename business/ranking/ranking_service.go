package ranking

import (
	"context"
	"fmt"
	"sort"

	"tableScout/domain"
)

// ---- Repository interfaces ----

// VenueRepository is the storage collaborator boundary. The bounding box is a
// geographic superset prefilter; callers re-apply exact distance filtering.
type VenueRepository interface {
	FindCandidates(ctx context.Context, box domain.BoundingBox, filters domain.VenueFilters) ([]domain.Venue, error)
}

// NLUClient is the external natural-language understanding collaborator.
// Both operations are single-attempt and must honor context cancellation.
type NLUClient interface {
	ExtractSignals(ctx context.Context, contextText string) (domain.ContextSignals, error)
	ScoreRelevance(ctx context.Context, contextText string, softSignals []string, occasion string, summaries []domain.CandidateSummary) (map[uint64]float64, error)
}

// ---- Usecase / Service ----

type RankingService struct {
	venueRepo   VenueRepository
	nluClient   NLUClient
	signalCache Cache
	rerankCache Cache
	cfg         Config
}

func NewRankingService(
	venueRepo VenueRepository,
	nluClient NLUClient,
	signalCache Cache,
	rerankCache Cache,
	cfg Config,
) *RankingService {
	return &RankingService{
		venueRepo:   venueRepo,
		nluClient:   nluClient,
		signalCache: signalCache,
		rerankCache: rerankCache,
		cfg:         cfg,
	}
}

const (
	SortByDistance = "distance"
	SortByRating   = "rating"
	SortByCustom   = "custom"
)

type SearchRequest struct {
	Lat    *float64
	Lng    *float64
	Radius float64

	Filters domain.VenueFilters

	SortBy  string
	Weights *domain.PreferenceWeights

	Page     int
	PageSize int

	Context string

	// IncludeBreakdown forces a score breakdown on every candidate even when
	// the sort does not need one (debug endpoint).
	IncludeBreakdown bool
}

type SearchResult struct {
	Items      []domain.Candidate
	TotalCount int
	Page       int
	PageSize   int
	TotalPages int

	// AmbiancePriority is a presentation hint: prefer ambiance-tagged media
	// and reviews when picking hero content for these candidates.
	AmbiancePriority bool
}

// Search runs the ranking pipeline:
//
//	Validate -> Fetch&Filter -> Sort -> [ContextEnrich] -> Paginate
//
// Validation failures and storage failures abort the request. Everything in
// the context-enrichment stage (signal extraction, constraint penalties, the
// shortlist re-rank) is best-effort: on failure the pipeline keeps the best
// ordering it has.
func (s *RankingService) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	req, err := s.normalize(req)
	if err != nil {
		return nil, err
	}

	// Fetch & filter: cheap superset prefilter in storage, exact haversine
	// filter here.
	box := BoundingBoxFor(*req.Lat, *req.Lng, req.Radius)
	venues, err := s.venueRepo.FindCandidates(ctx, box, req.Filters)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	candidates := FilterByRadius(*req.Lat, *req.Lng, req.Radius, venues)

	s.sortPrimary(candidates, req)

	if req.Context != "" && len(candidates) > 0 {
		signals := s.extractSignals(ctx, req.Context)
		if signals != nil {
			for i := range candidates {
				candidates[i].ConstraintScore = s.ConstraintScore(&candidates[i].Venue, signals)
			}

			if req.Page == 1 {
				// On failure the primary order stands untouched, constraint
				// multiplier and all: same behavior as having no context.
				s.applyRerank(ctx, candidates, req.Context, signals)
			} else {
				sortByConstraint(candidates)
			}
		}
	}

	items, totalCount := paginate(candidates, req.Page, req.PageSize)

	return &SearchResult{
		Items:            items,
		TotalCount:       totalCount,
		Page:             req.Page,
		PageSize:         req.PageSize,
		TotalPages:       totalPages(totalCount, req.PageSize),
		AmbiancePriority: AmbianceIsTopPriority(req.Weights),
	}, nil
}

// normalize applies defaults and fails closed on anything invalid, before any
// collaborator is touched.
func (s *RankingService) normalize(req SearchRequest) (SearchRequest, error) {
	if req.Lat == nil || req.Lng == nil {
		return req, fmt.Errorf("%w: lat and long are required", domain.ErrValidation)
	}
	if *req.Lat < -90 || *req.Lat > 90 {
		return req, fmt.Errorf("%w: lat must be between -90 and 90", domain.ErrValidation)
	}
	if *req.Lng < -180 || *req.Lng > 180 {
		return req, fmt.Errorf("%w: long must be between -180 and 180", domain.ErrValidation)
	}

	if req.Radius == 0 {
		req.Radius = s.cfg.DefaultRadius
	}
	if req.Radius < 0 {
		return req, fmt.Errorf("%w: radius must be positive", domain.ErrValidation)
	}

	for _, tier := range req.Filters.PriceTiers {
		if tier < 1 || tier > 4 {
			return req, fmt.Errorf("%w: price tier must be between 1 and 4", domain.ErrValidation)
		}
	}
	if req.Filters.MinRating < 0 || req.Filters.MinRating > 5 {
		return req, fmt.Errorf("%w: minRating must be between 0 and 5", domain.ErrValidation)
	}

	switch req.SortBy {
	case "":
		req.SortBy = SortByDistance
	case SortByDistance, SortByRating:
	case SortByCustom:
		if req.Weights == nil {
			return req, fmt.Errorf("%w: preferences are required when sortBy=custom", domain.ErrValidation)
		}
		if req.Weights.FoodQuality < 0 || req.Weights.Ambiance < 0 || req.Weights.Proximity < 0 ||
			req.Weights.Price < 0 || req.Weights.Reviews < 0 {
			return req, fmt.Errorf("%w: preference weights must be non-negative", domain.ErrValidation)
		}
	default:
		return req, fmt.Errorf("%w: invalid sortBy %q", domain.ErrValidation, req.SortBy)
	}

	if req.Page == 0 {
		req.Page = 1
	}
	if req.Page < 1 {
		return req, fmt.Errorf("%w: page must be >= 1", domain.ErrValidation)
	}

	if req.PageSize == 0 {
		req.PageSize = s.cfg.DefaultPageSize
	}
	if req.PageSize < 1 || req.PageSize > s.cfg.MaxPageSize {
		return req, fmt.Errorf("%w: pageSize must be between 1 and %d", domain.ErrValidation, s.cfg.MaxPageSize)
	}

	return req, nil
}

// sortPrimary orders candidates by the requested primary key and fills in
// preference scores where the sort, or the caller, needs them.
func (s *RankingService) sortPrimary(candidates []domain.Candidate, req SearchRequest) {
	if req.SortBy == SortByCustom || req.IncludeBreakdown {
		for i := range candidates {
			breakdown := ScoreCandidate(&candidates[i], req.Radius, req.Weights)
			candidates[i].PreferenceScore = breakdown.Total
			candidates[i].Breakdown = &breakdown
		}
	}

	switch req.SortBy {
	case SortByRating:
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].Venue.Rating != candidates[j].Venue.Rating {
				return candidates[i].Venue.Rating > candidates[j].Venue.Rating
			}
			return candidates[i].DistanceMeters < candidates[j].DistanceMeters
		})
	case SortByCustom:
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].PreferenceScore != candidates[j].PreferenceScore {
				return candidates[i].PreferenceScore > candidates[j].PreferenceScore
			}
			return candidates[i].DistanceMeters < candidates[j].DistanceMeters
		})
	default:
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].DistanceMeters != candidates[j].DistanceMeters {
				return candidates[i].DistanceMeters < candidates[j].DistanceMeters
			}
			return candidates[i].Venue.Rating > candidates[j].Venue.Rating
		})
	}
}
