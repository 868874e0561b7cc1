package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tableScout/business/ranking"
	"tableScout/domain"
	"tableScout/pkg/logger"
	jsonres "tableScout/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RankingService interface {
		Search(ctx context.Context, req ranking.SearchRequest) (*ranking.SearchResult, error)
	}

	VenueService interface {
		GetByExternalID(ctx context.Context, externalID string) (domain.Venue, error)
	}

	VenueHandler struct {
		rankingService RankingService
		venueService   VenueService
		validate       *validator.Validate
		timeout        time.Duration
	}

	SearchVenuesQuery struct {
		Lat                 *float64 `query:"lat" validate:"required"`
		Long                *float64 `query:"long" validate:"required"`
		Radius              float64  `query:"radius" validate:"gte=0"`
		Price               []int    `query:"price" validate:"dive,gte=1,lte=4"`
		MinRating           float64  `query:"minRating" validate:"gte=0,lte=5"`
		Types               []string `query:"types"`
		DietaryRestrictions []string `query:"dietaryRestrictions"`
		SortBy              string   `query:"sortBy" validate:"omitempty,oneof=distance rating custom"`
		Preferences         string   `query:"preferences"`
		Page                int      `query:"page" validate:"gte=0"`
		PageSize            int      `query:"pageSize" validate:"gte=0,lte=50"`
		Context             string   `query:"context"`
	}
)

func NewVenueHandler(rankingService RankingService, venueService VenueService) *VenueHandler {
	return &VenueHandler{
		rankingService: rankingService,
		venueService:   venueService,
		validate:       validator.New(),
		timeout:        15 * time.Second,
	}
}

// buildSearchRequest turns bound query params into a ranking request.
// Preferences arrive as a JSON-encoded weight vector.
func (h *VenueHandler) buildSearchRequest(q SearchVenuesQuery, includeBreakdown bool) (ranking.SearchRequest, error) {
	var weights *domain.PreferenceWeights
	if q.Preferences != "" {
		weights = &domain.PreferenceWeights{}
		if err := json.Unmarshal([]byte(q.Preferences), weights); err != nil {
			return ranking.SearchRequest{}, errors.New("preferences must be valid JSON")
		}
	}

	return ranking.SearchRequest{
		Lat:    q.Lat,
		Lng:    q.Long,
		Radius: q.Radius,
		Filters: domain.VenueFilters{
			PriceTiers:          q.Price,
			MinRating:           q.MinRating,
			Types:               q.Types,
			DietaryRestrictions: q.DietaryRestrictions,
		},
		SortBy:           q.SortBy,
		Weights:          weights,
		Page:             q.Page,
		PageSize:         q.PageSize,
		Context:          q.Context,
		IncludeBreakdown: includeBreakdown,
	}, nil
}

func (h *VenueHandler) search(c echo.Context, includeBreakdown bool) error {
	var q SearchVenuesQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error("invalid query parameters", err.Error()))
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error("invalid query parameters", err.Error()))
	}

	req, err := h.buildSearchRequest(q, includeBreakdown)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error("invalid query parameters", err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.rankingService.Search(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.JSON(http.StatusBadRequest, jsonres.Error("invalid search request", err.Error()))
		}
		logger.Error("venue search failed", "error", err)
		return c.JSON(http.StatusInternalServerError, jsonres.Error("failed to search venues", err.Error()))
	}

	data := make([]domain.VenuePresentation, 0, len(result.Items))
	for _, candidate := range result.Items {
		p := ranking.Present(candidate, result.AmbiancePriority)
		if includeBreakdown {
			constraintScore := candidate.ConstraintScore
			blendedScore := candidate.BlendedScore
			p.ConstraintScore = &constraintScore
			p.BlendedScore = &blendedScore
		}
		data = append(data, p)
	}

	return c.JSON(http.StatusOK, jsonres.Paginated(data, jsonres.Pagination{
		Page:            result.Page,
		PageSize:        result.PageSize,
		TotalCount:      int64(result.TotalCount),
		TotalPages:      result.TotalPages,
		HasNextPage:     result.Page < result.TotalPages,
		HasPreviousPage: result.Page > 1,
	}))
}

// Search handles GET /venues/search.
func (h *VenueHandler) Search(c echo.Context) error {
	return h.search(c, false)
}

// SearchDebug handles GET /venues/search/debug: the same pipeline, but every
// candidate carries its full score breakdown for inspection.
func (h *VenueHandler) SearchDebug(c echo.Context) error {
	return h.search(c, true)
}

// GetVenueByID handles GET /venues/:id.
func (h *VenueHandler) GetVenueByID(c echo.Context) error {
	externalID := c.Param("id")
	if externalID == "" {
		return c.JSON(http.StatusBadRequest, jsonres.Error("missing venue id", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	venue, err := h.venueService.GetByExternalID(ctx, externalID)
	if err != nil {
		if err.Error() == "venue not found" {
			return c.JSON(http.StatusNotFound, jsonres.Error("venue not found", nil))
		}
		logger.Error("failed to get venue", "error", err)
		return c.JSON(http.StatusInternalServerError, jsonres.Error("failed to get venue", err.Error()))
	}

	return c.JSON(http.StatusOK, jsonres.Success(venue))
}
