package postgres

import (
	"context"
	"errors"
	"fmt"
	"tableScout/domain"

	"gorm.io/gorm"
)

type VenueRepository struct {
	DB *gorm.DB
}

func NewVenueRepository(db *gorm.DB) *VenueRepository {
	return &VenueRepository{
		DB: db,
	}
}

// FindCandidates fetches venues inside the bounding box with the structured
// filters applied. The box is only a superset prefilter; the ranking core
// re-applies the exact radius check, so overshoot here is fine.
func (r *VenueRepository) FindCandidates(ctx context.Context, box domain.BoundingBox, filters domain.VenueFilters) ([]domain.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng)

	if len(filters.PriceTiers) > 0 {
		query = query.Where("price_tier IN ?", filters.PriceTiers)
	}

	if filters.MinRating > 0 {
		query = query.Where("rating >= ?", filters.MinRating)
	}

	if len(filters.Types) > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM venue_tags t WHERE t.venue_id = venues.id AND t.tag_name IN ?)",
			filters.Types,
		)
	}

	// Dietary restrictions are matched against tag substrings, case-insensitively.
	for _, restriction := range filters.DietaryRestrictions {
		query = query.Where(
			"EXISTS (SELECT 1 FROM venue_tags t WHERE t.venue_id = venues.id AND t.tag_name ILIKE ?)",
			"%"+restriction+"%",
		)
	}

	var venues []domain.Venue
	err := query.
		Preload("Tags").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Find(&venues).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find venues: %w", err)
	}

	return venues, nil
}

func (r *VenueRepository) FindByExternalID(ctx context.Context, externalID string) (domain.Venue, error) {
	if err := ctx.Err(); err != nil {
		return domain.Venue{}, fmt.Errorf("context error: %w", err)
	}

	var venue domain.Venue
	err := r.DB.WithContext(ctx).
		Preload("Tags").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("external_id = ?", externalID).
		First(&venue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Venue{}, errors.New("venue not found")
		}
		return domain.Venue{}, fmt.Errorf("failed to find venue: %w", err)
	}

	return venue, nil
}
