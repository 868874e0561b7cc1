package venue

import (
	"context"
	"fmt"

	"tableScout/domain"
)

type VenueRepository interface {
	FindByExternalID(ctx context.Context, externalID string) (domain.Venue, error)
}

type VenueService struct {
	venueRepo VenueRepository
}

func NewVenueService(venueRepo VenueRepository) *VenueService {
	return &VenueService{
		venueRepo: venueRepo,
	}
}

func (s *VenueService) GetByExternalID(ctx context.Context, externalID string) (domain.Venue, error) {
	if err := ctx.Err(); err != nil {
		return domain.Venue{}, fmt.Errorf("context error: %w", err)
	}

	return s.venueRepo.FindByExternalID(ctx, externalID)
}
