package ranking

import "tableScout/domain"

// Present transforms a ranked candidate into its outbound shape. When
// ambiance is a top priority the hero review prefers an ambiance-tagged
// review over the first available one.
func Present(c domain.Candidate, ambiancePriority bool) domain.VenuePresentation {
	p := domain.VenuePresentation{
		ID:             c.Venue.ExternalID,
		Name:           c.Venue.VenueName,
		Latitude:       c.Venue.Latitude,
		Longitude:      c.Venue.Longitude,
		PriceTier:      c.Venue.PriceTier,
		Rating:         c.Venue.Rating,
		ReviewCount:    c.Venue.ReviewCount,
		DistanceMeters: c.DistanceMeters,
		Breakdown:      c.Breakdown,
	}

	for _, tag := range c.Venue.Tags {
		p.Tags = append(p.Tags, tag.TagName)
	}

	p.HeroReview = heroReview(c.Venue.Reviews, ambiancePriority)

	return p
}

func heroReview(reviews []domain.VenueReview, ambiancePriority bool) string {
	if len(reviews) == 0 {
		return ""
	}

	if ambiancePriority {
		for _, r := range reviews {
			if r.Tag == "ambiance" {
				return r.Body
			}
		}
	}

	return reviews[0].Body
}
