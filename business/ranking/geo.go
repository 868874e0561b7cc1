package ranking

import (
	"math"

	"tableScout/domain"
)

const (
	earthRadiusMeters = 6371000.0
	metersPerDegLat   = 111000.0
)

// BoundingBoxFor computes a lat/lng rectangle that fully contains the circle
// of the given radius around the origin. The box is a superset of the circle:
// it may include points outside the radius but never excludes one inside it,
// so it is safe as a storage prefilter as long as exact distance filtering is
// re-applied afterwards.
func BoundingBoxFor(lat, lng, radiusMeters float64) domain.BoundingBox {
	latDelta := radiusMeters / metersPerDegLat
	lngDelta := radiusMeters / (metersPerDegLat * math.Cos(lat*math.Pi/180))

	return domain.BoundingBox{
		MinLat: lat - latDelta,
		MaxLat: lat + latDelta,
		MinLng: lng - lngDelta,
		MaxLng: lng + lngDelta,
	}
}

// HaversineMeters returns the great-circle distance between two points.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := math.Pi / 180

	dLat := (lat2 - lat1) * toRad
	dLng := (lng2 - lng1) * toRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*toRad)*math.Cos(lat2*toRad)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// FilterByRadius builds candidates from raw venues, computing the exact
// distance for each and dropping any venue beyond the radius. The bounding box
// prefilter over-fetches; this pass makes the radius guarantee exact.
func FilterByRadius(lat, lng, radiusMeters float64, venues []domain.Venue) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(venues))

	for _, v := range venues {
		dist := HaversineMeters(lat, lng, v.Latitude, v.Longitude)
		if dist > radiusMeters {
			continue
		}

		candidates = append(candidates, domain.Candidate{
			Venue:           v,
			DistanceMeters:  dist,
			ConstraintScore: 1.0,
		})
	}

	return candidates
}
