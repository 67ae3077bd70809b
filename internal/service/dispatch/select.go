package dispatch

import (
	"sort"

	"service-dispatch/internal/domain"
)

type candidate struct {
	driver     domain.DriverLocation
	distanceKm float64
}

// rankByDistance orders the candidate pool by haversine distance to the
// shop. The sort is stable, so drivers at equal distance keep their
// registration order and selection stays deterministic.
func rankByDistance(pool []domain.DriverLocation, shop domain.Point) []candidate {
	ranked := make([]candidate, 0, len(pool))
	for _, d := range pool {
		ranked = append(ranked, candidate{
			driver:     d,
			distanceKm: domain.HaversineKm(shop, domain.Point{Lat: d.Latitude, Lon: d.Longitude}),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].distanceKm < ranked[j].distanceKm
	})
	return ranked
}
