package catalog

import (
	"math"
	"sort"

	"servicehub/internal/domain"
	"servicehub/internal/pkg/geo"
)

// geoQuery reports whether results depend on distance, in which case the
// whole candidate set has to be filtered and sorted before paging.
func geoQuery(origin *geo.Point, maxDistance *float64, sortBy string) bool {
	return origin != nil && (maxDistance != nil || sortBy == "distance")
}

// attachDistances sets Distance on every service whose provider has
// coordinates. Others keep a nil Distance.
func attachDistances(services []domain.Service, origin geo.Point) {
	for i := range services {
		lat, lng, ok := services[i].Coordinates()
		if !ok {
			continue
		}
		d := geo.Distance(origin, geo.Point{Lat: lat, Lng: lng})
		services[i].Distance = &d
	}
}

// filterAndSort drops services farther than maxDistance (and those without
// coordinates when maxDistance is set) and orders by distance when asked.
// Services keep their incoming order otherwise.
func filterAndSort(services []domain.Service, origin geo.Point, maxDistance *float64, sortBy string) []domain.Service {
	attachDistances(services, origin)

	out := services[:0]
	for _, s := range services {
		if maxDistance != nil && (s.Distance == nil || *s.Distance > *maxDistance) {
			continue
		}
		out = append(out, s)
	}

	if sortBy == "distance" {
		sort.SliceStable(out, func(i, j int) bool {
			return distanceOrInf(out[i]) < distanceOrInf(out[j])
		})
	}
	return out
}

func distanceOrInf(s domain.Service) float64 {
	if s.Distance == nil {
		return math.Inf(1)
	}
	return *s.Distance
}

func pageOf(services []domain.Service, page, limit int) []domain.Service {
	start := (page - 1) * limit
	if start >= len(services) {
		return []domain.Service{}
	}
	end := start + limit
	if end > len(services) {
		end = len(services)
	}
	return services[start:end]
}
