// README: Pure geographic computation helpers (haversine, area bucketing).
package location

import (
	"fmt"
	"math"

	"haulmatch/internal/types"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees. Pure and deterministic; this is the
// offline fallback when the routing service cannot be reached.
func HaversineKm(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// gridCellKm is the edge length of the coarse grid used to bucket pickup
// points into service areas for preference derivation.
const gridCellKm = 10.0

// AreaKey buckets a point into a coarse lat/lng grid cell. Points in the same
// cell are treated as the same service area.
func AreaKey(p types.Point) string {
	// ~111 km per degree of latitude; the longitude error at mid latitudes is
	// acceptable for a coarse frequency map.
	step := gridCellKm / 111.0
	latCell := int(math.Floor(p.Lat / step))
	lngCell := int(math.Floor(p.Lng / step))
	return fmt.Sprintf("%d:%d", latCell, lngCell)
}
