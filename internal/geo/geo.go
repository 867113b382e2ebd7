// Package geo provides great-circle distance math for the
// duplicate-listing proximity check.
package geo

import "math"

const earthRadiusM = 6371000.0

// Distance returns the haversine distance in meters between two
// coordinates.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

// Within reports whether the two coordinates are at most radiusM meters
// apart.
func Within(lat1, lng1, lat2, lng2, radiusM float64) bool {
	return Distance(lat1, lng1, lat2, lng2) <= radiusM
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
