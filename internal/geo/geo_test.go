package geo

import (
	"math"
	"testing"
)

// Seoul City Hall.
const (
	baseLat = 37.5665
	baseLng = 126.978
)

// offsetNorth returns a point approximately meters north of the base
// coordinate. One degree of latitude is ~111,320 m everywhere.
func offsetNorth(meters float64) (float64, float64) {
	return baseLat + meters/111320.0, baseLng
}

func TestDistanceZero(t *testing.T) {
	if d := Distance(baseLat, baseLng, baseLat, baseLng); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}
}

func TestDistanceKnownPoints(t *testing.T) {
	// Seoul City Hall to Gangnam Station is roughly 8.4 km.
	d := Distance(baseLat, baseLng, 37.4979, 127.0276)
	if d < 8000 || d > 9000 {
		t.Errorf("Seoul City Hall -> Gangnam Station = %.0fm, want ~8400m", d)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	lat2, lng2 := offsetNorth(300)
	d1 := Distance(baseLat, baseLng, lat2, lng2)
	d2 := Distance(lat2, lng2, baseLat, baseLng)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", d1, d2)
	}
}

func TestWithinRadiusBoundary(t *testing.T) {
	nearLat, nearLng := offsetNorth(49)
	farLat, farLng := offsetNorth(51)

	if !Within(baseLat, baseLng, nearLat, nearLng, 50) {
		t.Error("point at 49m should be within 50m radius")
	}
	if Within(baseLat, baseLng, farLat, farLng, 50) {
		t.Error("point at 51m should not be within 50m radius")
	}
}
