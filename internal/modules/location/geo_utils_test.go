package location

import (
	"math"
	"testing"

	"haulmatch/internal/types"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a         types.Point
		b         types.Point
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         types.Point{Lat: 51.5074, Lng: -0.1278},
			b:         types.Point{Lat: 51.5074, Lng: -0.1278},
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "central London to Whitechapel (~2.7km)",
			a:         types.Point{Lat: 51.5074, Lng: -0.1278},
			b:         types.Point{Lat: 51.5155, Lng: -0.0922},
			wantKm:    2.7,
			tolerance: 0.3,
		},
		{
			name:      "London to Manchester (~262km)",
			a:         types.Point{Lat: 51.5074, Lng: -0.1278},
			b:         types.Point{Lat: 53.4808, Lng: -2.2426},
			wantKm:    262,
			tolerance: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("HaversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	a := types.Point{Lat: 25.0, Lng: 121.0}
	b := types.Point{Lat: 26.0, Lng: 122.0}
	d1 := HaversineKm(a, b)
	d2 := HaversineKm(b, a)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}

func TestAreaKey_NearbyPointsShareCell(t *testing.T) {
	a := types.Point{Lat: 51.5000, Lng: -0.1000}
	b := types.Point{Lat: 51.5010, Lng: -0.1010}
	if AreaKey(a) != AreaKey(b) {
		t.Errorf("points ~100m apart should share an area cell: %s vs %s", AreaKey(a), AreaKey(b))
	}
}

func TestAreaKey_DistantPointsDiffer(t *testing.T) {
	a := types.Point{Lat: 51.50, Lng: -0.10}
	b := types.Point{Lat: 53.48, Lng: -2.24}
	if AreaKey(a) == AreaKey(b) {
		t.Errorf("cities 260km apart must not share an area cell: %s", AreaKey(a))
	}
}
