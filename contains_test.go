package regionmap

import (
	"testing"

	"github.com/mmcloughlin/spherand"
	"github.com/tidwall/geojson/geometry"
)

func squareRing() Ring {
	return Ring{
		{X: 0, Y: 0},
		{X: 0, Y: 10},
		{X: 10, Y: 10},
		{X: 10, Y: 0},
		{X: 0, Y: 0},
	}
}

func TestRingContainsSquare(t *testing.T) {
	ring := squareRing()
	testCases := []struct {
		name  string
		point geometry.Point
		want  bool
	}{
		{name: "inside", point: geometry.Point{X: 5, Y: 5}, want: true},
		{name: "outside", point: geometry.Point{X: 15, Y: 15}, want: false},
		// boundary points count as inside, see Ring.Contains
		{name: "on edge", point: geometry.Point{X: 0, Y: 5}, want: true},
		{name: "on vertex", point: geometry.Point{X: 10, Y: 10}, want: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if have := ring.Contains(tc.point); have != tc.want {
				t.Fatalf("Contains(%v) => %v, want %v", tc.point, have, tc.want)
			}
		})
	}
}

func TestRingContainsDegenerate(t *testing.T) {
	rings := []Ring{
		nil,
		{},
		{{X: 1, Y: 1}},
		{{X: 1, Y: 1}, {X: 2, Y: 2}},
	}
	for _, ring := range rings {
		if ring.Contains(geometry.Point{X: 1, Y: 1}) {
			t.Fatalf("ring with %d points must not contain any point", len(ring))
		}
	}
	region := NewRegion("Degenerate", "", []Ring{{{X: 1, Y: 1}, {X: 2, Y: 2}}})
	if region.ContainsPoint(geometry.Point{X: 1, Y: 1}) {
		t.Fatal("region with only degenerate rings must not contain any point")
	}
}

func TestRegionContainsPointCentroid(t *testing.T) {
	// convex pentagon
	ring := Ring{
		{X: 2, Y: 0},
		{X: 6, Y: 0},
		{X: 8, Y: 4},
		{X: 4, Y: 7},
		{X: 0, Y: 4},
		{X: 2, Y: 0},
	}
	var centroid geometry.Point
	for _, p := range ring[:len(ring)-1] {
		centroid.X += p.X
		centroid.Y += p.Y
	}
	centroid.X /= float64(len(ring) - 1)
	centroid.Y /= float64(len(ring) - 1)

	region := NewRegion("Pentagon", "", []Ring{ring})
	if !region.ContainsPoint(centroid) {
		t.Fatalf("centroid %v of a convex ring must be inside", centroid)
	}
	if region.ContainsPoint(geometry.Point{X: 100, Y: 100}) {
		t.Fatal("point far outside the bounding box must be outside")
	}
}

func TestRegionContainsPointMultiRing(t *testing.T) {
	region := NewRegion("Twin", "", []Ring{
		squareRing(),
		{
			{X: 20, Y: 20},
			{X: 20, Y: 30},
			{X: 30, Y: 30},
			{X: 30, Y: 20},
			{X: 20, Y: 20},
		},
	})
	if !region.ContainsPoint(geometry.Point{X: 25, Y: 25}) {
		t.Fatal("point inside the second ring must be contained")
	}
	if !region.ContainsPoint(geometry.Point{X: 5, Y: 5}) {
		t.Fatal("point inside the first ring must be contained")
	}
	if region.ContainsPoint(geometry.Point{X: 15, Y: 15}) {
		t.Fatal("point between the rings must not be contained")
	}
}

func TestRegionContainsPointRandomOutside(t *testing.T) {
	region := NewRegion("Square", "", []Ring{squareRing()})
	bbox := region.Bound()
	checked := 0
	for checked < 500 {
		lat, lon := spherand.Geographical()
		if lon >= bbox.Min.X-1 && lon <= bbox.Max.X+1 &&
			lat >= bbox.Min.Y-1 && lat <= bbox.Max.Y+1 {
			continue
		}
		checked++
		if region.ContainsPoint(geometry.Point{X: lon, Y: lat}) {
			t.Fatalf("point (%f, %f) outside the bounding box reported as inside", lon, lat)
		}
	}
}

func BenchmarkRingContains(b *testing.B) {
	ring := squareRing()
	point := geometry.Point{X: 5, Y: 5}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !ring.Contains(point) {
			b.Fatal("point must be inside")
		}
	}
}
