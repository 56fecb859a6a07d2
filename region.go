// Package regionmap loads named geographic regions from GeoJSON feature
// collections and answers point-in-region queries over them. Region
// geometry is immutable after load; the only mutable pieces, the current
// selection and pick sessions, carry their own locks and are safe for
// concurrent use.
package regionmap

import (
	"fmt"

	"github.com/tidwall/geojson/geometry"
)

// Ring is an ordered, closed sequence of lon/lat coordinate pairs
// bounding a polygon. Points use X for longitude and Y for latitude.
type Ring []geometry.Point

// Region is a named area defined by zero or more polygon rings.
// Interior rings (holes) are not modeled.
type Region struct {
	name      string
	localized string
	rings     []Ring
	bound     geometry.Rect
}

// NewRegion builds a region from its rings. The rings are copied, so the
// caller may reuse the backing slices.
func NewRegion(name, localizedName string, rings []Ring) *Region {
	r := &Region{
		name:      name,
		localized: localizedName,
		rings:     make([]Ring, len(rings)),
	}
	for i, ring := range rings {
		r.rings[i] = make(Ring, len(ring))
		copy(r.rings[i], ring)
	}
	r.bound = boundOf(r.rings)
	return r
}

func (r *Region) String() string {
	return fmt.Sprintf("Region{Name:%s, Rings:%d}", r.name, len(r.rings))
}

// Name returns the primary region name. Names are the identity of a
// region within a collection.
func (r *Region) Name() string {
	return r.name
}

// LocalizedName returns the secondary display name. Empty when the
// source feature carried none.
func (r *Region) LocalizedName() string {
	return r.localized
}

func (r *Region) NumRings() int {
	return len(r.rings)
}

// Ring returns a copy of the i-th ring.
func (r *Region) Ring(i int) Ring {
	ring := make(Ring, len(r.rings[i]))
	copy(ring, r.rings[i])
	return ring
}

// Rings returns a deep copy of all rings.
func (r *Region) Rings() []Ring {
	rings := make([]Ring, len(r.rings))
	for i, ring := range r.rings {
		rings[i] = make(Ring, len(ring))
		copy(rings[i], ring)
	}
	return rings
}

// IsEmpty reports whether the region has no rings. Empty regions are
// valid and never contain a point.
func (r *Region) IsEmpty() bool {
	return len(r.rings) == 0
}

// Bound returns the bounding rectangle over all rings, the zero rect
// for empty regions.
func (r *Region) Bound() geometry.Rect {
	return r.bound
}

// Center returns the center of the bounding rectangle.
func (r *Region) Center() geometry.Point {
	return geometry.Point{
		X: (r.bound.Min.X + r.bound.Max.X) / 2,
		Y: (r.bound.Min.Y + r.bound.Max.Y) / 2,
	}
}

func boundOf(rings []Ring) (bbox geometry.Rect) {
	first := true
	for _, ring := range rings {
		for _, point := range ring {
			if first {
				bbox.Min = point
				bbox.Max = point
				first = false
				continue
			}
			if point.X < bbox.Min.X {
				bbox.Min.X = point.X
			} else if point.X > bbox.Max.X {
				bbox.Max.X = point.X
			}
			if point.Y < bbox.Min.Y {
				bbox.Min.Y = point.Y
			} else if point.Y > bbox.Max.Y {
				bbox.Max.Y = point.Y
			}
		}
	}
	return bbox
}
