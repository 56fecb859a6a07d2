package regionmap

import (
	"github.com/tidwall/geojson/geometry"
)

// ContainsPoint reports whether p lies inside at least one of the
// region's rings.
func (r *Region) ContainsPoint(p geometry.Point) bool {
	if len(r.rings) == 0 {
		return false
	}
	if !rectContains(r.bound, p) {
		return false
	}
	for i := range r.rings {
		if r.rings[i].Contains(p) {
			return true
		}
	}
	return false
}

// Contains reports whether p lies inside the ring using the even-odd
// ray casting rule: a horizontal ray from p to +infinity is crossed by
// an odd number of ring edges iff p is inside. Rings with fewer than
// three points never contain a point. A point lying exactly on a ring
// edge or vertex counts as inside.
func (g Ring) Contains(p geometry.Point) bool {
	if len(g) < 3 {
		return false
	}
	in := false
	for i := 0; i < len(g); i++ {
		var seg geometry.Segment
		seg.A = g[i]
		if i == len(g)-1 {
			seg.B = g[0]
		} else {
			seg.B = g[i+1]
		}
		if seg.ContainsPoint(p) {
			return true
		}
		if rayIntersectsSegment(p, seg.A, seg.B) {
			in = !in
		}
	}
	return in
}

// Crossing test from the PNPoly formulation,
// https://www.ecse.rpi.edu/Homepages/wrf/Research/Short_Notes/pnpoly.html
func rayIntersectsSegment(p, a, b geometry.Point) bool {
	return (a.Y > p.Y) != (b.Y > p.Y) &&
		p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X
}

func rectContains(r geometry.Rect, p geometry.Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}
