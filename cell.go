package regionmap

import (
	"fmt"

	"github.com/tidwall/geojson/geometry"
	"github.com/uber/h3-go"
)

// DefaultCellLevel is the H3 resolution used when a host does not
// configure one. Resolution 8 cells are a few hundred meters across,
// fine enough to group nearby point lookups without splitting a city
// block over many cells.
const DefaultCellLevel = 8

// CellID identifies the H3 cell a coordinate falls in. Hosts use cells
// to group, shard or cache point lookups at a fixed spatial granularity.
type CellID uint64

func CellFromLonLat(lon, lat float64, level int) CellID {
	if level < 0 {
		level = 0
	}
	if level > 15 {
		level = 15
	}
	cord := h3.GeoCoord{Latitude: lat, Longitude: lon}
	return CellID(h3.FromGeo(cord, level))
}

func CellIDFromString(id string) (CellID, error) {
	if len(id) == 0 {
		return 0, fmt.Errorf("regionmap/cell: got empty cell id")
	}
	return CellID(h3.FromString(id)), nil
}

func (c CellID) String() string {
	return h3.ToString(h3.H3Index(c))
}

func (c CellID) Level() int {
	return h3.Resolution(h3.H3Index(c))
}

func (c CellID) Center() geometry.Point {
	cord := h3.ToGeo(h3.H3Index(c))
	return geometry.Point{X: cord.Longitude, Y: cord.Latitude}
}

// Boundary returns the cell's hexagon outline as lon/lat points.
func (c CellID) Boundary() []geometry.Point {
	boundary := h3.ToGeoBoundary(h3.H3Index(c))
	points := make([]geometry.Point, len(boundary))
	for i, b := range boundary {
		points[i] = geometry.Point{X: b.Longitude, Y: b.Latitude}
	}
	return points
}
