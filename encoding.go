package regionmap

import (
	"fmt"

	"github.com/tidwall/geojson/geometry"
	"github.com/vmihailenco/msgpack/v5"
)

const snapshotVersion = 1

type regionSnapshot struct {
	Name          string         `msgpack:"name"`
	LocalizedName string         `msgpack:"localized_name"`
	Rings         [][][2]float64 `msgpack:"rings"`
}

type snapshot struct {
	Version int              `msgpack:"version"`
	Regions []regionSnapshot `msgpack:"regions"`
}

// EncodeSnapshot serializes a region set so hosts can cache the parsed
// dataset instead of re-decoding GeoJSON on every start. Region order,
// names and ring geometry round-trip exactly.
func EncodeSnapshot(regions []*Region) ([]byte, error) {
	snap := snapshot{
		Version: snapshotVersion,
		Regions: make([]regionSnapshot, 0, len(regions)),
	}
	for _, r := range regions {
		rs := regionSnapshot{
			Name:          r.Name(),
			LocalizedName: r.LocalizedName(),
			Rings:         make([][][2]float64, 0, r.NumRings()),
		}
		for _, ring := range r.Rings() {
			points := make([][2]float64, len(ring))
			for i, p := range ring {
				points[i] = [2]float64{p.X, p.Y}
			}
			rs.Rings = append(rs.Rings, points)
		}
		snap.Regions = append(snap.Regions, rs)
	}
	return msgpack.Marshal(snap)
}

// DecodeSnapshot restores a region set produced by EncodeSnapshot.
func DecodeSnapshot(data []byte) ([]*Region, error) {
	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("regionmap/snapshot: decode failed: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("regionmap/snapshot: unsupported version %d", snap.Version)
	}
	regions := make([]*Region, 0, len(snap.Regions))
	for _, rs := range snap.Regions {
		rings := make([]Ring, 0, len(rs.Rings))
		for _, points := range rs.Rings {
			ring := make(Ring, len(points))
			for i, p := range points {
				ring[i] = geometry.Point{X: p[0], Y: p[1]}
			}
			rings = append(rings, ring)
		}
		regions = append(regions, NewRegion(rs.Name, rs.LocalizedName, rings))
	}
	return regions, nil
}
