package regionmap

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/geojson/geometry"
	"github.com/tidwall/rtree"
)

var ErrRegionNotFound = errors.New("regionmap/regions: region not found")

// Regions is a read-only collection of loaded regions. Implementations
// are safe for concurrent use.
type Regions interface {
	// Lookup returns the region with the given primary name.
	Lookup(ctx context.Context, name string) (*Region, error)

	// List returns all regions sorted by primary name.
	List(ctx context.Context) []*Region

	// Filter returns the regions whose primary or localized name
	// contains the query, case-insensitively. An empty query returns
	// all regions. Results keep the name order.
	Filter(ctx context.Context, query string) []*Region

	// FindContaining returns the regions containing the lon/lat point,
	// sorted by primary name.
	FindContaining(ctx context.Context, lon, lat float64) []*Region

	// Within returns the regions whose bounding rectangle intersects
	// the min/max viewport, sorted by primary name.
	Within(ctx context.Context, min, max geometry.Point) []*Region

	// Each visits every region in name order until fn returns an error.
	Each(ctx context.Context, fn func(ctx context.Context, r *Region) error) error

	Len() int
}

type memoryRegions struct {
	mu      sync.RWMutex
	byName  map[string]*Region
	ordered []*Region
	index   *rtree.RTree
}

// NewMemoryRegions builds an in-memory collection over the given
// regions. The collection itself is immutable; regions with no rings
// are listed but never matched spatially.
func NewMemoryRegions(regions ...*Region) Regions {
	m := &memoryRegions{
		byName: make(map[string]*Region, len(regions)),
		index:  &rtree.RTree{},
	}
	for _, r := range regions {
		if r == nil {
			continue
		}
		m.byName[r.Name()] = r
		m.ordered = append(m.ordered, r)
		if r.IsEmpty() {
			continue
		}
		bbox := r.Bound()
		m.index.Insert(
			[2]float64{bbox.Min.X, bbox.Min.Y},
			[2]float64{bbox.Max.X, bbox.Max.Y},
			r,
		)
	}
	sort.Slice(m.ordered, func(i, j int) bool {
		return m.ordered[i].Name() < m.ordered[j].Name()
	})
	return m
}

func (m *memoryRegions) Lookup(_ context.Context, name string) (*Region, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	region, ok := m.byName[name]
	if !ok {
		return nil, ErrRegionNotFound
	}
	return region, nil
}

func (m *memoryRegions) List(_ context.Context) []*Region {
	m.mu.RLock()
	defer m.mu.RUnlock()
	regions := make([]*Region, len(m.ordered))
	copy(regions, m.ordered)
	return regions
}

func (m *memoryRegions) Filter(_ context.Context, query string) []*Region {
	query = strings.ToLower(strings.TrimSpace(query))
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := make([]*Region, 0, len(m.ordered))
	for _, r := range m.ordered {
		if query == "" ||
			strings.Contains(strings.ToLower(r.Name()), query) ||
			strings.Contains(strings.ToLower(r.LocalizedName()), query) {
			matched = append(matched, r)
		}
	}
	return matched
}

func (m *memoryRegions) FindContaining(_ context.Context, lon, lat float64) []*Region {
	point := geometry.Point{X: lon, Y: lat}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*Region
	m.index.Search(
		[2]float64{lon, lat},
		[2]float64{lon, lat},
		func(_, _ [2]float64, value interface{}) bool {
			region, ok := value.(*Region)
			if ok && region.ContainsPoint(point) {
				matched = append(matched, region)
			}
			return true
		},
	)
	sortByName(matched)
	return matched
}

func (m *memoryRegions) Within(_ context.Context, min, max geometry.Point) []*Region {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*Region
	m.index.Search(
		[2]float64{min.X, min.Y},
		[2]float64{max.X, max.Y},
		func(_, _ [2]float64, value interface{}) bool {
			region, ok := value.(*Region)
			if ok {
				matched = append(matched, region)
			}
			return true
		},
	)
	sortByName(matched)
	return matched
}

func (m *memoryRegions) Each(ctx context.Context, fn func(ctx context.Context, r *Region) error) error {
	m.mu.RLock()
	regions := make([]*Region, len(m.ordered))
	copy(regions, m.ordered)
	m.mu.RUnlock()
	for _, r := range regions {
		if err := fn(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryRegions) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ordered)
}

func sortByName(regions []*Region) {
	sort.Slice(regions, func(i, j int) bool {
		return regions[i].Name() < regions[j].Name()
	})
}
