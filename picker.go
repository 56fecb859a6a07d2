package regionmap

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/xid"
	"github.com/tidwall/geojson/geometry"
)

var (
	ErrNothingSelected   = errors.New("regionmap/picker: no region selected")
	ErrOutsidePickRegion = errors.New("regionmap/picker: point outside the selected region")
	ErrLocationNotPicked = errors.New("regionmap/picker: location not picked")
)

// Picker opens pick sessions over the current selection. A session is
// bound to the region selected at the moment Begin is called and is not
// affected by later selection changes.
type Picker struct {
	selection *Selection
}

func NewPicker(selection *Selection) *Picker {
	return &Picker{selection: selection}
}

func (p *Picker) Begin(ctx context.Context) (*PickSession, error) {
	region, ok := p.selection.Selected(ctx)
	if !ok {
		return nil, ErrNothingSelected
	}
	return &PickSession{
		id:     xid.New().String(),
		region: region,
	}, nil
}

// PickSession validates and collects one point location within a region.
type PickSession struct {
	id     string
	region *Region

	mu       sync.Mutex
	location geometry.Point
	picked   bool
}

func (s *PickSession) ID() string {
	return s.id
}

func (s *PickSession) Region() *Region {
	return s.region
}

// Validate reports whether p lies inside the session's region.
func (s *PickSession) Validate(p geometry.Point) bool {
	return s.region.ContainsPoint(p)
}

// Pick records p as the session's location. Points outside the region
// are rejected with ErrOutsidePickRegion; a later pick replaces an
// earlier one.
func (s *PickSession) Pick(p geometry.Point) error {
	if !s.Validate(p) {
		return ErrOutsidePickRegion
	}
	s.mu.Lock()
	s.location = p
	s.picked = true
	s.mu.Unlock()
	return nil
}

// Location returns the picked point, or ErrLocationNotPicked when the
// session has not recorded one yet.
func (s *PickSession) Location() (geometry.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.picked {
		return geometry.Point{}, ErrLocationNotPicked
	}
	return s.location, nil
}
