package regionmap

import (
	"context"
	"sync"
)

// Selection tracks the at-most-one currently selected region of a
// collection. The selected region is held as a name referencing the
// immutable collection rather than a flag on the regions themselves,
// so two regions can never be selected at once.
type Selection struct {
	regions Regions

	mu       sync.RWMutex
	name     string
	selected bool
}

func NewSelection(regions Regions) *Selection {
	return &Selection{regions: regions}
}

// Select makes the named region the current selection, replacing any
// previous one. Returns ErrRegionNotFound for unknown names, leaving
// the current selection untouched.
func (s *Selection) Select(ctx context.Context, name string) (*Region, error) {
	region, err := s.regions.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.name = name
	s.selected = true
	s.mu.Unlock()
	return region, nil
}

// Clear drops the current selection, if any.
func (s *Selection) Clear() {
	s.mu.Lock()
	s.name = ""
	s.selected = false
	s.mu.Unlock()
}

// Selected returns the currently selected region, or false when nothing
// is selected.
func (s *Selection) Selected(ctx context.Context) (*Region, bool) {
	s.mu.RLock()
	name, ok := s.name, s.selected
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	region, err := s.regions.Lookup(ctx, name)
	if err != nil {
		return nil, false
	}
	return region, true
}
