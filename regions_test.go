package regionmap

import (
	"context"
	"errors"
	"testing"

	"github.com/tidwall/geojson/geometry"
)

func testCollection() Regions {
	return NewMemoryRegions(
		NewRegion("Giza", "الجيزة", []Ring{
			{{X: 30.8, Y: 29.0}, {X: 31.3, Y: 29.0}, {X: 31.3, Y: 30.1}, {X: 30.8, Y: 30.1}, {X: 30.8, Y: 29.0}},
		}),
		NewRegion("Cairo", "القاهرة", []Ring{
			{{X: 31.2, Y: 29.8}, {X: 31.9, Y: 29.8}, {X: 31.9, Y: 30.2}, {X: 31.2, Y: 30.2}, {X: 31.2, Y: 29.8}},
		}),
		NewRegion("Nowhere", "", nil),
	)
}

func TestMemoryRegionsLookup(t *testing.T) {
	ctx := context.Background()
	regions := testCollection()
	region, err := regions.Lookup(ctx, "Cairo")
	if err != nil {
		t.Fatal(err)
	}
	if have, want := region.Name(), "Cairo"; have != want {
		t.Fatalf("have %s, want %s", have, want)
	}
	if _, err := regions.Lookup(ctx, "Atlantis"); !errors.Is(err, ErrRegionNotFound) {
		t.Fatalf("Lookup(Atlantis) => %v, want ErrRegionNotFound", err)
	}
}

func TestMemoryRegionsList(t *testing.T) {
	regions := testCollection()
	list := regions.List(context.Background())
	if have, want := len(list), 3; have != want {
		t.Fatalf("have %d, want %d regions", have, want)
	}
	for i, want := range []string{"Cairo", "Giza", "Nowhere"} {
		if have := list[i].Name(); have != want {
			t.Fatalf("list[%d].Name() => %s, want %s", i, have, want)
		}
	}
}

func TestMemoryRegionsFilter(t *testing.T) {
	ctx := context.Background()
	regions := testCollection()
	testCases := []struct {
		query string
		want  []string
	}{
		{query: "", want: []string{"Cairo", "Giza", "Nowhere"}},
		{query: "giz", want: []string{"Giza"}},
		{query: "CAIRO", want: []string{"Cairo"}},
		{query: "القاهرة", want: []string{"Cairo"}},
		{query: "atlantis", want: []string{}},
	}
	for _, tc := range testCases {
		matched := regions.Filter(ctx, tc.query)
		if have, want := len(matched), len(tc.want); have != want {
			t.Fatalf("Filter(%q) => %d regions, want %d", tc.query, have, want)
		}
		for i := range matched {
			if have, want := matched[i].Name(), tc.want[i]; have != want {
				t.Fatalf("Filter(%q)[%d] => %s, want %s", tc.query, i, have, want)
			}
		}
	}
}

func TestMemoryRegionsFindContaining(t *testing.T) {
	ctx := context.Background()
	regions := testCollection()

	// inside the Cairo/Giza overlap
	matched := regions.FindContaining(ctx, 31.25, 30.0)
	if have, want := len(matched), 2; have != want {
		t.Fatalf("have %d, want %d regions", have, want)
	}
	if matched[0].Name() != "Cairo" || matched[1].Name() != "Giza" {
		t.Fatalf("matches must be name-sorted, have %v, %v", matched[0], matched[1])
	}

	// inside Cairo only
	matched = regions.FindContaining(ctx, 31.5, 30.0)
	if have, want := len(matched), 1; have != want {
		t.Fatalf("have %d, want %d regions", have, want)
	}
	if have, want := matched[0].Name(), "Cairo"; have != want {
		t.Fatalf("have %s, want %s", have, want)
	}

	// in the desert
	if matched = regions.FindContaining(ctx, 25.0, 25.0); len(matched) != 0 {
		t.Fatalf("have %d regions, want none", len(matched))
	}
}

func TestMemoryRegionsWithin(t *testing.T) {
	ctx := context.Background()
	regions := testCollection()
	matched := regions.Within(ctx,
		geometry.Point{X: 31.0, Y: 29.5},
		geometry.Point{X: 32.0, Y: 30.5},
	)
	if have, want := len(matched), 2; have != want {
		t.Fatalf("have %d, want %d regions in viewport", have, want)
	}
	matched = regions.Within(ctx,
		geometry.Point{X: 0, Y: 0},
		geometry.Point{X: 1, Y: 1},
	)
	if len(matched) != 0 {
		t.Fatalf("have %d regions, want none in an empty viewport", len(matched))
	}
}

func TestMemoryRegionsEach(t *testing.T) {
	ctx := context.Background()
	regions := testCollection()
	var visited []string
	err := regions.Each(ctx, func(_ context.Context, r *Region) error {
		visited = append(visited, r.Name())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if have, want := len(visited), regions.Len(); have != want {
		t.Fatalf("have %d, want %d visits", have, want)
	}

	stop := errors.New("stop")
	visited = visited[:0]
	err = regions.Each(ctx, func(_ context.Context, r *Region) error {
		visited = append(visited, r.Name())
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("have %v, want the callback error", err)
	}
	if have, want := len(visited), 1; have != want {
		t.Fatalf("have %d, want %d visits after an early stop", have, want)
	}
}

func TestMemoryRegionsEmptyRegionNeverMatches(t *testing.T) {
	ctx := context.Background()
	regions := testCollection()
	for _, r := range regions.FindContaining(ctx, 0, 0) {
		if r.Name() == "Nowhere" {
			t.Fatal("region with zero rings must never match a point")
		}
	}
	matched := regions.Within(ctx,
		geometry.Point{X: -180, Y: -90},
		geometry.Point{X: 180, Y: 90},
	)
	for _, r := range matched {
		if r.Name() == "Nowhere" {
			t.Fatal("region with zero rings must not be spatially indexed")
		}
	}
}
