package regionmap

import (
	"fmt"
	"sort"

	"github.com/tidwall/geojson/geometry"
	"github.com/tidwall/gjson"
)

const (
	// DefaultNameProperty is the feature property holding the primary
	// region name.
	DefaultNameProperty = "name"

	// DefaultLocalizedNameProperty is the feature property holding the
	// localized display name. Optional in the source data.
	DefaultLocalizedNameProperty = "name:ar"
)

// ParseError describes malformed or structurally invalid GeoJSON input.
// Feature is the index of the offending feature, or -1 when the problem
// is not scoped to a single feature.
type ParseError struct {
	Feature int
	Reason  string
	Err     error
}

func (e *ParseError) Error() string {
	msg := "regionmap: " + e.Reason
	if e.Feature >= 0 {
		msg = fmt.Sprintf("regionmap: feature %d: %s", e.Feature, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type decodeOptions struct {
	nameKey      string
	localizedKey string
	firstPoly    bool
}

// DecodeOption adjusts how DecodeRegions reads a feature collection.
type DecodeOption func(*decodeOptions)

// WithNameProperty overrides the property key used for the primary name.
func WithNameProperty(key string) DecodeOption {
	return func(o *decodeOptions) {
		o.nameKey = key
	}
}

// WithLocalizedNameProperty overrides the property key used for the
// localized name.
func WithLocalizedNameProperty(key string) DecodeOption {
	return func(o *decodeOptions) {
		o.localizedKey = key
	}
}

// FirstPolygonOnly keeps only the first polygon of every MultiPolygon
// feature, dropping the remaining parts. This reproduces the truncating
// behavior of older region datasets consumers; by default all
// constituent polygons are retained.
func FirstPolygonOnly() DecodeOption {
	return func(o *decodeOptions) {
		o.firstPoly = true
	}
}

// DecodeRegions parses a GeoJSON Feature Collection into regions sorted
// by primary name in case-sensitive lexical order. Every feature must
// carry a name property and a Polygon or MultiPolygon geometry; the
// localized name property is optional and defaults to the empty string.
//
// For Polygon geometries the exterior ring is retained and interior
// rings (holes) are ignored. For MultiPolygon geometries the exterior
// ring of every constituent polygon is retained unless FirstPolygonOnly
// is set; a MultiPolygon with zero polygons yields a region with zero
// rings.
//
// Decoding is pure: the same bytes always produce an equal region
// sequence. Failures are reported as *ParseError.
func DecodeRegions(data []byte, opts ...DecodeOption) ([]*Region, error) {
	options := decodeOptions{
		nameKey:      DefaultNameProperty,
		localizedKey: DefaultLocalizedNameProperty,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Feature: -1, Reason: "invalid JSON"}
	}
	root := gjson.ParseBytes(data)
	if typ := root.Get("type").String(); typ != "FeatureCollection" {
		return nil, &ParseError{Feature: -1, Reason: fmt.Sprintf("unexpected root type %q, want FeatureCollection", typ)}
	}
	features := root.Get("features")
	if !features.IsArray() {
		return nil, &ParseError{Feature: -1, Reason: "missing features array"}
	}

	items := features.Array()
	regions := make([]*Region, 0, len(items))
	for i, feature := range items {
		region, err := decodeFeature(i, feature, options)
		if err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}

	sort.Slice(regions, func(i, j int) bool {
		return regions[i].name < regions[j].name
	})
	return regions, nil
}

func decodeFeature(index int, feature gjson.Result, options decodeOptions) (*Region, *ParseError) {
	props := feature.Get("properties").Map()
	name, ok := props[options.nameKey]
	if !ok || name.String() == "" {
		return nil, &ParseError{Feature: index, Reason: fmt.Sprintf("missing %q property", options.nameKey)}
	}
	localized := props[options.localizedKey].String()

	geomType := feature.Get("geometry.type").String()
	coords := feature.Get("geometry.coordinates")

	var rings []Ring
	switch geomType {
	case "Polygon":
		polygon := coords.Array()
		if !coords.IsArray() || len(polygon) == 0 {
			return nil, &ParseError{Feature: index, Reason: "polygon without rings"}
		}
		exterior, err := decodeRing(index, polygon[0])
		if err != nil {
			return nil, err
		}
		rings = append(rings, exterior)
	case "MultiPolygon":
		if !coords.IsArray() {
			return nil, &ParseError{Feature: index, Reason: "malformed multipolygon coordinates"}
		}
		for _, polygon := range coords.Array() {
			parts := polygon.Array()
			if len(parts) == 0 {
				return nil, &ParseError{Feature: index, Reason: "polygon without rings"}
			}
			exterior, err := decodeRing(index, parts[0])
			if err != nil {
				return nil, err
			}
			rings = append(rings, exterior)
			if options.firstPoly {
				break
			}
		}
	default:
		return nil, &ParseError{Feature: index, Reason: fmt.Sprintf("unsupported geometry type %q", geomType)}
	}

	return NewRegion(name.String(), localized, rings), nil
}

func decodeRing(index int, raw gjson.Result) (Ring, *ParseError) {
	points := raw.Array()
	ring := make(Ring, 0, len(points))
	for _, point := range points {
		pair := point.Array()
		if len(pair) < 2 {
			return nil, &ParseError{Feature: index, Reason: "malformed coordinate pair"}
		}
		ring = append(ring, geometry.Point{X: pair[0].Float(), Y: pair[1].Float()})
	}
	return ring, nil
}
