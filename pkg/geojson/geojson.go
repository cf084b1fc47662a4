// Package geojson: minimal typed GeoJSON codec for polygon layers.
// Background: layers are stored and exchanged as FeatureCollections; only
// Polygon/MultiPolygon geometries are interpreted, everything else is carried
// through untouched via the raw coordinate payload.
// Constraints: positions are [lon, lat] per the GeoJSON convention; rings follow
// the usual layout, first ring is the shell, the rest are holes.
package geojson

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Position is a single [lon, lat] coordinate pair.
type Position [2]float64

func (p Position) Lon() float64 { return p[0] }
func (p Position) Lat() float64 { return p[1] }

// Geometry keeps the coordinate payload raw so that unsupported geometry
// types survive a decode/encode round trip byte-exact.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates,omitempty"`
}

type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

var ErrNoPolygon = errors.New("geojson: geometry carries no polygon")

// Decode parses a FeatureCollection, a single Feature or a bare geometry and
// normalizes all three into a FeatureCollection.
func Decode(b []byte) (*FeatureCollection, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return nil, fmt.Errorf("geojson: decode: %w", err)
	}
	switch probe.Type {
	case "FeatureCollection":
		var fc FeatureCollection
		if err := json.Unmarshal(b, &fc); err != nil {
			return nil, fmt.Errorf("geojson: decode collection: %w", err)
		}
		return &fc, nil
	case "Feature":
		var f Feature
		if err := json.Unmarshal(b, &f); err != nil {
			return nil, fmt.Errorf("geojson: decode feature: %w", err)
		}
		return &FeatureCollection{Type: "FeatureCollection", Features: []Feature{f}}, nil
	case "Polygon", "MultiPolygon", "Point", "LineString", "MultiPoint", "MultiLineString":
		var g Geometry
		if err := json.Unmarshal(b, &g); err != nil {
			return nil, fmt.Errorf("geojson: decode geometry: %w", err)
		}
		f := Feature{Type: "Feature", Properties: map[string]any{}, Geometry: g}
		return &FeatureCollection{Type: "FeatureCollection", Features: []Feature{f}}, nil
	default:
		return nil, fmt.Errorf("geojson: unsupported root type %q", probe.Type)
	}
}

// Encode serializes the collection back to JSON.
func (fc *FeatureCollection) Encode() ([]byte, error) {
	if fc.Type == "" {
		fc.Type = "FeatureCollection"
	}
	return json.Marshal(fc)
}

// Polygons returns the polygon parts of the geometry, one entry per polygon
// with its rings. Non-areal geometries yield ErrNoPolygon.
func (g Geometry) Polygons() ([][][]Position, error) {
	switch g.Type {
	case "Polygon":
		var rings [][]Position
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return nil, fmt.Errorf("geojson: polygon coordinates: %w", err)
		}
		return [][][]Position{rings}, nil
	case "MultiPolygon":
		var polys [][][]Position
		if err := json.Unmarshal(g.Coordinates, &polys); err != nil {
			return nil, fmt.Errorf("geojson: multipolygon coordinates: %w", err)
		}
		return polys, nil
	default:
		return nil, ErrNoPolygon
	}
}

// NewPolygon builds a Polygon geometry from rings.
func NewPolygon(rings [][]Position) Geometry {
	b, _ := json.Marshal(rings)
	return Geometry{Type: "Polygon", Coordinates: b}
}

// NewMultiPolygon builds a MultiPolygon geometry from a set of polygons.
func NewMultiPolygon(polys [][][]Position) Geometry {
	b, _ := json.Marshal(polys)
	return Geometry{Type: "MultiPolygon", Coordinates: b}
}

// PropString reads a string property, empty when absent or of another type.
func (f Feature) PropString(key string) string {
	if f.Properties == nil {
		return ""
	}
	if v, ok := f.Properties[key].(string); ok {
		return v
	}
	return ""
}
