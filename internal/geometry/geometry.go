// Package geometry: planar polygon primitives for boundary classification.
// Background: holds the minimal structures shared by the mapset, reference and
// check layers; kept lightweight so whole boundary sets stay resident in memory.
// Constraints: coordinates are WGS84 lon/lat treated as planar; rings follow the
// GeoJSON convention, first ring is the shell, the rest are holes.
package geometry

import "fs-api/pkg/geojson"

// Point in WGS84.
type Point struct {
	Lat float64
	Lon float64
}

// Polygon is a ring set; BBox is minLon, minLat, maxLon, maxLat.
type Polygon struct {
	Rings [][]Point
	BBox  [4]float64
}

// FromGeoJSON converts the polygon parts of a geometry. Non-areal geometries
// contribute nothing.
func FromGeoJSON(g geojson.Geometry) []Polygon {
	parts, err := g.Polygons()
	if err != nil {
		return nil
	}
	var out []Polygon
	for _, rings := range parts {
		var poly Polygon
		for _, ring := range rings {
			rr := make([]Point, 0, len(ring))
			for _, pos := range ring {
				rr = append(rr, Point{Lat: pos.Lat(), Lon: pos.Lon()})
			}
			poly.Rings = append(poly.Rings, rr)
		}
		poly.BBox = computeBBox(poly)
		out = append(out, poly)
	}
	return out
}

// ToGeoJSON converts a polygon set back into a MultiPolygon geometry.
func ToGeoJSON(polys []Polygon) geojson.Geometry {
	var parts [][][]geojson.Position
	for _, p := range polys {
		var rings [][]geojson.Position
		for _, r := range p.Rings {
			ring := make([]geojson.Position, 0, len(r))
			for _, pt := range r {
				ring = append(ring, geojson.Position{pt.Lon, pt.Lat})
			}
			rings = append(rings, ring)
		}
		parts = append(parts, rings)
	}
	return geojson.NewMultiPolygon(parts)
}

func computeBBox(p Polygon) [4]float64 {
	b := [4]float64{180, 90, -180, -90}
	for _, r := range p.Rings {
		for _, pt := range r {
			if pt.Lon < b[0] {
				b[0] = pt.Lon
			}
			if pt.Lat < b[1] {
				b[1] = pt.Lat
			}
			if pt.Lon > b[2] {
				b[2] = pt.Lon
			}
			if pt.Lat > b[3] {
				b[3] = pt.Lat
			}
		}
	}
	return b
}

// BBoxOverlap reports whether two bounding boxes share any area.
func BBoxOverlap(a, b [4]float64) bool {
	return a[0] <= b[2] && b[0] <= a[2] && a[1] <= b[3] && b[1] <= a[3]
}

// Area returns the planar area of the polygon in square degrees,
// shell minus holes via the shoelace formula.
func Area(p Polygon) float64 {
	if len(p.Rings) == 0 {
		return 0
	}
	a := ringArea(p.Rings[0])
	for i := 1; i < len(p.Rings); i++ {
		a -= ringArea(p.Rings[i])
	}
	if a < 0 {
		a = 0
	}
	return a
}

func ringArea(ring []Point) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	s := 0.0
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		s += (ring[j].Lon + ring[i].Lon) * (ring[j].Lat - ring[i].Lat)
	}
	if s < 0 {
		s = -s
	}
	return s / 2
}
