package geometry

// Contains: point-in-polygon with even-odd ray casting.
// Background: a hit on the shell that also falls inside a hole is a miss.
// Constraints: the ray cast is numerically fragile exactly on edges; callers
// combine it with edge-crossing tests where that matters.
func Contains(p Polygon, pt Point) bool {
	if len(p.Rings) == 0 {
		return false
	}
	if !pointInRing(pt, p.Rings[0]) {
		return false
	}
	for i := 1; i < len(p.Rings); i++ {
		if pointInRing(pt, p.Rings[i]) {
			return false
		}
	}
	return true
}

func pointInRing(pt Point, ring []Point) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	x := pt.Lon
	y := pt.Lat
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi := ring[i].Lon
		yi := ring[i].Lat
		xj := ring[j].Lon
		yj := ring[j].Lat
		intersect := ((yi > y) != (yj > y)) && (x < (xj-xi)*(y-yi)/(yj-yi+1e-12)+xi)
		if intersect {
			inside = !inside
		}
	}
	return inside
}

// Intersects: exact polygon-polygon intersection test.
// A pair intersects when a vertex of one lies inside the other, or when any
// two edges cross. Bounding boxes only gate the expensive work; overlap of
// the boxes alone is never reported as a hit.
func Intersects(a, b Polygon) bool {
	if !BBoxOverlap(a.BBox, b.BBox) {
		return false
	}
	for _, ring := range a.Rings {
		for _, pt := range ring {
			if Contains(b, pt) {
				return true
			}
		}
	}
	for _, ring := range b.Rings {
		for _, pt := range ring {
			if Contains(a, pt) {
				return true
			}
		}
	}
	return edgesCross(a, b)
}

func edgesCross(a, b Polygon) bool {
	for _, ra := range a.Rings {
		na := len(ra)
		for i := 0; i < na; i++ {
			a1 := ra[i]
			a2 := ra[(i+1)%na]
			for _, rb := range b.Rings {
				nb := len(rb)
				for j := 0; j < nb; j++ {
					if segmentsCross(a1, a2, rb[j], rb[(j+1)%nb]) {
						return true
					}
				}
			}
		}
	}
	return false
}

// Proper segment crossing via orientation signs; collinear touching is not
// counted, the vertex containment pass covers those.
func segmentsCross(p1, p2, q1, q2 Point) bool {
	d1 := cross(q1, q2, p1)
	d2 := cross(q1, q2, p2)
	d3 := cross(p1, p2, q1)
	d4 := cross(p1, p2, q2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func cross(o, a, b Point) float64 {
	return (a.Lon-o.Lon)*(b.Lat-o.Lat) - (a.Lat-o.Lat)*(b.Lon-o.Lon)
}

// overlapGridN controls the sampling density of OverlapArea. 64 keeps the
// worst case at a few thousand ray casts per polygon pair.
const overlapGridN = 64

// OverlapArea estimates the shared area of two polygons in square degrees by
// regular grid sampling over the intersection of their bounding boxes.
// Background: used only to rank matches and report coverage, so a sampled
// estimate is sufficient; the hit decision itself comes from Intersects.
func OverlapArea(a, b Polygon) float64 {
	minLon := maxF(a.BBox[0], b.BBox[0])
	minLat := maxF(a.BBox[1], b.BBox[1])
	maxLon := minF(a.BBox[2], b.BBox[2])
	maxLat := minF(a.BBox[3], b.BBox[3])
	if minLon >= maxLon || minLat >= maxLat {
		return 0
	}
	stepLon := (maxLon - minLon) / overlapGridN
	stepLat := (maxLat - minLat) / overlapGridN
	hits := 0
	for i := 0; i < overlapGridN; i++ {
		lon := minLon + (float64(i)+0.5)*stepLon
		for j := 0; j < overlapGridN; j++ {
			pt := Point{Lat: minLat + (float64(j)+0.5)*stepLat, Lon: lon}
			if Contains(a, pt) && Contains(b, pt) {
				hits++
			}
		}
	}
	cell := stepLon * stepLat
	return float64(hits) * cell
}

func maxF(x, y float64) float64 {
	if x > y {
		return x
	}
	return y
}

func minF(x, y float64) float64 {
	if x < y {
		return x
	}
	return y
}
