// Package check: classifies an area of interest against the federal-state
// reference layer.
// Background: candidates are gated by bounding box, confirmed by exact
// polygon intersection, then ranked by shared area; box overlap alone never
// produces a match.
package check

import (
	"sort"
	"strings"

	"fs-api/internal/geometry"
	"fs-api/internal/logger"
	"fs-api/internal/refdata"
)

// Match is one intersected state. Coverage is the fraction of the AOI area
// falling inside the state, estimated by grid sampling.
type Match struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Coverage float64 `json:"coverage"`
}

// Result is the ordered match list; empty means the AOI lies outside Germany.
type Result struct {
	Matches []Match `json:"matches"`
}

// Sentinel reported when no state intersects the AOI.
const NotInGermany = "Not in Germany"

func (r Result) InGermany() bool { return len(r.Matches) > 0 }

// Names joins the full state names in match order.
func (r Result) Names() string {
	parts := make([]string, 0, len(r.Matches))
	for _, m := range r.Matches {
		parts = append(parts, m.Name)
	}
	return strings.Join(parts, ",")
}

// Codes joins the short codes in match order.
func (r Result) Codes() string {
	parts := make([]string, 0, len(r.Matches))
	for _, m := range r.Matches {
		parts = append(parts, m.Code)
	}
	return strings.Join(parts, ",")
}

// Classify runs the AOI polygons against every reference record.
// Matches are ordered by intersection area descending; equal areas keep the
// reference record order.
func Classify(aoi []geometry.Polygon, ref *refdata.RefLayer) Result {
	aoiArea := 0.0
	for _, p := range aoi {
		aoiArea += geometry.Area(p)
	}
	type scored struct {
		match Match
		area  float64
		order int
	}
	var hits []scored
	for idx, s := range ref.States {
		hit := false
		shared := 0.0
		for _, ap := range aoi {
			for _, sp := range s.Polys {
				if !geometry.BBoxOverlap(ap.BBox, sp.BBox) {
					continue
				}
				if geometry.Intersects(ap, sp) {
					hit = true
					shared += geometry.OverlapArea(ap, sp)
				}
			}
		}
		if !hit {
			continue
		}
		cov := 0.0
		if aoiArea > 0 {
			cov = shared / aoiArea
			if cov > 1 {
				cov = 1
			}
		}
		hits = append(hits, scored{
			match: Match{Code: s.Code, Name: s.Name, Coverage: cov},
			area:  shared,
			order: idx,
		})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].area != hits[j].area {
			return hits[i].area > hits[j].area
		}
		return hits[i].order < hits[j].order
	})
	var res Result
	for _, h := range hits {
		res.Matches = append(res.Matches, h.match)
	}
	logger.L().Debug("classify_done", "matches", len(res.Matches), "fs", res.Codes())
	return res
}
