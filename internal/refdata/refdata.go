// Package refdata: the federal-state reference layer.
// Background: one record per state carrying the short code (FS) and full name
// (FEDERAL_STATE) plus boundary polygons; record order is preserved because it
// is part of tie-breaking when matches are ranked.
package refdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fs-api/internal/geometry"
	"fs-api/internal/logger"
	"fs-api/internal/store"
	"fs-api/pkg/geojson"
)

// Attribute fields every reference feature must carry.
const (
	FieldCode = "FS"
	FieldName = "FEDERAL_STATE"
)

// ErrSchema marks a reference layer that does not conform to the expected
// attribute schema; callers treat it as fatal input validation.
var ErrSchema = errors.New("refdata: reference layer lacks FS/FEDERAL_STATE attributes")

// State is one reference record.
type State struct {
	Code  string
	Name  string
	Polys []geometry.Polygon
}

// RefLayer is the validated reference set in record order.
type RefLayer struct {
	States []State
}

// FromLayer validates and converts a feature collection into a reference
// layer. Every feature must expose both attribute fields and at least one
// polygon; features sharing a code are merged into one record.
func FromLayer(fc *geojson.FeatureCollection) (*RefLayer, error) {
	if fc == nil || len(fc.Features) == 0 {
		return nil, fmt.Errorf("%w: empty layer", ErrSchema)
	}
	ref := &RefLayer{}
	index := map[string]int{}
	for i, f := range fc.Features {
		code := f.PropString(FieldCode)
		name := f.PropString(FieldName)
		if code == "" || name == "" {
			return nil, fmt.Errorf("%w: feature %d", ErrSchema, i)
		}
		polys := geometry.FromGeoJSON(f.Geometry)
		if len(polys) == 0 {
			return nil, fmt.Errorf("refdata: feature %d (%s) has no polygon geometry", i, code)
		}
		if j, ok := index[code]; ok {
			ref.States[j].Polys = append(ref.States[j].Polys, polys...)
			continue
		}
		index[code] = len(ref.States)
		ref.States = append(ref.States, State{Code: code, Name: name, Polys: polys})
	}
	logger.L().Debug("refdata_load_ok", "states", len(ref.States))
	return ref, nil
}

// FromStore builds the reference layer from the database record order.
func FromStore(ctx context.Context, st *store.Store) (*RefLayer, error) {
	rows, err := st.LoadStates(ctx)
	if err != nil {
		return nil, err
	}
	ref := &RefLayer{}
	for _, r := range rows {
		s := State{Code: r.Code, Name: r.Name}
		for _, doc := range r.Geometries {
			var g geojson.Geometry
			if err := json.Unmarshal([]byte(doc), &g); err != nil {
				return nil, fmt.Errorf("refdata: state %s geometry: %w", r.Code, err)
			}
			s.Polys = append(s.Polys, geometry.FromGeoJSON(g)...)
		}
		if len(s.Polys) == 0 {
			return nil, fmt.Errorf("refdata: state %s has no geometry rows", r.Code)
		}
		ref.States = append(ref.States, s)
	}
	if len(ref.States) == 0 {
		return nil, fmt.Errorf("%w: no states in database", ErrSchema)
	}
	return ref, nil
}

// Subset renders the named states back into a feature collection that itself
// passes FromLayer, so command output stays valid reference input.
func (r *RefLayer) Subset(codes []string) *geojson.FeatureCollection {
	want := map[string]bool{}
	for _, c := range codes {
		want[c] = true
	}
	fc := &geojson.FeatureCollection{Type: "FeatureCollection"}
	for _, s := range r.States {
		if !want[s.Code] {
			continue
		}
		fc.Features = append(fc.Features, geojson.Feature{
			Type: "Feature",
			Properties: map[string]any{
				FieldCode: s.Code,
				FieldName: s.Name,
			},
			Geometry: geometry.ToGeoJSON(s.Polys),
		})
	}
	return fc
}

// Lookup returns the record for a code.
func (r *RefLayer) Lookup(code string) (State, bool) {
	for _, s := range r.States {
		if s.Code == code {
			return s, true
		}
	}
	return State{}, false
}
