// Package ingest: loads a boundary GeoJSON dataset into PostgreSQL.
// Background: the dictionary row per state is upserted, its geometry parts
// replaced in the same transaction so readers never observe a half-imported
// state set.
package ingest

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"fs-api/internal/logger"
	"fs-api/internal/metrics"
	"fs-api/internal/refdata"
	"fs-api/internal/store"
	"fs-api/pkg/geojson"
)

// NormalizeSchema rewrites features from known upstream attribute schemes to
// the FS/FEDERAL_STATE reference schema, in place.
// Background: geoBoundaries ADM1 carries shapeName plus shapeISO holding the
// ISO 3166-2 code ("DE-NI"); the short code is its suffix. Features already
// carrying both reference attributes pass through untouched.
func NormalizeSchema(fc *geojson.FeatureCollection) error {
	if fc == nil {
		return fmt.Errorf("ingest: nil collection")
	}
	for i := range fc.Features {
		f := &fc.Features[i]
		if f.PropString(refdata.FieldCode) != "" && f.PropString(refdata.FieldName) != "" {
			continue
		}
		iso := f.PropString("shapeISO")
		name := f.PropString("shapeName")
		if !strings.HasPrefix(iso, "DE-") || name == "" {
			return fmt.Errorf("ingest: feature %d has neither FS/FEDERAL_STATE nor shapeISO/shapeName attributes", i)
		}
		if f.Properties == nil {
			f.Properties = map[string]any{}
		}
		f.Properties[refdata.FieldCode] = strings.TrimPrefix(iso, "DE-")
		f.Properties[refdata.FieldName] = name
	}
	return nil
}

// ImportBoundaries normalizes and validates the collection against the
// reference schema and writes it. The whole import is one transaction.
func ImportBoundaries(ctx context.Context, db *sql.DB, fc *geojson.FeatureCollection, sourceTag string) error {
	if err := NormalizeSchema(fc); err != nil {
		return err
	}
	ref, err := refdata.FromLayer(fc)
	if err != nil {
		return err
	}
	st := store.AttachDB(db)
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, s := range ref.States {
		id, err := st.UpsertState(ctx, tx, s.Code, s.Name)
		if err != nil {
			return fmt.Errorf("ingest: upsert %s: %w", s.Code, err)
		}
		geoms, err := geometryDocs(fc, s.Code)
		if err != nil {
			return err
		}
		if err := st.ReplaceGeometries(ctx, tx, id, geoms); err != nil {
			return fmt.Errorf("ingest: geometries %s: %w", s.Code, err)
		}
		metrics.IngestFeaturesTotal.Inc()
		logger.L().Debug("ingest_state_ok", "fs", s.Code, "parts", len(geoms), "source", sourceTag)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	logger.L().Info("ingest_done", "states", len(ref.States), "source", sourceTag)
	return nil
}

// geometryDocs collects the raw geometry documents of every feature carrying
// the given code, preserving feature order.
func geometryDocs(fc *geojson.FeatureCollection, code string) ([]string, error) {
	var docs []string
	for _, f := range fc.Features {
		if f.PropString(refdata.FieldCode) != code {
			continue
		}
		b, err := json.Marshal(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("ingest: marshal geometry %s: %w", code, err)
		}
		docs = append(docs, string(b))
	}
	return docs, nil
}
