package ingest

import (
	"testing"

	"fs-api/internal/refdata"
	"fs-api/pkg/geojson"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func polyGeom() geojson.Geometry {
	return geojson.NewPolygon([][]geojson.Position{{
		{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0},
	}})
}

func featureWith(props map[string]any) geojson.Feature {
	return geojson.Feature{Type: "Feature", Properties: props, Geometry: polyGeom()}
}

func TestNormalizeSchemaGeoBoundaries(t *testing.T) {
	fc := &geojson.FeatureCollection{
		Type: "FeatureCollection",
		Features: []geojson.Feature{
			featureWith(map[string]any{"shapeISO": "DE-NI", "shapeName": "Niedersachsen", "shapeGroup": "DEU"}),
			featureWith(map[string]any{"shapeISO": "DE-HB", "shapeName": "Bremen"}),
		},
	}
	require.NoError(t, NormalizeSchema(fc))
	assert.Equal(t, "NI", fc.Features[0].PropString(refdata.FieldCode))
	assert.Equal(t, "Niedersachsen", fc.Features[0].PropString(refdata.FieldName))
	assert.Equal(t, "HB", fc.Features[1].PropString(refdata.FieldCode))

	// the normalized collection passes reference validation
	_, err := refdata.FromLayer(fc)
	require.NoError(t, err)
}

func TestNormalizeSchemaKeepsConformantFeatures(t *testing.T) {
	fc := &geojson.FeatureCollection{
		Type: "FeatureCollection",
		Features: []geojson.Feature{
			featureWith(map[string]any{"FS": "BY", "FEDERAL_STATE": "Bayern", "shapeISO": "XX-ZZ"}),
		},
	}
	require.NoError(t, NormalizeSchema(fc))
	assert.Equal(t, "BY", fc.Features[0].PropString(refdata.FieldCode))
	assert.Equal(t, "Bayern", fc.Features[0].PropString(refdata.FieldName))
}

func TestNormalizeSchemaRejectsUnknownScheme(t *testing.T) {
	fc := &geojson.FeatureCollection{
		Type: "FeatureCollection",
		Features: []geojson.Feature{
			featureWith(map[string]any{"name": "somewhere"}),
		},
	}
	require.Error(t, NormalizeSchema(fc))

	// a non-German ISO code is not silently truncated into a bogus FS code
	fc = &geojson.FeatureCollection{
		Type: "FeatureCollection",
		Features: []geojson.Feature{
			featureWith(map[string]any{"shapeISO": "FR-IDF", "shapeName": "Île-de-France"}),
		},
	}
	require.Error(t, NormalizeSchema(fc))
}

func TestNormalizeSchemaNilCollection(t *testing.T) {
	require.Error(t, NormalizeSchema(nil))
}
